// Command librarian is the operator CLI: batch registration through the
// external catalog and table export.
package main

import (
	"context"
	"fmt"
	"os"

	"booklend/internal/app"
	"booklend/internal/catalog"
	"booklend/internal/config"
	"booklend/internal/ingest"
	"booklend/internal/platform/googlebooks"
	"booklend/internal/platform/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds what subcommands need. Tests replace the constructors.
type env struct {
	log        *zap.Logger
	openStore  func(ctx context.Context) (*app.Backend, error)
	newCatalog func() ingest.CatalogSearcher
}

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	e := &env{
		log: log,
		openStore: func(ctx context.Context) (*app.Backend, error) {
			return app.OpenBackend(ctx, cfg, log)
		},
		newCatalog: func() ingest.CatalogSearcher {
			client := googlebooks.NewClient(cfg.BooksAPIKey, cfg.CatalogLang, cfg.CatalogRPS, cfg.CatalogMaxRetries)
			return catalog.NewService(client)
		},
	}

	if err := newRootCmd(e).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "librarian",
		Short: "Operator tooling for the book-lending store",
		Long: `librarian works directly against the configured store backend
(STORE_BACKEND) using the same repositories as the API server.

Examples:
  librarian import titles.txt --as admin@example.com
  librarian export loans --out loans.csv`,
		SilenceUsage: true,
	}
	root.AddCommand(newImportCmd(e), newExportCmd(e))
	return root
}
