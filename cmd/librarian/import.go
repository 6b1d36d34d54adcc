package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"booklend/internal/app"
	"booklend/internal/ingest"

	"github.com/spf13/cobra"
)

func newImportCmd(e *env) *cobra.Command {
	var (
		createdBy  string
		pause      time.Duration
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Register books from a list of titles or ISBNs",
		Long: `Read one title or ISBN per line (from file, or stdin when file is "-" or
omitted), take the first external catalog hit for each, and register all hits
in a single batch. Books that are already registered are reported as skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			lines := ingest.Lines(text)
			if len(lines) == 0 {
				return fmt.Errorf("no titles to register")
			}

			ctx := cmd.Context()
			backend, err := e.openStore(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			repos := app.NewRepos(backend.Store)
			svc := ingest.NewService(e.newCatalog(), repos.Books, ingest.Config{Pause: pause}, e.log)
			report, err := svc.Run(ctx, lines, createdBy)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&createdBy, "as", "", "Email recorded as createdBy (required)")
	cmd.Flags().DurationVar(&pause, "pause", 500*time.Millisecond, "Pause between catalog lookups")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}

func writeReport(w io.Writer, report ingest.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	for _, r := range report.Results {
		line := fmt.Sprintf("%-9s %s", r.Status, r.Title)
		if r.Message != "" {
			line += " (" + r.Message + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "created %d, skipped %d, not found %d, errors %d\n",
		report.Created,
		report.Count(ingest.StatusSkipped),
		report.Count(ingest.StatusNotFound),
		report.Count(ingest.StatusError),
	)
	return err
}
