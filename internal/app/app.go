// Package app wires configuration into the store, repositories and
// authenticator shared by the binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booklend/internal/auth"
	"booklend/internal/book"
	"booklend/internal/config"
	"booklend/internal/loan"
	"booklend/internal/platform/crypto"
	"booklend/internal/platform/googleid"
	"booklend/internal/platform/sheets"
	"booklend/internal/review"
	"booklend/internal/rowstore"
	"booklend/internal/store"
	"booklend/internal/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Backend is an opened row store. Ready reports whether it can serve
// requests; Close releases its connections. Initialized names the tables
// whose header row was written while opening.
type Backend struct {
	Store       rowstore.Store
	Ready       func(ctx context.Context) error
	Close       func()
	Initialized []string
}

// OpenBackend opens the store selected by cfg.StoreBackend and writes the
// header row of every empty table, so the first record appended to a fresh
// table is never read back as its header. The Sheets client is built on
// first use and then reused.
func OpenBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (*Backend, error) {
	b, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	b.Initialized, err = EnsureHeaders(ctx, b.Store)
	if err != nil {
		b.Close()
		return nil, err
	}
	if len(b.Initialized) > 0 {
		log.Info("table headers written", zap.Strings("tables", b.Initialized))
	}
	return b, nil
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("using in-memory store; data is lost on exit")
		mem := rowstore.NewMemory()
		return &Backend{Store: mem, Ready: func(context.Context) error { return nil }, Close: func() {}}, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("create db pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(cfg.DBDSN), err)
		}
		log.Info("database connection OK")
		return &Backend{Store: store.NewRowsPG(pool, cfg.StoreTimeout), Ready: pool.Ping, Close: pool.Close}, nil

	case config.BackendSheets:
		opts := credentialOptions(cfg)
		lazy := rowstore.NewLazy(func(ctx context.Context) (rowstore.Store, error) {
			log.Info("connecting to spreadsheet", zap.String("spreadsheet_id", cfg.SpreadsheetID))
			return sheets.NewClient(ctx, cfg.SpreadsheetID, opts...)
		})
		ready := func(ctx context.Context) error {
			_, err := lazy.ReadTable(ctx, user.Table)
			return err
		}
		return &Backend{Store: lazy, Ready: ready, Close: func() {}}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func credentialOptions(cfg config.Config) []option.ClientOption {
	switch {
	case cfg.CredentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))}
	case cfg.CredentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
	}
	return nil
}

// Repos are the table repositories over one store.
type Repos struct {
	Users   *user.SheetRepo
	Books   *book.SheetRepo
	Loans   *loan.SheetRepo
	Reviews *review.SheetRepo
}

// NewRepos wires the repositories. Loans and reviews look books up through
// a plain book repository so that the full one can depend on both.
func NewRepos(s rowstore.Store) Repos {
	plainBooks := book.NewSheetRepo(s, nil, nil)
	loans := loan.NewSheetRepo(s, plainBooks)
	reviews := review.NewSheetRepo(s, plainBooks)
	return Repos{
		Users:   user.NewSheetRepo(s),
		Books:   book.NewSheetRepo(s, reviews, loans),
		Loans:   loans,
		Reviews: reviews,
	}
}

// Tables lists every table with its header row.
var Tables = []struct {
	Name   string
	Header []string
}{
	{book.Table, book.Header},
	{loan.Table, loan.Header},
	{review.Table, review.Header},
	{user.Table, user.Header},
}

// EnsureHeaders writes the header row of every empty table and returns the
// names of the tables it initialized.
func EnsureHeaders(ctx context.Context, s rowstore.Store) ([]string, error) {
	var written []string
	for _, t := range Tables {
		ok, err := rowstore.EnsureHeader(ctx, s, t.Name, t.Header)
		if err != nil {
			return written, fmt.Errorf("ensure %s header: %w", t.Name, err)
		}
		if ok {
			written = append(written, t.Name)
		}
	}
	return written, nil
}

// NewAuthenticator builds the identity verifier for cfg.AuthMode and wraps
// it with the domain allow-list.
func NewAuthenticator(ctx context.Context, cfg config.Config, log *zap.Logger) (*auth.Authenticator, error) {
	var verifier auth.Verifier
	switch cfg.AuthMode {
	case config.AuthModeDev:
		log.Warn("AUTH_MODE=dev: accepting locally signed identity tokens")
		verifier = crypto.NewVerifier(cfg.DevTokenSecret)
	case config.AuthModeGoogle:
		v, err := googleid.NewVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			return nil, err
		}
		verifier = v
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
	return auth.NewAuthenticator(verifier, cfg.AllowedDomains,
		auth.WithDomainDeniedStatus(cfg.DomainDeniedStatus),
		auth.WithLogger(log),
	), nil
}

// RedactDSN hides the credentials part of a connection string.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
