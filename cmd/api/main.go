package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booklend/internal/app"
	"booklend/internal/catalog"
	"booklend/internal/config"
	apphttp "booklend/internal/http"
	"booklend/internal/httpx"
	"booklend/internal/platform/googlebooks"
	"booklend/internal/platform/logging"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, cleanup, err := newServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.Addr),
			zap.String("store", cfg.StoreBackend),
			zap.String("auth", cfg.AuthMode),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newServer opens the store and builds the routed API handler. cleanup
// stops the rate limiter and closes the store.
func newServer(ctx context.Context, cfg config.Config, log *zap.Logger) (http.Handler, func(), error) {
	backend, err := app.OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	authn, err := app.NewAuthenticator(ctx, cfg, log)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	repos := app.NewRepos(backend.Store)
	books := googlebooks.NewClient(cfg.BooksAPIKey, cfg.CatalogLang, cfg.CatalogRPS, cfg.CatalogMaxRetries)

	dispatcher := apphttp.NewDispatcher(authn, cfg.TokenHeader, apphttp.Services{
		Roles:   repos.Users,
		Books:   repos.Books,
		Loans:   repos.Loans,
		Reviews: repos.Reviews,
		Catalog: catalog.NewService(books),
	}, log)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	cleanup := func() {
		rateLimiter.Stop()
		backend.Close()
	}
	return newRouter(cfg, log, dispatcher, backend.Ready, rateLimiter), cleanup, nil
}

// newRouter mounts the action endpoint at "/" and "/api" behind the
// middleware chain. Health probes skip authentication and rate limiting.
func newRouter(cfg config.Config, log *zap.Logger, api http.Handler, ready func(context.Context) error, rl *httpx.RateLimitMiddleware) http.Handler {
	apiHandler := httpx.Chain(api,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(false),
		httpx.CORSMiddleware(cfg.AllowedOrigin, cfg.TokenHeader),
		rl.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ready(ctx); err != nil {
			log.Warn("readiness check failed", zap.Error(err))
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Handle("/api", apiHandler)
	router.Handle("/", apiHandler)
	return router
}
