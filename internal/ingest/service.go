package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booklend/internal/book"
	"booklend/internal/catalog"

	"go.uber.org/zap"
)

type CatalogSearcher interface {
	Search(ctx context.Context, query string) (catalog.SearchResult, error)
}

type BookCreator interface {
	CreateMany(ctx context.Context, inputs []book.Input) ([]book.Book, error)
}

type Config struct {
	// Pause between catalog lookups.
	Pause time.Duration
}

type Service struct {
	catalog CatalogSearcher
	books   BookCreator
	cfg     Config
	log     *zap.Logger
}

func NewService(catalog CatalogSearcher, books BookCreator, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{catalog: catalog, books: books, cfg: cfg, log: log}
}

// Lines splits text into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Run looks up every line, takes the first catalog hit, and registers all
// hits in one batch attributed to createdBy. Lookup failures are recorded
// per line; a failed batch write fails the run.
func (s *Service) Run(ctx context.Context, lines []string, createdBy string) (Report, error) {
	report := Report{Results: make([]Result, 0, len(lines))}
	var inputs []book.Input
	pending := make(map[string][]int) // googleBooksId -> result indexes

	for i, line := range lines {
		if i > 0 && s.cfg.Pause > 0 {
			select {
			case <-time.After(s.cfg.Pause):
			case <-ctx.Done():
				return report, ctx.Err()
			}
		}

		res, err := s.catalog.Search(ctx, line)
		if err != nil {
			s.log.Warn("catalog search failed", zap.String("query", line), zap.Error(err))
			report.Results = append(report.Results, Result{Query: line, Title: line, Status: StatusError, Message: "search failed"})
			continue
		}
		if len(res.Items) == 0 {
			report.Results = append(report.Results, Result{Query: line, Title: line, Status: StatusNotFound, Message: "no matching book"})
			continue
		}

		in := res.Items[0].BookInput()
		in.CreatedBy = createdBy
		inputs = append(inputs, in)
		pending[in.GoogleBooksID] = append(pending[in.GoogleBooksID], len(report.Results))
		report.Results = append(report.Results, Result{Query: line, Title: in.Title, Status: StatusSuccess})
	}

	if len(inputs) == 0 {
		return report, nil
	}

	created, err := s.books.CreateMany(ctx, inputs)
	if err != nil {
		return report, fmt.Errorf("register books: %w", err)
	}
	report.Created = len(created)

	registered := make(map[string]int, len(created))
	for _, b := range created {
		registered[b.GoogleBooksID]++
	}
	for id, idxs := range pending {
		for n, idx := range idxs {
			if n < registered[id] {
				continue
			}
			report.Results[idx].Status = StatusSkipped
			report.Results[idx].Message = "already registered"
		}
	}

	s.log.Info("batch registration finished",
		zap.Int("lines", len(lines)),
		zap.Int("created", report.Created),
		zap.Int("not_found", report.Count(StatusNotFound)),
		zap.Int("errors", report.Count(StatusError)),
	)
	return report, nil
}
