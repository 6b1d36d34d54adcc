package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"booklend/internal/app"
	"booklend/internal/book"
	"booklend/internal/config"
	"booklend/internal/platform/logging"
	"booklend/internal/review"
	"booklend/internal/user"

	"go.uber.org/zap"
)

func main() {
	var (
		count  = flag.Int("count", 20, "Number of sample books")
		admin  = flag.String("admin", "", "Email to grant the admin role")
		reader = flag.String("reader", "reader@example.com", "Email that borrows and reviews sample books")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	backend, err := app.OpenBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer backend.Close()

	s := seeder{repos: app.NewRepos(backend.Store), rnd: rand.New(rand.NewSource(1)), log: log}
	if err := s.run(ctx, *count, *admin, *reader); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

var (
	genres     = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Mystery", "Biography", "Philosophy"}
	publishers = []string{"Penguin", "HarperCollins", "O'Reilly", "MIT Press", "Springer", "Wiley"}
	words      = []string{"Adventure", "Mystery", "Journey", "Secret", "Discovery", "Legacy", "Horizon", "Echo", "Shadow", "Light"}
	comments   = []string{"", "Loved it.", "Slow start, great ending.", "Not for me.", "Recommended for the team."}
)

type seeder struct {
	repos app.Repos
	rnd   *rand.Rand
	log   *zap.Logger
}

// run registers count books in one batch, lends out every third one to
// reader, and leaves a review on every other one.
func (s seeder) run(ctx context.Context, count int, admin, reader string) error {
	if admin != "" {
		if err := s.repos.Users.Grant(ctx, admin, user.RoleAdmin); err != nil {
			return err
		}
		s.log.Info("admin granted", zap.String("email", admin))
	}

	inputs := make([]book.Input, 0, count)
	for i := 0; i < count; i++ {
		inputs = append(inputs, book.Input{
			Title:         fmt.Sprintf("Book Title %d - %s", i+1, s.word()),
			ISBN:          fmt.Sprintf("978%010d", i+1),
			Authors:       []string{fmt.Sprintf("Author %s", s.word())},
			Publisher:     publishers[s.rnd.Intn(len(publishers))],
			PublishedDate: fmt.Sprintf("%d-01-01", 1950+s.rnd.Intn(75)),
			Genre:         genres[s.rnd.Intn(len(genres))],
			CreatedBy:     admin,
		})
	}
	created, err := s.repos.Books.CreateMany(ctx, inputs)
	if err != nil {
		return err
	}
	s.log.Info("books created", zap.Int("created", len(created)), zap.Int("skipped", count-len(created)))

	var loans, reviews int
	for i, b := range created {
		if i%3 == 0 {
			if _, err := s.repos.Loans.Borrow(ctx, b.ID, reader); err != nil {
				return err
			}
			loans++
		}
		if i%2 == 0 {
			in := review.Input{BookID: b.ID, Rating: 1 + s.rnd.Intn(5), Comment: comments[s.rnd.Intn(len(comments))]}
			if _, err := s.repos.Reviews.CreateOrUpdate(ctx, in, reader); err != nil {
				return err
			}
			reviews++
		}
	}
	s.log.Info("seed complete", zap.Int("loans", loans), zap.Int("reviews", reviews))
	return nil
}

func (s seeder) word() string {
	return words[s.rnd.Intn(len(words))]
}
