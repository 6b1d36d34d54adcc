package main

import (
	"context"
	"math/rand"
	"testing"

	"booklend/internal/app"
	"booklend/internal/testutil"
	"booklend/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	repos := app.NewRepos(testutil.NewStore())
	s := seeder{repos: repos, rnd: rand.New(rand.NewSource(1)), log: zap.NewNop()}

	require.NoError(t, s.run(ctx, 6, "boss@example.com", testutil.UserEmail))

	books, err := repos.Books.ListWithStats(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 6)

	loans, err := repos.Loans.List(ctx)
	require.NoError(t, err)
	assert.Len(t, loans, 2)

	reviews, err := repos.Reviews.ListWithBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	role, err := repos.Users.ResolveRole(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, role)
}

func TestSeeder_RunTwiceSkipsExistingBooks(t *testing.T) {
	ctx := context.Background()
	repos := app.NewRepos(testutil.NewStore())

	require.NoError(t, seeder{repos: repos, rnd: rand.New(rand.NewSource(1)), log: zap.NewNop()}.run(ctx, 4, "", testutil.UserEmail))
	require.NoError(t, seeder{repos: repos, rnd: rand.New(rand.NewSource(2)), log: zap.NewNop()}.run(ctx, 4, "", testutil.UserEmail))

	books, err := repos.Books.ListWithStats(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 4, "same ISBNs are not registered twice")
}
