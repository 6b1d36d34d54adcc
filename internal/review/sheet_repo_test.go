package review

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"booklend/internal/apperror"
	"booklend/internal/book"
	"booklend/internal/rowstore"
	"booklend/internal/user"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBooks []book.Book

func (f fakeBooks) List(context.Context) ([]book.Book, error) {
	return f, nil
}

var shelf = fakeBooks{
	{ID: "b1", Title: "Go", ImageURL: "/images/go.png"},
	{ID: "b2", Title: "Rust"},
}

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	seq := 0
	prevNow, prevID := now, newID
	now = func() time.Time { return at }
	newID = func() string {
		seq++
		return fmt.Sprintf("review-%d", seq)
	}
	t.Cleanup(func() { now, newID = prevNow, prevID })
}

func seededStore() *rowstore.Memory {
	mem := rowstore.NewMemory()
	mem.Seed(Table,
		Header,
		[]string{"r1", "b1", "3", "ok", "alice@example.com", "2024-01-01T00:00:00.000Z", "2024-01-01T00:00:00.000Z"},
		[]string{"r2", "b1", "5", "great", "bob@example.com", "2024-01-02T00:00:00.000Z", "2024-03-01T00:00:00.000Z"},
		[]string{"r3", "gone", "2", "meh", "alice@example.com", "2024-01-03T00:00:00.000Z", "2024-02-01T00:00:00.000Z"},
	)
	return mem
}

func TestSheetRepo_StatsByBook(t *testing.T) {
	stats, err := NewSheetRepo(seededStore(), shelf).StatsByBook(context.Background())
	require.NoError(t, err)

	assert.Equal(t, book.RatingStats{AverageRating: 4, ReviewCount: 2}, stats["b1"])
	assert.Equal(t, book.RatingStats{AverageRating: 2, ReviewCount: 1}, stats["gone"])
	_, ok := stats["b2"]
	assert.False(t, ok, "books without reviews are absent")
}

func TestSheetRepo_StatsByBook_NonIntegerAverage(t *testing.T) {
	mem := rowstore.NewMemory()
	mem.Seed(Table, Header,
		[]string{"r1", "b1", "4"},
		[]string{"r2", "b1", "5"},
	)

	stats, err := NewSheetRepo(mem, shelf).StatsByBook(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stats["b1"].AverageRating, 1e-9)
}

func TestSheetRepo_ListWithBooks(t *testing.T) {
	reviews, err := NewSheetRepo(seededStore(), shelf).ListWithBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	assert.Equal(t, "r2", reviews[0].ID, "most recently updated first")
	assert.Equal(t, "r3", reviews[1].ID)
	assert.Equal(t, "r1", reviews[2].ID)

	assert.Equal(t, "Go", reviews[0].BookTitle)
	assert.Equal(t, "/images/go.png", reviews[0].BookImageURL)
	assert.Equal(t, DeletedBookTitle, reviews[1].BookTitle)
	assert.Equal(t, "", reviews[1].BookImageURL)
}

func TestSheetRepo_ListByBook(t *testing.T) {
	repo := NewSheetRepo(seededStore(), shelf)

	reviews, err := repo.ListByBook(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 3, reviews[0].Rating)
	assert.Equal(t, 5, reviews[1].Rating)

	reviews, err = repo.ListByBook(context.Background(), "b2")
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.NotNil(t, reviews)
}

func TestSheetRepo_GetByBookAndUser(t *testing.T) {
	repo := NewSheetRepo(seededStore(), shelf)
	ctx := context.Background()

	rv, err := repo.GetByBookAndUser(ctx, "b1", "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, rv)
	assert.Equal(t, "r2", rv.ID)

	rv, err = repo.GetByBookAndUser(ctx, "b2", "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, rv)
}

func TestSheetRepo_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	mem := rowstore.NewMemory()
	mem.Seed(Table, Header)
	repo := NewSheetRepo(mem, shelf)

	first := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(t, first)
	created, err := repo.CreateOrUpdate(ctx, Input{BookID: "b1", Rating: 2, Comment: "hmm"}, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "review-1", created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	fixedClock(t, first.Add(time.Hour))
	updated, err := repo.CreateOrUpdate(ctx, Input{BookID: "b1", Rating: 4, Comment: "grew on me"}, "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "2024-06-01T11:00:00.000Z", updated.UpdatedAt)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "grew on me", updated.Comment)

	rows, _ := mem.ReadTable(ctx, Table)
	require.Len(t, rows, 2, "exactly one review row")
	assert.Equal(t, []string{"review-1", "b1", "4", "grew on me", "alice@example.com",
		"2024-06-01T10:00:00.000Z", "2024-06-01T11:00:00.000Z"}, rows[1])

	_, err = repo.CreateOrUpdate(ctx, Input{BookID: "b1", Rating: 5}, "bob@example.com")
	require.NoError(t, err)
	rows, _ = mem.ReadTable(ctx, Table)
	assert.Len(t, rows, 3, "another author gets a new row")
}

func TestSheetRepo_CreateOrUpdate_UpdatesMatchingRow(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	ctrl := gomock.NewController(t)
	mockStore := rowstore.NewMockStore(ctrl)

	mockStore.EXPECT().ReadTable(gomock.Any(), Table).Return([][]string{
		Header,
		{"r1", "b1", "3", "", "bob@x", "c1", "u1"},
		{"r2", "b1", "3", "", "alice@x", "c2", "u2"},
	}, nil)
	mockStore.EXPECT().UpdateRow(gomock.Any(), Table, 3,
		[]string{"r2", "b1", "1", "no", "alice@x", "c2", "2024-06-01T00:00:00.000Z"}).Return(nil)

	_, err := NewSheetRepo(mockStore, shelf).CreateOrUpdate(context.Background(), Input{BookID: "b1", Rating: 1, Comment: "no"}, "alice@x")
	require.NoError(t, err)
}

func TestSheetRepo_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		mem := seededStore()
		repo := NewSheetRepo(mem, shelf)

		require.NoError(t, repo.Delete(ctx, "r1", "alice@example.com", user.RoleUser))

		rows, _ := mem.ReadTable(ctx, Table)
		require.Len(t, rows, 3)
		assert.Equal(t, "r2", rows[1][0])
	})

	t.Run("admin deletes any review", func(t *testing.T) {
		repo := NewSheetRepo(seededStore(), shelf)
		assert.NoError(t, repo.Delete(ctx, "r2", "admin@example.com", user.RoleAdmin))
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		mem := seededStore()
		repo := NewSheetRepo(mem, shelf)

		err := repo.Delete(ctx, "r2", "alice@example.com", user.RoleUser)
		assert.True(t, errors.Is(err, ErrNotOwner))
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

		rows, _ := mem.ReadTable(ctx, Table)
		assert.Len(t, rows, 4)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := NewSheetRepo(seededStore(), shelf).Delete(ctx, "nope", "alice@example.com", user.RoleAdmin)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
