package rowstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{4, "E"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnLetter(tt.index))
		})
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "b", Cell(row, 1))
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "", Cell(nil, 0))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Seed("books", []string{"id", "title"})

	require.NoError(t, m.AppendRow(ctx, "books", []string{"1", "Go"}))
	require.NoError(t, m.AppendRows(ctx, "books", [][]string{{"2", "Rust"}, {"3", "Zig"}}))

	t.Run("append keeps order", func(t *testing.T) {
		rows, err := m.ReadTable(ctx, "books")
		require.NoError(t, err)
		want := [][]string{{"id", "title"}, {"1", "Go"}, {"2", "Rust"}, {"3", "Zig"}}
		if diff := cmp.Diff(want, rows); diff != "" {
			t.Fatalf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("update cell pads short rows", func(t *testing.T) {
		require.NoError(t, m.UpdateCell(ctx, "books", 2, 3, "x"))
		rows, _ := m.ReadTable(ctx, "books")
		assert.Equal(t, []string{"1", "Go", "", "x"}, rows[1])
	})

	t.Run("update row overwrites", func(t *testing.T) {
		require.NoError(t, m.UpdateRow(ctx, "books", 3, []string{"2", "Rust 2e"}))
		rows, _ := m.ReadTable(ctx, "books")
		assert.Equal(t, []string{"2", "Rust 2e"}, rows[2])
	})

	t.Run("delete removes exactly one row", func(t *testing.T) {
		require.NoError(t, m.DeleteRow(ctx, "books", 2))
		rows, _ := m.ReadTable(ctx, "books")
		want := [][]string{{"id", "title"}, {"2", "Rust 2e"}, {"3", "Zig"}}
		if diff := cmp.Diff(want, rows); diff != "" {
			t.Fatalf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Error(t, m.DeleteRow(ctx, "books", 10))
		assert.Error(t, m.UpdateRow(ctx, "books", 0, nil))
	})

	t.Run("read returns a copy", func(t *testing.T) {
		rows, _ := m.ReadTable(ctx, "books")
		rows[1][1] = "mutated"
		again, _ := m.ReadTable(ctx, "books")
		assert.Equal(t, "Rust 2e", again[1][1])
	})
}

func TestEnsureHeader(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	wrote, err := EnsureHeader(ctx, m, "users", []string{"email", "role", "createdAt"})
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = EnsureHeader(ctx, m, "users", []string{"email", "role", "createdAt"})
	require.NoError(t, err)
	assert.False(t, wrote)

	rows, _ := m.ReadTable(ctx, "users")
	assert.Len(t, rows, 1)
}

func TestEnsureHeader_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStore := NewMockStore(ctrl)

	mockStore.EXPECT().ReadTable(gomock.Any(), "users").Return(nil, errors.New("quota exceeded"))

	_, err := EnsureHeader(context.Background(), mockStore, "users", []string{"email"})
	assert.EqualError(t, err, "quota exceeded")
}

func TestLazy(t *testing.T) {
	ctx := context.Background()

	t.Run("builds once", func(t *testing.T) {
		calls := 0
		mem := NewMemory()
		lazy := NewLazy(func(context.Context) (Store, error) {
			calls++
			return mem, nil
		})

		require.NoError(t, lazy.AppendRow(ctx, "t", []string{"h"}))
		_, err := lazy.ReadTable(ctx, "t")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries after failed build", func(t *testing.T) {
		calls := 0
		lazy := NewLazy(func(context.Context) (Store, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("credentials unavailable")
			}
			return NewMemory(), nil
		})

		_, err := lazy.ReadTable(ctx, "t")
		assert.Error(t, err)
		_, err = lazy.ReadTable(ctx, "t")
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
}

func TestFormatParseTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 789_000_000, time.FixedZone("JST", 9*3600))

	s := FormatTime(ts)
	assert.Equal(t, "2024-03-09T05:05:06.789Z", s)
	assert.True(t, ParseTime(s).Equal(ts))
	assert.True(t, ParseTime("").IsZero())
	assert.True(t, ParseTime("yesterday").IsZero())
}

func TestDataRows(t *testing.T) {
	header := []string{"id", "title"}

	assert.Nil(t, DataRows(nil))
	assert.Nil(t, DataRows([][]string{header}))

	data := DataRows([][]string{header, {"1", "a"}, {"2", "b"}})
	require.Len(t, data, 2)
	assert.Equal(t, "2", data[1][0])
	assert.Equal(t, 2, DataRowNumber(0))
	assert.Equal(t, 3, DataRowNumber(1))
}
