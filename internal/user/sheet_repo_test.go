package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"booklend/internal/rowstore"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetRepo_ResolveRole(t *testing.T) {
	mem := rowstore.NewMemory()
	mem.Seed(Table,
		Header,
		[]string{"admin@example.com", "admin", "2024-01-01T00:00:00.000Z"},
		[]string{"plain@example.com", "user", "2024-01-01T00:00:00.000Z"},
		[]string{"odd@example.com", "superuser", ""},
		[]string{"admin@example.com", "user", ""},
	)
	repo := NewSheetRepo(mem)

	tests := []struct {
		name  string
		email string
		want  Role
	}{
		{"admin row", "admin@example.com", RoleAdmin},
		{"user row", "plain@example.com", RoleUser},
		{"unknown role value", "odd@example.com", RoleUser},
		{"no row", "nobody@example.com", RoleUser},
		{"header is not data", "email", RoleUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := repo.ResolveRole(context.Background(), tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}

	rows, _ := mem.ReadTable(context.Background(), Table)
	assert.Len(t, rows, 5, "resolving must not create rows")
}

func TestSheetRepo_ResolveRole_EmptyTable(t *testing.T) {
	repo := NewSheetRepo(rowstore.NewMemory())

	role, err := repo.ResolveRole(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)
}

func TestSheetRepo_ResolveRole_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := rowstore.NewMockStore(ctrl)
	mockStore.EXPECT().ReadTable(gomock.Any(), Table).Return(nil, errors.New("backend down"))

	role, err := NewSheetRepo(mockStore).ResolveRole(context.Background(), "a@example.com")
	assert.Error(t, err)
	assert.Equal(t, RoleUser, role)
}

func TestSheetRepo_List(t *testing.T) {
	mem := rowstore.NewMemory()
	mem.Seed(Table, Header, []string{"admin@example.com", "admin"})

	records, err := NewSheetRepo(mem).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Record{{Email: "admin@example.com", Role: RoleAdmin}}, records)
}

func TestSheetRepo_Grant(t *testing.T) {
	prev := now
	now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })

	ctx := context.Background()
	mem := rowstore.NewMemory()
	mem.Seed(Table, Header, []string{"a@example.com", "user", "2024-01-01T00:00:00.000Z"})
	repo := NewSheetRepo(mem)

	require.NoError(t, repo.Grant(ctx, "a@example.com", RoleAdmin))
	require.NoError(t, repo.Grant(ctx, "b@example.com", RoleAdmin))

	rows, _ := mem.ReadTable(ctx, Table)
	want := [][]string{
		Header,
		{"a@example.com", "admin", "2024-01-01T00:00:00.000Z"},
		{"b@example.com", "admin", "2024-02-01T00:00:00.000Z"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("users table mismatch (-want +got):\n%s", diff)
	}

	role, err := repo.ResolveRole(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}
