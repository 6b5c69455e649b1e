package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalitium.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestSQLite_AddSubscriber(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	sub, err := store.AddSubscriber(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "ada@example.com", sub.Email)
	assert.False(t, sub.CreatedAt.IsZero())

	again, err := store.AddSubscriber(ctx, "ada@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
	assert.Nil(t, again)

	other, err := store.AddSubscriber(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, sub.ID, other.ID)
}

func TestSQLite_SearchLog(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.LogSearch(ctx, "data engineer", "DE"))
	require.NoError(t, store.LogSearch(ctx, "designer", ""))
	require.NoError(t, store.LogSearch(ctx, "", "CH"))

	logs, err := store.RecentSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "", logs[0].Term)
	assert.Equal(t, "CH", logs[0].Country)
	assert.Equal(t, "designer", logs[1].Term)

	all, err := store.RecentSearches(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalitium.db")
	ctx := context.Background()

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = first.AddSubscriber(ctx, "ada@example.com")
	require.NoError(t, err)
	first.Close()

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer second.Close()
	_, err = second.AddSubscriber(ctx, "ada@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "open.db")
	store, err := Open(ctx, "sqlite://"+path)
	require.NoError(t, err)
	defer store.Close()

	sqlite, ok := store.(*SQLiteDB)
	require.True(t, ok)
	assert.Equal(t, path, sqlite.Path())
}

func TestSQLitePath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"sqlite:///var/lib/catalitium.db", "/var/lib/catalitium.db"},
		{"sqlite://data.db", "data.db"},
		{"sqlite:data.db", "data.db"},
		{"data.db", "data.db"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLitePath(tt.url))
		})
	}
}
