package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultSearchLimit is used when RecentSearches is called without a limit.
const DefaultSearchLimit = 50

// ErrAlreadySubscribed indicates the email address is already on the list.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// Store is the persistence the server needs. Both the PostgreSQL DB and
// SQLiteDB implement it.
type Store interface {
	AddSubscriber(ctx context.Context, email string) (*Subscriber, error)
	LogSearch(ctx context.Context, term, country string) error
	RecentSearches(ctx context.Context, limit int) ([]SearchLog, error)
	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*SQLiteDB)(nil)
)

// Open connects to the store named by databaseURL. postgres:// and
// postgresql:// URLs use PostgreSQL; sqlite:// URLs and bare paths use SQLite.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	switch {
	case databaseURL == "":
		return nil, fmt.Errorf("database URL is empty")
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Connect(ctx, databaseURL)
	default:
		return OpenSQLite(ctx, SQLitePath(databaseURL))
	}
}

// SQLitePath strips a sqlite:// or sqlite: scheme from a database URL.
func SQLitePath(databaseURL string) string {
	for _, prefix := range []string{"sqlite://", "sqlite:"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return limit
}
