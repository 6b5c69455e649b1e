package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB stores subscribers and searches in a local SQLite file.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the SQLite database at path and initializes
// the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer at a time
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteDB{db: sqlDB, path: path}, nil
}

// Path returns the database file path
func (s *SQLiteDB) Path() string {
	return s.path
}

// Close closes the database
func (s *SQLiteDB) Close() {
	_ = s.db.Close()
}

// AddSubscriber stores a newsletter subscriber. It returns
// ErrAlreadySubscribed when the email is already on the list.
func (s *SQLiteDB) AddSubscriber(ctx context.Context, email string) (*Subscriber, error) {
	sub := &Subscriber{ID: uuid.New(), Email: email, CreatedAt: now()}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subscribers (id, email, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (email) DO NOTHING`,
		sub.ID.String(), sub.Email, sub.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to add subscriber: %w", err)
	}
	if n == 0 {
		return nil, ErrAlreadySubscribed
	}
	return sub, nil
}

// LogSearch records a search term and country.
func (s *SQLiteDB) LogSearch(ctx context.Context, term, country string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_logs (id, term, country, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), term, country, now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// RecentSearches retrieves the most recent search log entries
func (s *SQLiteDB) RecentSearches(ctx context.Context, limit int) ([]SearchLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, term, country, created_at
		 FROM search_logs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []SearchLog
	for rows.Next() {
		var (
			l         SearchLog
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &l.Term, &l.Country, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan search log: %w", err)
		}
		if l.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid search log id %q: %w", id, err)
		}
		if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("invalid search log time %q: %w", createdAt, err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
