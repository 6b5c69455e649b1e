// Package db persists newsletter subscribers and the search log in
// PostgreSQL or SQLite.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and makes sure the
// schema exists.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// AddSubscriber stores a newsletter subscriber. It returns
// ErrAlreadySubscribed when the email is already on the list.
func (db *DB) AddSubscriber(ctx context.Context, email string) (*Subscriber, error) {
	s := &Subscriber{ID: uuid.New(), Email: email, CreatedAt: now()}

	tag, err := db.pool.Exec(ctx,
		`INSERT INTO subscribers (id, email, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO NOTHING`,
		s.ID, s.Email, s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAlreadySubscribed
	}
	return s, nil
}

// GetSubscriberByEmail retrieves a subscriber by email address
func (db *DB) GetSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error) {
	var s Subscriber
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, created_at FROM subscribers WHERE email = $1`,
		email,
	).Scan(&s.ID, &s.Email, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return &s, nil
}

// LogSearch records a search term and country.
func (db *DB) LogSearch(ctx context.Context, term, country string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO search_logs (id, term, country, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), term, country, now(),
	)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// RecentSearches retrieves the most recent search log entries
func (db *DB) RecentSearches(ctx context.Context, limit int) ([]SearchLog, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, term, country, created_at
		 FROM search_logs ORDER BY created_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var logs []SearchLog
	for rows.Next() {
		var l SearchLog
		if err := rows.Scan(&l.ID, &l.Term, &l.Country, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
