package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"engagementAPI/internal/wish"
)

const createMessagesTable = `
	CREATE TABLE IF NOT EXISTS messages (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`

// pool is satisfied by *pgxpool.Pool and by pgxmock in tests.
type pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type PostgresStore struct {
	db pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createMessagesTable); err != nil {
		return fmt.Errorf("failed to create messages table: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListWishes(ctx context.Context) ([]*wish.Wish, error) {
	query := `
	SELECT id, name, message, created_at
	FROM messages
	ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	wishes := make([]*wish.Wish, 0)
	for rows.Next() {
		w, err := scanWish(rows)
		if err != nil {
			return nil, err
		}
		wishes = append(wishes, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return wishes, nil
}

func (s *PostgresStore) CreateWish(ctx context.Context, name, message string) (*wish.Wish, error) {
	query := `
	INSERT INTO messages (name, message)
	VALUES ($1, $2)
	RETURNING id, name, message, created_at
	`

	w, err := scanWish(s.db.QueryRow(ctx, query, name, message))
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	return w, nil
}

// DeleteWish removes the row with the given id. Ids that are not integers
// cannot exist in the table, so they are a no-op like any other absent id.
func (s *PostgresStore) DeleteWish(ctx context.Context, id string) error {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, rowID); err != nil {
		return fmt.Errorf("failed to delete message %d: %w", rowID, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

func scanWish(row pgx.Row) (*wish.Wish, error) {
	var (
		w         wish.Wish
		id        int64
		createdAt time.Time
	)
	if err := row.Scan(&id, &w.Name, &w.Message, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan message: %w", err)
	}

	w.ID = strconv.FormatInt(id, 10)
	w.Date = createdAt.UTC()
	return &w, nil
}
