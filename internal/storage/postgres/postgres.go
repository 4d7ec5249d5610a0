package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/letsssgooo/onirico/internal/domain/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS dream_entries (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	answer     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// Storage реализует storage.Storage поверх Postgres.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage подключается к Postgres по dsn и создаёт таблицу, если её нет.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// SaveEntry сохраняет запись дневника.
func (s *Storage) SaveEntry(ctx context.Context, e *models.DreamEntry) error {
	query := `
	INSERT INTO dream_entries (id, name, email, answer, created_at) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, e.ID, e.Name, e.Email, e.Answer, e.CreatedAt)

	return err
}

// ListEntries возвращает все записи, старые первыми.
func (s *Storage) ListEntries(ctx context.Context) ([]*models.DreamEntry, error) {
	query := `
		SELECT id, name, email, answer, created_at FROM dream_entries ORDER BY created_at, id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.DreamEntry
	for rows.Next() {
		e := &models.DreamEntry{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Answer, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}
