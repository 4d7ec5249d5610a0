package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/letsssgooo/onirico/internal/domain/models"
)

// DefaultDSN используется, если dsn не задан.
const DefaultDSN = "file:onirico.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

const schema = `
CREATE TABLE IF NOT EXISTS dream_entries (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  answer TEXT NOT NULL,
  created_at INTEGER NOT NULL -- unix nanoseconds, UTC
);
`

// Storage реализует storage.Storage поверх SQLite.
type Storage struct {
	db *sql.DB
}

// Open открывает базу и создаёт таблицу, если её нет.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// SaveEntry сохраняет запись дневника.
func (s *Storage) SaveEntry(ctx context.Context, e *models.DreamEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dream_entries (id, name, email, answer, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Email, e.Answer, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	return nil
}

// ListEntries возвращает все записи, старые первыми.
func (s *Storage) ListEntries(ctx context.Context) ([]*models.DreamEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, answer, created_at FROM dream_entries ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.DreamEntry
	for rows.Next() {
		var (
			e       models.DreamEntry
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Answer, &created); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// Close закрывает базу.
func (s *Storage) Close() error {
	return s.db.Close()
}
