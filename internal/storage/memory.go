package storage

import (
	"context"
	"sync"

	"github.com/letsssgooo/onirico/internal/domain/models"
)

// MemoryStorage реализует Storage в памяти.
type MemoryStorage struct {
	entries []models.DreamEntry
	mu      sync.Mutex
}

// NewMemoryStorage создаёт новый MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// SaveEntry сохраняет запись.
func (s *MemoryStorage) SaveEntry(ctx context.Context, e *models.DreamEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = append(s.entries, *e)
	s.mu.Unlock()

	return nil
}

// ListEntries возвращает все записи.
func (s *MemoryStorage) ListEntries(ctx context.Context) ([]*models.DreamEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.DreamEntry, 0, len(s.entries))
	for i := range s.entries {
		e := s.entries[i]
		out = append(out, &e)
	}

	return out, nil
}

// Close ничего не делает.
func (s *MemoryStorage) Close() error {
	return nil
}
