package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/letsssgooo/onirico/internal/domain/models"
)

// Storage определяет интерфейс для хранения записей дневника.
type Storage interface {
	// SaveEntry сохраняет запись.
	SaveEntry(ctx context.Context, e *models.DreamEntry) error

	// ListEntries возвращает все записи, старые первыми.
	ListEntries(ctx context.Context) ([]*models.DreamEntry, error)

	// Close освобождает ресурсы хранилища.
	Close() error
}

// Ошибки хранилища
var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrSerialization = errors.New("storage serialization failed")
)

// Error — ошибка операции хранилища.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
