package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/letsssgooo/onirico/internal/domain/models"
)

// DefaultQuota — лимит размера файла дневника, как у localStorage в браузере.
const DefaultQuota = 5 << 20

// FileStorage хранит записи JSON-массивом в одном файле.
type FileStorage struct {
	path  string
	quota int
	mu    sync.Mutex
}

// NewFileStorage создаёт хранилище в файле path.
// quota <= 0 означает DefaultQuota.
func NewFileStorage(path string, quota int) (*FileStorage, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	if quota <= 0 {
		quota = DefaultQuota
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	return &FileStorage{path: path, quota: quota}, nil
}

// SaveEntry дописывает запись в файл.
func (s *FileStorage) SaveEntry(ctx context.Context, e *models.DreamEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}

	entries = append(entries, *e)

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	if len(data) > s.quota {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrQuotaExceeded, len(data), s.quota)
	}

	return s.write(data)
}

// ListEntries читает все записи из файла.
func (s *FileStorage) ListEntries(ctx context.Context) ([]*models.DreamEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	entries, err := s.read()
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	out := make([]*models.DreamEntry, 0, len(entries))
	for i := range entries {
		out = append(out, &entries[i])
	}

	return out, nil
}

// Close ничего не делает.
func (s *FileStorage) Close() error {
	return nil
}

func (s *FileStorage) read() ([]models.DreamEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	var entries []models.DreamEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	return entries, nil
}

func (s *FileStorage) write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
