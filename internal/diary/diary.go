// Package diary сохраняет записи дневника сновидений.
package diary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"

	"github.com/letsssgooo/onirico/internal/domain/models"
	"github.com/letsssgooo/onirico/internal/storage"
)

// ErrValidation — ошибка валидации формы.
var ErrValidation = errors.New("validation error")

// ValidationError указывает поле формы, не прошедшее проверку.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v, field %s failed on %q", ErrValidation, e.Field, e.Tag)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Draft — данные формы дневника.
type Draft struct {
	Name   string `validate:"required,max=100"`
	Email  string `validate:"required,email"`
	Answer string `validate:"required,max=2000"`
}

var validate = validator.New()

// ValidEmail проверяет адрес почты.
func ValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// Journal принимает записи дневника и передаёт их в хранилище.
type Journal struct {
	storage storage.Storage
	now     func() time.Time
	newID   func() string
	log     *slog.Logger
}

// Option настраивает Journal.
type Option func(*Journal)

// WithClock задаёт источник времени для записей.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithLogger задаёт логгер.
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) { j.log = l }
}

// NewJournal создаёт дневник поверх хранилища st.
func NewJournal(st storage.Storage, opts ...Option) *Journal {
	j := &Journal{
		storage: st,
		now:     time.Now,
		newID:   uuid.NewString,
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(j)
	}

	return j
}

// Save проверяет форму и сохраняет запись.
// Ошибки хранилища возвращаются как *storage.Error.
func (j *Journal) Save(ctx context.Context, d Draft) (*models.DreamEntry, error) {
	d = Draft{
		Name:   strings.TrimSpace(d.Name),
		Email:  strings.TrimSpace(d.Email),
		Answer: strings.TrimSpace(d.Answer),
	}

	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, &ValidationError{Field: fieldErrs[0].Field(), Tag: fieldErrs[0].Tag()}
		}
		return nil, fmt.Errorf("%w, %v", ErrValidation, err)
	}

	entry := &models.DreamEntry{
		ID:        j.newID(),
		Name:      d.Name,
		Email:     d.Email,
		Answer:    d.Answer,
		CreatedAt: j.now().UTC(),
	}

	if err := j.storage.SaveEntry(ctx, entry); err != nil {
		j.log.Error("cannot save dream entry", "err", err)
		return nil, &storage.Error{Op: "save", Err: err}
	}

	j.log.Info("dream entry saved", "id", entry.ID)

	return entry, nil
}

// List возвращает все записи дневника.
func (j *Journal) List(ctx context.Context) ([]*models.DreamEntry, error) {
	entries, err := j.storage.ListEntries(ctx)
	if err != nil {
		j.log.Error("cannot read dream entries", "err", err)
		return nil, &storage.Error{Op: "list", Err: err}
	}

	return entries, nil
}
