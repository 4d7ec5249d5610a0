package fetcher

import "context"

// Update — одна строка ввода пользователя.
type Update struct {
	UpdateID int
	Text     string
}

// Fetcher определяет основной интерфейс для получения сообщений.
type Fetcher interface {
	// GetUpdates получает следующие Update. Возвращает io.EOF, когда ввод закончился.
	GetUpdates(ctx context.Context) ([]Update, error)
}
