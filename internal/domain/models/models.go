package models

import (
	"time"
)

// Файл для работы с моделями для хранилища, которые доступны извне.
// Дневник создаёт экземпляры моделей, заполняет их данными и
// передаёт в соответствующую функцию хранилища.

// DreamEntry определяет запись дневника сновидений
type DreamEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Answer    string    `json:"respuesta"`
	CreatedAt time.Time `json:"fecha"`
}
