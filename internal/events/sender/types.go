package sender

// Sender определяет основной интерфейс для отправки сообщений.
type Sender interface {
	// Message отправляет текстовое сообщение.
	Message(text string) error

	// Document сохраняет данные в файл fileName.
	Document(fileName string, data []byte) error
}
