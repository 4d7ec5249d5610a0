package sender

import (
	"fmt"
	"io"
	"os"
)

// WriterSender реализует отправку сообщений в io.Writer.
type WriterSender struct {
	out io.Writer
}

// NewWriterSender создает новый объект структуры WriterSender.
func NewWriterSender(out io.Writer) *WriterSender {
	return &WriterSender{out: out}
}

// Message отправляет текстовое сообщение.
func (s *WriterSender) Message(text string) error {
	_, err := fmt.Fprintln(s.out, text)
	return err
}

// Document сохраняет данные в файл.
func (s *WriterSender) Document(fileName string, data []byte) error {
	if err := os.WriteFile(fileName, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", fileName, err)
	}

	return s.Message("Archivo guardado: " + fileName)
}
