package quiz

import _ "embed"

//go:embed default.json
var defaultQuestions []byte

// DefaultRegistry возвращает встроенный квиз о сне.
func DefaultRegistry() (*Registry, error) {
	return ParseRegistry(defaultQuestions)
}
