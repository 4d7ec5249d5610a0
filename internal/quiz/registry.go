package quiz

import (
	"encoding/json"
	"fmt"
)

// Registry хранит неизменяемый набор вопросов квиза.
type Registry struct {
	title     string
	questions []Question
}

type registryFile struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// NewRegistry создаёт реестр из набора вопросов.
// Вопросы копируются; варианты без ID получают букву по позиции (A, B, ...).
// Набор проверяется в Load.
func NewRegistry(title string, questions []Question) *Registry {
	return &Registry{
		title:     title,
		questions: normalize(questions),
	}
}

// ParseRegistry парсит JSON с вопросами и создаёт реестр.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: cannot parse questions: %v", ErrConfiguration, err)
	}

	return NewRegistry(file.Title, file.Questions), nil
}

// Title возвращает название квиза.
func (r *Registry) Title() string {
	return r.title
}

// Load возвращает набор вопросов.
// Возвращает ErrConfiguration, если хотя бы один вопрос некорректен.
func (r *Registry) Load() ([]Question, error) {
	if err := isCorrectRegistry(r.questions); err != nil {
		return nil, err
	}

	return cloneQuestions(r.questions), nil
}

func normalize(questions []Question) []Question {
	out := cloneQuestions(questions)
	for i := range out {
		for j := range out[i].Options {
			if out[i].Options[j].ID == "" {
				out[i].Options[j].ID = IndexToLetter(j)
			}
		}
	}

	return out
}

func cloneQuestions(questions []Question) []Question {
	if questions == nil {
		return nil
	}

	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Options = append([]Option(nil), q.Options...)
	}

	return out
}

// isCorrectRegistry проверяет на корректность набор вопросов
func isCorrectRegistry(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: need at least one question", ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(questions))

	for i, question := range questions {
		name := question.ID
		if name == "" {
			return fmt.Errorf("%w: missing field id of %d question", ErrConfiguration, i)
		}

		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: duplicate question id %q", ErrConfiguration, name)
		}
		seen[name] = struct{}{}

		if question.Text == "" {
			return fmt.Errorf("%w: missing field text of question %q", ErrConfiguration, name)
		}

		if len(question.Options) < 2 {
			return fmt.Errorf("%w: amount of options must be at least two in question %q", ErrConfiguration, name)
		}

		if len(question.Options) > MaxOptions {
			return fmt.Errorf("%w: amount of options must be at most %d in question %q",
				ErrConfiguration, MaxOptions, name)
		}

		optionIDs := make(map[string]struct{}, len(question.Options))
		correct := 0

		for _, option := range question.Options {
			if _, ok := optionIDs[option.ID]; ok {
				return fmt.Errorf("%w: duplicate option id %q in question %q", ErrConfiguration, option.ID, name)
			}
			optionIDs[option.ID] = struct{}{}

			if option.IsCorrect {
				correct++
			}
		}

		if correct != 1 {
			return fmt.Errorf("%w: question %q must have exactly one correct option, got %d",
				ErrConfiguration, name, correct)
		}
	}

	return nil
}
