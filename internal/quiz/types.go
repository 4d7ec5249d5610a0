package quiz

import (
	"errors"
	"strings"
	"time"
)

// Ошибки квиза.
var (
	// ErrConfiguration — набор вопросов нарушает инвариант (ровно один правильный вариант и т.п.).
	ErrConfiguration = errors.New("quiz configuration error")

	// ErrInvalidInput — ссылка на несуществующий вопрос/вариант или некорректные аргументы.
	ErrInvalidInput = errors.New("invalid input")
)

// Option представляет вариант ответа.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"correct"`
}

// Question представляет вопрос квиза.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
}

// Option возвращает вариант ответа по ID.
func (q Question) Option(optionID string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == optionID {
			return o, true
		}
	}

	return Option{}, false
}

// CorrectOption возвращает правильный вариант ответа.
func (q Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o, true
		}
	}

	return Option{}, false
}

// AnswerRecord — ответ на вопрос, создаётся один раз и больше не меняется.
type AnswerRecord struct {
	QuestionID       string
	SelectedOptionID string
	Correct          bool
	AnsweredAt       time.Time
}

// QuestionState — состояние вопроса в сессии.
type QuestionState string

const (
	QuestionUnanswered QuestionState = "unanswered"
	QuestionAnswered   QuestionState = "answered"
)

// SessionStatus — статус сессии.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionComplete   SessionStatus = "complete"
)

// SubmitStatus — итог вызова Submit.
type SubmitStatus string

const (
	// SubmitAccepted — ответ записан.
	SubmitAccepted SubmitStatus = "accepted"

	// SubmitAlreadyAnswered — на вопрос уже ответили, вызов ничего не изменил.
	SubmitAlreadyAnswered SubmitStatus = "already_answered"
)

// SubmitResult содержит итог Submit и запись ответа на вопрос.
type SubmitResult struct {
	Status SubmitStatus
	Record AnswerRecord
}

// Tally — количество правильных ответов и общее число вопросов.
type Tally struct {
	Correct int
	Total   int
}

// MaxOptions — максимум вариантов ответа в вопросе.
const MaxOptions = 6

// AnswerLetters — допустимые буквы для ответов (A-F для до 6 вариантов).
var AnswerLetters = []string{"A", "B", "C", "D", "E", "F"}

// LetterToIndex преобразует букву в индекс (A=0, B=1, ...).
func LetterToIndex(letter string) (int, bool) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	for i, l := range AnswerLetters {
		if l == letter {
			return i, true
		}
	}

	return -1, false
}

// IndexToLetter преобразует индекс в букву (0=A, 1=B, ...).
func IndexToLetter(idx int) string {
	if idx >= 0 && idx < len(AnswerLetters) {
		return AnswerLetters[idx]
	}

	return ""
}
