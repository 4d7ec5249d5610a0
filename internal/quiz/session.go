package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session — одна попытка прохождения квиза.
// answers принадлежит сессии и меняется только под mu.
type Session struct {
	id        string
	attempt   uint64
	startedAt time.Time
	questions []Question
	index     map[string]int
	answers   map[string]AnswerRecord
	feedback  *Emitter
	now       func() time.Time
	mu        sync.Mutex
}

// NewSession создаёт сессию по набору вопросов.
// feedback может быть nil, тогда события никуда не доставляются.
func NewSession(questions []Question, feedback *Emitter) *Session {
	return newSession(questions, feedback, time.Now)
}

func newSession(questions []Question, feedback *Emitter, now func() time.Time) *Session {
	questions = cloneQuestions(questions)

	index := make(map[string]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}

	return &Session{
		id:        uuid.NewString(),
		attempt:   1,
		startedAt: now(),
		questions: questions,
		index:     index,
		answers:   make(map[string]AnswerRecord, len(questions)),
		feedback:  feedback,
		now:       now,
	}
}

// ID возвращает идентификатор сессии. Меняется при Reset.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.id
}

// StartedAt возвращает время начала попытки.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startedAt
}

// Questions возвращает копию вопросов сессии.
func (s *Session) Questions() []Question {
	return cloneQuestions(s.questions)
}

// Question возвращает вопрос по ID.
func (s *Session) Question(questionID string) (Question, bool) {
	i, ok := s.index[questionID]
	if !ok {
		return Question{}, false
	}

	return s.questions[i], true
}

// Answer возвращает запись ответа на вопрос.
func (s *Session) Answer(questionID string) (AnswerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.answers[questionID]

	return rec, ok
}

// Answers возвращает копию всех ответов.
func (s *Session) Answers() map[string]AnswerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]AnswerRecord, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}

	return out
}

// State возвращает состояние вопроса.
func (s *Session) State(questionID string) QuestionState {
	if _, ok := s.Answer(questionID); ok {
		return QuestionAnswered
	}

	return QuestionUnanswered
}

// Status возвращает статус сессии.
func (s *Session) Status() SessionStatus {
	if IsComplete(s) {
		return SessionComplete
	}

	return SessionInProgress
}

// NextQuestion возвращает первый вопрос без ответа.
func (s *Session) NextQuestion() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.questions {
		if _, ok := s.answers[q.ID]; !ok {
			return q, true
		}
	}

	return Question{}, false
}

// Submit регистрирует ответ на вопрос.
// Повторный ответ на тот же вопрос ничего не меняет и возвращает SubmitAlreadyAnswered
// вместе с первой записью. Проверку завершения выполняет вызывающий.
func (s *Session) Submit(ctx context.Context, questionID, optionID string) (SubmitResult, error) {
	question, ok := s.Question(questionID)
	if !ok {
		return SubmitResult{}, fmt.Errorf("%w: no such question %q", ErrInvalidInput, questionID)
	}

	option, ok := question.Option(optionID)
	if !ok {
		return SubmitResult{}, fmt.Errorf("%w: no such option %q in question %q", ErrInvalidInput, optionID, questionID)
	}

	s.mu.Lock()

	if rec, answered := s.answers[questionID]; answered {
		s.mu.Unlock()
		return SubmitResult{Status: SubmitAlreadyAnswered, Record: rec}, nil
	}

	rec := AnswerRecord{
		QuestionID:       questionID,
		SelectedOptionID: optionID,
		Correct:          option.IsCorrect,
		AnsweredAt:       s.now(),
	}
	s.answers[questionID] = rec

	s.mu.Unlock()

	event := FeedbackEvent{
		QuestionID: questionID,
		Correct:    rec.Correct,
	}
	if !rec.Correct {
		if correct, ok := question.CorrectOption(); ok {
			event.RevealedCorrectOptionID = correct.ID
		}
	}
	s.feedback.Emit(event)

	return SubmitResult{Status: SubmitAccepted, Record: rec}, nil
}

// SubmitLetter регистрирует ответ по букве варианта (A, B, C, ...).
func (s *Session) SubmitLetter(ctx context.Context, questionID, letter string) (SubmitResult, error) {
	question, ok := s.Question(questionID)
	if !ok {
		return SubmitResult{}, fmt.Errorf("%w: no such question %q", ErrInvalidInput, questionID)
	}

	idx, ok := LetterToIndex(letter)
	if !ok || idx >= len(question.Options) {
		return SubmitResult{}, fmt.Errorf("%w: letter %q is out of range in question %q", ErrInvalidInput, letter, questionID)
	}

	return s.Submit(ctx, questionID, question.Options[idx].ID)
}

// Reset очищает ответы и начинает новую попытку с теми же вопросами.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = uuid.NewString()
	s.attempt++
	s.startedAt = s.now()
	s.answers = make(map[string]AnswerRecord, len(s.questions))
}
