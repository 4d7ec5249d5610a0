package quiz

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// ErrNotComplete — результаты запрошены до ответа на все вопросы.
var ErrNotComplete = errors.New("quiz is not complete")

// CompletionListener получает итог попытки при переходе сессии в состояние complete.
type CompletionListener func(Summary)

// Progress — состояние попытки после очередного ответа.
type Progress struct {
	Submit   SubmitResult
	Score    Tally
	Complete bool

	// Summary заполнен, когда все вопросы отвечены.
	Summary *Summary
}

// Engine связывает реестр, сессию, обратную связь и подсчёт результатов.
type Engine struct {
	title      string
	questions  []Question
	feedback   *Emitter
	session    *Session
	onComplete []CompletionListener
	completed  uint64 // последняя попытка, о завершении которой уже сообщили
	log        *slog.Logger
	mu         sync.Mutex
}

type engineConfig struct {
	now func() time.Time
	log *slog.Logger
}

// EngineOption настраивает Engine.
type EngineOption func(*engineConfig)

// WithClock задаёт источник времени для записей ответов.
func WithClock(now func() time.Time) EngineOption {
	return func(c *engineConfig) { c.now = now }
}

// WithLogger задаёт логгер. По умолчанию используется slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *engineConfig) { c.log = l }
}

// NewEngine загружает вопросы из реестра и открывает сессию.
func NewEngine(registry *Registry, opts ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{
		now: time.Now,
		log: slog.Default(),
	}
	for _, o := range opts {
		o(cfg)
	}

	questions, err := registry.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load quiz, %w", err)
	}

	feedback := NewEmitter()
	e := &Engine{
		title:     registry.Title(),
		questions: questions,
		feedback:  feedback,
		session:   newSession(questions, feedback, cfg.now),
		log:       cfg.log,
	}

	e.log.Debug("quiz loaded", "title", e.title, "questions", len(questions), "session", e.session.ID())

	return e, nil
}

// Title возвращает название квиза.
func (e *Engine) Title() string {
	return e.title
}

// Session возвращает текущую сессию.
func (e *Engine) Session() *Session {
	return e.session
}

// OnFeedback подписывает слушателя на обратную связь по каждому ответу.
func (e *Engine) OnFeedback(l FeedbackListener) {
	e.feedback.Subscribe(l)
}

// OnComplete подписывает слушателя на завершение попытки.
func (e *Engine) OnComplete(l CompletionListener) {
	if l == nil {
		return
	}

	e.mu.Lock()
	e.onComplete = append(e.onComplete, l)
	e.mu.Unlock()
}

// Answer регистрирует ответ и сразу после этого проверяет завершение попытки.
func (e *Engine) Answer(ctx context.Context, questionID, optionID string) (Progress, error) {
	res, err := e.session.Submit(ctx, questionID, optionID)
	if err != nil {
		e.log.Debug("answer rejected", "question", questionID, "option", optionID, "err", err)
		return Progress{}, err
	}

	return e.afterSubmit(res)
}

// AnswerByLetter регистрирует ответ по букве варианта.
func (e *Engine) AnswerByLetter(ctx context.Context, questionID, letter string) (Progress, error) {
	res, err := e.session.SubmitLetter(ctx, questionID, letter)
	if err != nil {
		e.log.Debug("answer rejected", "question", questionID, "letter", letter, "err", err)
		return Progress{}, err
	}

	return e.afterSubmit(res)
}

func (e *Engine) afterSubmit(res SubmitResult) (Progress, error) {
	e.log.Debug("answer submitted",
		"question", res.Record.QuestionID,
		"status", res.Status,
		"correct", res.Record.Correct,
	)

	score, attempt, complete := e.session.snapshot()

	progress := Progress{
		Submit:   res,
		Score:    score,
		Complete: complete,
	}
	if !progress.Complete {
		return progress, nil
	}

	summary, err := Summarize(score.Correct, score.Total)
	if err != nil {
		return Progress{}, err
	}
	progress.Summary = &summary

	e.finish(attempt, summary)

	return progress, nil
}

// finish сообщает слушателям о завершении попытки attempt не более одного раза.
// Попытки, завершившиеся после более поздней, не объявляются.
func (e *Engine) finish(attempt uint64, summary Summary) {
	e.mu.Lock()
	if attempt <= e.completed {
		e.mu.Unlock()
		return
	}
	e.completed = attempt
	listeners := append([]CompletionListener(nil), e.onComplete...)
	e.mu.Unlock()

	e.log.Info("quiz completed",
		"attempt", attempt,
		"correct", summary.Correct,
		"total", summary.Total,
		"percent", summary.Percent(),
		"tier", summary.Tier,
	)

	for _, l := range listeners {
		l(summary)
	}
}

// Results возвращает итог завершённой попытки.
func (e *Engine) Results() (Summary, error) {
	score, _, complete := e.session.snapshot()
	if !complete {
		return Summary{}, ErrNotComplete
	}

	return Summarize(score.Correct, score.Total)
}

// Reset начинает новую попытку с теми же вопросами.
// Слушатели завершения сработают снова, когда новая попытка будет пройдена.
func (e *Engine) Reset() {
	e.session.Reset()

	e.log.Debug("quiz reset", "session", e.session.ID())
}

// ExportCSV экспортирует ответы текущей попытки в CSV.
func (e *Engine) ExportCSV() ([]byte, error) {
	answers := e.session.Answers()

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	_ = w.Write(
		[]string{
			"QuestionID",
			"Question",
			"SelectedOption",
			"CorrectOption",
			"Correct",
			"AnsweredAt",
		},
	)

	for _, q := range e.questions {
		rec, ok := answers[q.ID]
		if !ok {
			continue
		}

		selected, _ := q.Option(rec.SelectedOptionID)
		correct, _ := q.CorrectOption()

		_ = w.Write([]string{
			q.ID,
			q.Text,
			selected.Text,
			correct.Text,
			strconv.FormatBool(rec.Correct),
			rec.AnsweredAt.UTC().Format(time.RFC3339),
		})
	}

	w.Flush()

	err := w.Error()
	if err != nil {
		return nil, fmt.Errorf("failed to flush buffer: %w", err)
	}

	return buf.Bytes(), nil
}
