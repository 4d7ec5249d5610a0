package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/letsssgooo/onirico/internal/diary"
	"github.com/letsssgooo/onirico/internal/events/fetcher"
	"github.com/letsssgooo/onirico/internal/events/sender"
	"github.com/letsssgooo/onirico/internal/interactive"
	"github.com/letsssgooo/onirico/internal/quiz"
	"github.com/letsssgooo/onirico/internal/sleepcycle"
)

const defaultWidth = 80

// ErrStopped — пользователь завершил работу командой /salir.
var ErrStopped = errors.New("bot stopped")

type state int

const (
	stateIdle state = iota
	stateQuiz
	stateDiaryName
	stateDiaryEmail
	stateDiaryAnswer
)

// Bot реализует консольный интерфейс сайта: квиз, дневник, калькулятор циклов.
type Bot struct {
	fetcher    fetcher.Fetcher
	sender     sender.Sender
	engine     *quiz.Engine
	journal    *diary.Journal
	stars      *interactive.StarPanel
	eye        *interactive.Illustration
	menu       interactive.NavMenu
	animation  interactive.CycleAnimation
	konami     interactive.Konami
	width      int
	state      state
	draft      diary.Draft
	exportPath string
	log        *slog.Logger
}

// Option настраивает Bot.
type Option func(*Bot)

// WithExportPath задаёт файл для /exportar.
func WithExportPath(path string) Option {
	return func(b *Bot) { b.exportPath = path }
}

// WithStarPanel задаёт уровни сна для /estrella.
func WithStarPanel(p *interactive.StarPanel) Option {
	return func(b *Bot) { b.stars = p }
}

// WithWidth задаёт ширину экрана для меню. Консоль по умолчанию считается мобильной.
func WithWidth(width int) Option {
	return func(b *Bot) { b.width = width }
}

// WithLogger задаёт логгер.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bot) { b.log = l }
}

// NewBot создаёт нового бота и подписывает его на события квиза.
func NewBot(f fetcher.Fetcher, s sender.Sender, engine *quiz.Engine, journal *diary.Journal, opts ...Option) *Bot {
	b := &Bot{
		fetcher: f,
		sender:  s,
		engine:  engine,
		journal: journal,
		stars:   interactive.DefaultStarPanel(),
		eye:     interactive.NewIllustration(),
		width:   defaultWidth,
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(b)
	}

	engine.OnFeedback(b.onFeedback)
	engine.OnComplete(b.onComplete)

	return b
}

// Run читает ввод до его окончания или команды /salir.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.sender.Message(msgHelp); err != nil {
		return err
	}

	for {
		updates, err := b.fetcher.GetUpdates(ctx)
		if errors.Is(err, io.EOF) {
			return b.sender.Message(msgBye)
		}
		if errors.Is(err, fetcher.ErrLineTooLong) {
			b.log.Warn("input line skipped", "err", err)
			if err := b.sender.Message(msgLineTooLong); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		for _, update := range updates {
			err := b.HandleUpdate(ctx, update)
			if errors.Is(err, ErrStopped) {
				return b.sender.Message(msgBye)
			}
			if err != nil {
				return err
			}
		}
	}
}

// HandleUpdate обрабатывает одно обновление.
func (b *Bot) HandleUpdate(ctx context.Context, update fetcher.Update) error {
	text := update.Text
	b.log.Debug("update", "id", update.UpdateID, "state", b.state)

	if b.konami.Push(text) {
		if err := b.sender.Message(msgEasterEgg); err != nil {
			return err
		}
	}

	if strings.HasPrefix(text, "/") {
		return b.handleCommand(ctx, text)
	}

	switch b.state {
	case stateQuiz:
		return b.handleAnswer(ctx, text)
	case stateDiaryName, stateDiaryEmail, stateDiaryAnswer:
		return b.handleDiary(ctx, text)
	}

	if text == "" {
		return nil
	}

	return b.sender.Message(msgUnknownCommand)
}

func (b *Bot) handleCommand(ctx context.Context, text string) error {
	fields := strings.Fields(text)
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "/ayuda", "/start":
		return b.sender.Message(msgHelp)
	case "/quiz":
		b.menu.SetActive("quiz")
		b.state = stateQuiz
		return b.askNext()
	case "/reiniciar":
		b.engine.Reset()
		b.state = stateQuiz
		if err := b.sender.Message(msgQuizReset); err != nil {
			return err
		}
		return b.askNext()
	case "/ciclos":
		b.menu.SetActive("ciclos")
		return b.handleCycles(args)
	case "/estrella":
		b.menu.SetActive("fases")
		return b.handleStar(args)
	case "/ojo":
		return b.handleEye()
	case "/menu":
		return b.handleMenu(args)
	case "/animacion":
		return b.handleAnimation()
	case "/diario":
		b.menu.SetActive("diario")
		b.state = stateDiaryName
		b.draft = diary.Draft{}
		return b.sender.Message(msgDiaryName)
	case "/suenos":
		return b.listDreams(ctx)
	case "/exportar":
		return b.export()
	case "/salir":
		return ErrStopped
	}

	return b.sender.Message(msgUnknownCommand)
}

func (b *Bot) askNext() error {
	q, ok := b.engine.Session().NextQuestion()
	if !ok {
		b.state = stateIdle
		summary, err := b.engine.Results()
		if err != nil {
			return err
		}
		return b.sender.Message(formatResults(summary))
	}

	score := quiz.Score(b.engine.Session())
	answered := len(b.engine.Session().Answers())

	lines := []string{fmt.Sprintf(msgQuestion, answered+1, score.Total, q.Text)}
	for i, o := range q.Options {
		lines = append(lines, fmt.Sprintf(msgOption, quiz.IndexToLetter(i), o.Text))
	}
	lines = append(lines, fmt.Sprintf(msgAnswerPrompt, quiz.IndexToLetter(0), quiz.IndexToLetter(len(q.Options)-1)))

	return b.sender.Message(strings.Join(lines, "\n"))
}

func (b *Bot) handleAnswer(ctx context.Context, text string) error {
	q, ok := b.engine.Session().NextQuestion()
	if !ok {
		return b.askNext()
	}

	progress, err := b.engine.AnswerByLetter(ctx, q.ID, text)
	if errors.Is(err, quiz.ErrInvalidInput) {
		return b.sender.Message(fmt.Sprintf(msgInvalidLetter, quiz.IndexToLetter(0), quiz.IndexToLetter(len(q.Options)-1)))
	}
	if err != nil {
		return err
	}

	if progress.Submit.Status == quiz.SubmitAlreadyAnswered {
		if err := b.sender.Message(msgRepeatedAnswer); err != nil {
			return err
		}
	}

	if progress.Complete {
		b.state = stateIdle
		return nil
	}

	return b.askNext()
}

func (b *Bot) onFeedback(ev quiz.FeedbackEvent) {
	msg := msgCorrect
	if !ev.Correct {
		msg = fmt.Sprintf(msgIncorrect, b.optionLetter(ev.QuestionID, ev.RevealedCorrectOptionID))
	}

	if q, ok := b.engine.Session().Question(ev.QuestionID); ok && q.Explanation != "" {
		msg += "\n" + fmt.Sprintf(msgExplanation, q.Explanation)
	}

	if err := b.sender.Message(msg); err != nil {
		b.log.Error("cannot send feedback", "err", err)
	}
}

func (b *Bot) onComplete(summary quiz.Summary) {
	if err := b.sender.Message(formatResults(summary)); err != nil {
		b.log.Error("cannot send results", "err", err)
	}
}

func (b *Bot) optionLetter(questionID, optionID string) string {
	q, ok := b.engine.Session().Question(questionID)
	if !ok {
		return optionID
	}

	for i, o := range q.Options {
		if o.ID == optionID {
			return quiz.IndexToLetter(i)
		}
	}

	return optionID
}

func formatResults(s quiz.Summary) string {
	return fmt.Sprintf(msgResults, s.Emoji, s.Correct, s.Total, s.Message)
}

func (b *Bot) handleCycles(args []string) error {
	if len(args) != 1 {
		return b.sender.Message(msgInvalidHours)
	}

	hours, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", "."), 64)
	if err != nil {
		return b.sender.Message(msgInvalidHours)
	}

	res, err := sleepcycle.Estimate(hours)
	if errors.Is(err, sleepcycle.ErrInvalidHours) {
		return b.sender.Message(msgInvalidHours)
	}
	if err != nil {
		return err
	}

	return b.sender.Message(fmt.Sprintf(msgCycles, res.Hours, res.Label))
}

func (b *Bot) handleStar(args []string) error {
	levels := strings.Join(b.stars.Levels(), ", ")
	if len(args) != 1 {
		return b.sender.Message(fmt.Sprintf(msgUnknownLevel, levels))
	}

	revealed, announcement, err := b.stars.Toggle(args[0])
	if err != nil {
		return b.sender.Message(fmt.Sprintf(msgUnknownLevel, levels))
	}

	if revealed {
		return b.sender.Message(fmt.Sprintf(msgStarRevealed, args[0], announcement))
	}

	return b.sender.Message(fmt.Sprintf(msgStarHidden, args[0]))
}

func (b *Bot) handleEye() error {
	if b.eye.Toggle() == interactive.EyeAsleep {
		return b.sender.Message(msgEyeAsleep)
	}

	return b.sender.Message(msgEyeAwake)
}

func (b *Bot) handleMenu(args []string) error {
	if len(args) == 0 {
		if !b.menu.Toggle() {
			return b.sender.Message(msgMenuClosed)
		}

		lines := []string{msgMenuTitle}
		for _, section := range interactive.Sections {
			mark := " "
			if section == b.menu.Active() {
				mark = "•"
			}
			lines = append(lines, fmt.Sprintf(msgMenuItem, mark, section))
		}

		return b.sender.Message(strings.Join(lines, "\n"))
	}

	section := strings.ToLower(args[0])
	if !interactive.IsSection(section) {
		return b.sender.Message(fmt.Sprintf(msgUnknownSection, strings.Join(interactive.Sections, ", ")))
	}

	b.menu.Follow(section, b.width)

	return b.sender.Message(fmt.Sprintf(msgSection, section))
}

func (b *Bot) handleAnimation() error {
	if b.animation.Toggle() {
		return b.sender.Message(msgAnimationPlaying)
	}

	return b.sender.Message(msgAnimationPaused)
}

func (b *Bot) handleDiary(ctx context.Context, text string) error {
	switch b.state {
	case stateDiaryName:
		b.draft.Name = text
		b.state = stateDiaryEmail
		return b.sender.Message(msgDiaryEmail)
	case stateDiaryEmail:
		if !diary.ValidEmail(text) {
			return b.sender.Message(msgInvalidEmail)
		}
		b.draft.Email = text
		b.state = stateDiaryAnswer
		return b.sender.Message(msgDiaryAnswer)
	}

	b.draft.Answer = text

	entry, err := b.journal.Save(ctx, b.draft)

	var vErr *diary.ValidationError
	switch {
	case errors.As(err, &vErr):
		return b.restartDiaryAt(vErr.Field)
	case err != nil:
		b.state = stateIdle
		return b.sender.Message(msgDiaryFailed)
	}

	b.state = stateIdle
	b.draft = diary.Draft{}

	return b.sender.Message(fmt.Sprintf(msgDiarySaved, entry.Name))
}

func (b *Bot) restartDiaryAt(field string) error {
	if err := b.sender.Message(fmt.Sprintf(msgInvalidField, field)); err != nil {
		return err
	}

	switch field {
	case "Name":
		b.state = stateDiaryName
		return b.sender.Message(msgDiaryName)
	case "Email":
		b.state = stateDiaryEmail
		return b.sender.Message(msgDiaryEmail)
	}

	b.state = stateDiaryAnswer
	return b.sender.Message(msgDiaryAnswer)
}

func (b *Bot) listDreams(ctx context.Context) error {
	entries, err := b.journal.List(ctx)
	if err != nil {
		return b.sender.Message(msgDiaryFailed)
	}

	if len(entries) == 0 {
		return b.sender.Message(msgNoDreams)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf(msgDream, e.CreatedAt.Format("2006-01-02 15:04"), e.Name, e.Answer))
	}

	return b.sender.Message(strings.Join(lines, "\n"))
}

// Export сохраняет ответы квиза в CSV, если задан путь.
func (b *Bot) Export() error {
	if b.exportPath == "" {
		return nil
	}

	data, err := b.engine.ExportCSV()
	if err != nil {
		return err
	}

	return b.sender.Document(b.exportPath, data)
}

func (b *Bot) export() error {
	if b.exportPath == "" {
		return b.sender.Message(msgExportDisabled)
	}

	return b.Export()
}
