package bot

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/onirico/internal/diary"
	"github.com/letsssgooo/onirico/internal/domain/models"
	"github.com/letsssgooo/onirico/internal/events/fetcher"
	"github.com/letsssgooo/onirico/internal/events/sender"
	"github.com/letsssgooo/onirico/internal/interactive"
	"github.com/letsssgooo/onirico/internal/quiz"
	"github.com/letsssgooo/onirico/internal/storage"
)

const twoQuestions = `{
	"title": "Test Quiz",
	"questions": [
		{"id": "q1", "text": "¿Fase de los sueños?", "options": [{"text": "NREM"}, {"text": "REM", "correct": true}], "explanation": "Los sueños vívidos ocurren en REM."},
		{"id": "q2", "text": "¿Duración de un ciclo?", "options": [{"text": "90 minutos", "correct": true}, {"text": "3 horas"}]}
	]
}`

type testBot struct {
	bot   *Bot
	out   *bytes.Buffer
	store *storage.MemoryStorage
}

func newTestBot(t *testing.T, script string, opts ...Option) testBot {
	t.Helper()

	registry, err := quiz.ParseRegistry([]byte(twoQuestions))
	require.NoError(t, err)

	engine, err := quiz.NewEngine(registry)
	require.NoError(t, err)

	var out bytes.Buffer
	store := storage.NewMemoryStorage()

	b := NewBot(
		fetcher.NewLineFetcher(strings.NewReader(script)),
		sender.NewWriterSender(&out),
		engine,
		diary.NewJournal(store),
		opts...,
	)

	return testBot{bot: b, out: &out, store: store}
}

func TestBot_QuizFlow(t *testing.T) {
	tb := newTestBot(t, "/quiz\nA\nz\na\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Contains(t, out, "Pregunta 1 de 2: ¿Fase de los sueños?")
	assert.Contains(t, out, "B) REM")
	assert.Contains(t, out, "Ups, esa no era 😴 La correcta era la B.\n💡 Los sueños vívidos ocurren en REM.")
	assert.Equal(t, 1, strings.Count(out, "💡"))
	assert.Contains(t, out, "Pregunta 2 de 2: ¿Duración de un ciclo?")
	assert.Contains(t, out, "Elegí una de las opciones: A-B.")
	assert.Contains(t, out, "¡Correcto! ⭐")
	assert.Contains(t, out, "1 de 2 correctas")
	assert.Contains(t, out, "No está mal, pero podés aprender más")
	assert.True(t, strings.HasSuffix(out, "¡Dulces sueños! 🌙\n"))

	assert.Equal(t, 1, strings.Count(out, "Resultados del Quiz"))
}

func TestBot_QuizAfterCompletionShowsResults(t *testing.T) {
	tb := newTestBot(t, "/quiz\nb\na\n/quiz\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Equal(t, 2, strings.Count(out, "2 de 2 correctas"))
	assert.Contains(t, out, "¡Perfecto! Sos un experto del sueño")
}

func TestBot_Reset(t *testing.T) {
	tb := newTestBot(t, "/quiz\nb\na\n/reiniciar\na\nb\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Contains(t, out, "Quiz reiniciado. ¡Suerte!")
	assert.Contains(t, out, "2 de 2 correctas")
	assert.Contains(t, out, "0 de 2 correctas")
}

func TestBot_Diary(t *testing.T) {
	script := strings.Join([]string{
		"/diario",
		"Abi",
		"no-es-email",
		"abi@example.com",
		"Soñé que volaba",
		"/suenos",
	}, "\n")
	tb := newTestBot(t, script)

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Contains(t, out, "Por favor, ingresá un email válido")
	assert.Contains(t, out, "¡Gracias Abi! Tu sueño ha sido registrado en el diario. 🌙")
	assert.Contains(t, out, "Abi: Soñé que volaba")

	entries, err := tb.store.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abi@example.com", entries[0].Email)
}

func TestBot_DiaryEmptyNameAsksAgain(t *testing.T) {
	tb := newTestBot(t, "/diario\n\nabi@example.com\nun sueño\nAbi\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Contains(t, out, "Revisá el campo Name, por favor.")
	assert.Equal(t, 2, strings.Count(out, "¿Cómo te llamás?"))

	// после повторного ввода имени форма продолжается с email
	entries, err := tb.store.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, stateDiaryEmail, tb.bot.state)
}

func TestBot_DiaryStorageFailure(t *testing.T) {
	registry, err := quiz.ParseRegistry([]byte(twoQuestions))
	require.NoError(t, err)
	engine, err := quiz.NewEngine(registry)
	require.NoError(t, err)

	var out bytes.Buffer
	b := NewBot(
		fetcher.NewLineFetcher(strings.NewReader("/diario\nAbi\nabi@example.com\nsueño\n/suenos\n")),
		sender.NewWriterSender(&out),
		engine,
		diary.NewJournal(brokenStorage{}),
	)

	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), "No pudimos guardar tu sueño"))
}

func TestBot_CyclesAndStars(t *testing.T) {
	tb := newTestBot(t, "/ciclos 8,5\n/ciclos mucho\n/estrella 4\n/estrella 4\n/estrella 9\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Contains(t, out, "8.5 horas de sueño = ~5-6 ciclos")
	assert.Contains(t, out, "Indicá las horas de sueño")
	assert.Contains(t, out, "⭐ Nivel 4: REM")
	assert.Contains(t, out, "Nivel 4 oculto.")
	assert.Contains(t, out, "Ese nivel no existe. Niveles: 1, 2, 3, 4.")
}

func TestBot_StopAndUnknown(t *testing.T) {
	tb := newTestBot(t, "hola\n/nada\n/salir\n/quiz\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Equal(t, 2, strings.Count(out, "No entendí."))
	assert.NotContains(t, out, "Pregunta 1")
}

func TestBot_Konami(t *testing.T) {
	tb := newTestBot(t, "ArrowUp\nArrowUp\nArrowDown\nArrowDown\nArrowLeft\nArrowRight\nArrowLeft\nArrowRight\nb\na\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	assert.Contains(t, tb.out.String(), "🎉 ¡Easter Egg activado!")
}

func TestBot_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "respuestas.csv")
	tb := newTestBot(t, "/exportar\n/quiz\nb\n/exportar\n", WithExportPath(path))

	require.NoError(t, tb.bot.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "q1,¿Fase de los sueños?,REM,REM,true")

	noExport := newTestBot(t, "/exportar\n")
	require.NoError(t, noExport.bot.Run(context.Background()))
	assert.Contains(t, noExport.out.String(), "La exportación no está configurada")
}

func TestBot_EyeAnimationMenu(t *testing.T) {
	tb := newTestBot(t, "/ojo\n/ojo\n/animacion\n/animacion\n/ciclos 8\n/menu\n/menu fases\n/menu contacto\n")

	require.NoError(t, tb.bot.Run(context.Background()))

	out := tb.out.String()
	assert.Contains(t, out, "😴 El ojo se cerró. Shh...")
	assert.Contains(t, out, "👁 El ojo está despierto.")
	assert.Contains(t, out, "⏸ Animación de los ciclos en pausa.")
	assert.Contains(t, out, "▶ Animación de los ciclos en marcha.")
	assert.Contains(t, out, "Menú:\n  inicio\n  fases\n• ciclos")
	assert.Contains(t, out, "Sección activa: fases")
	assert.Contains(t, out, "Esa sección no existe.")

	// консоль узкая, переход по ссылке закрывает меню
	assert.False(t, tb.bot.menu.Open())
	assert.Equal(t, "fases", tb.bot.menu.Active())
	assert.Equal(t, interactive.EyeAwake, tb.bot.eye.State())
}

func TestBot_MenuStaysOpenOnWideScreen(t *testing.T) {
	tb := newTestBot(t, "/menu\n/menu quiz\n", WithWidth(1280))

	require.NoError(t, tb.bot.Run(context.Background()))

	assert.True(t, tb.bot.menu.Open())
	assert.Equal(t, "quiz", tb.bot.menu.Active())
}

func TestBot_LineTooLongKeepsSession(t *testing.T) {
	registry, err := quiz.ParseRegistry([]byte(twoQuestions))
	require.NoError(t, err)
	engine, err := quiz.NewEngine(registry)
	require.NoError(t, err)

	script := "/diario\nAbi\nabi@example.com\n" + strings.Repeat("z", 64) + "\nSoñé corto\n"

	var out bytes.Buffer
	store := storage.NewMemoryStorage()
	b := NewBot(
		fetcher.NewLineFetcher(strings.NewReader(script), fetcher.WithMaxLineSize(32)),
		sender.NewWriterSender(&out),
		engine,
		diary.NewJournal(store),
	)

	require.NoError(t, b.Run(context.Background()))

	assert.Contains(t, out.String(), "El texto es demasiado largo")
	assert.Contains(t, out.String(), "¡Gracias Abi!")

	entries, err := store.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Soñé corto", entries[0].Answer)
}

func TestBot_RunCanceled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	registry, err := quiz.ParseRegistry([]byte(twoQuestions))
	require.NoError(t, err)
	engine, err := quiz.NewEngine(registry)
	require.NoError(t, err)

	b := NewBot(
		fetcher.NewLineFetcher(r),
		sender.NewWriterSender(io.Discard),
		engine,
		diary.NewJournal(storage.NewMemoryStorage()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

type brokenStorage struct{}

func (brokenStorage) SaveEntry(context.Context, *models.DreamEntry) error {
	return storage.ErrQuotaExceeded
}

func (brokenStorage) ListEntries(context.Context) ([]*models.DreamEntry, error) {
	return nil, storage.ErrSerialization
}

func (brokenStorage) Close() error { return nil }
