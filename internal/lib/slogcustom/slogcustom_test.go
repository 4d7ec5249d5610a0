package slogcustom

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_Plain(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCustomHandler(&buf, slog.LevelInfo, false))

	log.Debug("hidden")
	log.With("session", "s1").Info("quiz completed", "correct", 3, "total", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO: quiz completed session=s1 correct=3 total=4")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestCustomHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCustomHandler(&buf, slog.LevelDebug, false))

	log.WithGroup("diary").Debug("saved", "id", "42")

	assert.Contains(t, buf.String(), "DEBUG: saved diary.id=42")
}

func TestCustomHandler_Colored(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCustomHandler(&buf, slog.LevelInfo, true))

	log.Error("boom")

	assert.Contains(t, buf.String(), "\x1b[31mERROR:\x1b[0m")
}
