package slogcustom

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

type CustomHandler struct {
	l       *log.Logger
	level   slog.Leveler
	attrs   []slog.Attr
	group   string
	colored bool
}

func NewCustomHandler(out io.Writer, level slog.Leveler, colored bool) *CustomHandler {
	return &CustomHandler{
		l:       log.New(out, "", 0),
		level:   level,
		colored: colored,
	}
}

func (c *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = c.paint(color.FgMagenta, level)
	case slog.LevelInfo:
		level = c.paint(color.FgHiBlue, level)
	case slog.LevelWarn:
		level = c.paint(color.FgYellow, level)
	case slog.LevelError:
		level = c.paint(color.FgRed, level)
	}

	var attrs strings.Builder
	write := func(a slog.Attr) {
		attrs.WriteString(c.paint(color.FgGreen, a.Key) + "=" + fmt.Sprint(a.Value.Any()) + " ")
	}
	for _, a := range c.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(c.qualify(a))
		return true
	})

	c.l.Println(
		r.Time.Format("15:04:05.000"),
		level,
		r.Message,
		strings.TrimSpace(attrs.String()),
	)
	return nil
}

func (c *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h := *c
	h.attrs = append([]slog.Attr(nil), c.attrs...)
	for _, a := range attrs {
		h.attrs = append(h.attrs, c.qualify(a))
	}
	return &h
}

func (c *CustomHandler) WithGroup(name string) slog.Handler {
	h := *c
	if h.group != "" {
		name = h.group + "." + name
	}
	h.group = name
	return &h
}

func (c *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

func (c *CustomHandler) qualify(a slog.Attr) slog.Attr {
	if c.group != "" {
		a.Key = c.group + "." + a.Key
	}
	return a
}

func (c *CustomHandler) paint(attr color.Attribute, s string) string {
	if !c.colored {
		return s
	}

	p := color.New(attr)
	p.EnableColor()
	return p.Sprint(s)
}
