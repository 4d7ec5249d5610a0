package fetcher

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// DefaultMaxLineSize — максимальная длина строки ввода в байтах.
const DefaultMaxLineSize = 1 << 20

// ErrLineTooLong — строка длиннее лимита, она пропущена целиком.
var ErrLineTooLong = errors.New("input line too long")

type line struct {
	text string
	err  error
}

// LineFetcher реализует Fetcher поверх построчного ввода.
// Чтение идёт в отдельной горутине, поэтому GetUpdates можно прервать через ctx.
type LineFetcher struct {
	reader  *bufio.Reader
	maxLine int
	lines   chan line
	once    sync.Once
	offset  int
}

// Option настраивает LineFetcher.
type Option func(*LineFetcher)

// WithMaxLineSize задаёт лимит длины строки.
func WithMaxLineSize(n int) Option {
	return func(f *LineFetcher) {
		if n > 0 {
			f.maxLine = n
		}
	}
}

func NewLineFetcher(r io.Reader, opts ...Option) *LineFetcher {
	f := &LineFetcher{
		reader:  bufio.NewReader(r),
		maxLine: DefaultMaxLineSize,
		lines:   make(chan line),
		offset:  0,
	}
	for _, o := range opts {
		o(f)
	}

	return f
}

// GetUpdates ждёт одну строку ввода или отмену ctx.
// Слишком длинная строка даёт ErrLineTooLong, после неё чтение продолжается.
func (f *LineFetcher) GetUpdates(ctx context.Context) ([]Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.once.Do(func() { go f.scan() })

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case l, ok := <-f.lines:
		if !ok {
			return nil, io.EOF
		}
		if l.err != nil {
			return nil, l.err
		}

		f.offset++

		return []Update{{UpdateID: f.offset, Text: strings.TrimSpace(l.text)}}, nil
	}
}

func (f *LineFetcher) scan() {
	defer close(f.lines)

	var (
		buf     []byte
		tooLong bool
	)

	for {
		chunk, err := f.reader.ReadSlice('\n')
		if !tooLong && len(buf)+len(chunk) <= f.maxLine {
			buf = append(buf, chunk...)
		} else {
			tooLong = true
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			f.lines <- line{err: err}
			return
		}

		if eof && len(buf) == 0 && !tooLong {
			return
		}

		if tooLong {
			f.lines <- line{err: ErrLineTooLong}
		} else {
			f.lines <- line{text: string(buf)}
		}

		if eof {
			return
		}

		buf, tooLong = buf[:0], false
	}
}
