package fetcher

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFetcher(t *testing.T) {
	f := NewLineFetcher(strings.NewReader("/quiz\n  b \nsin salto"))
	ctx := context.Background()

	updates, err := f.GetUpdates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Update{{UpdateID: 1, Text: "/quiz"}}, updates)

	updates, err = f.GetUpdates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Update{{UpdateID: 2, Text: "b"}}, updates)

	updates, err = f.GetUpdates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Update{{UpdateID: 3, Text: "sin salto"}}, updates)

	_, err = f.GetUpdates(ctx)
	assert.ErrorIs(t, err, io.EOF)

	_, err = f.GetUpdates(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineFetcher_Canceled(t *testing.T) {
	f := NewLineFetcher(strings.NewReader("x\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.GetUpdates(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineFetcher_CancelWhileWaiting(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	f := NewLineFetcher(r)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		_, err := f.GetUpdates(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("GetUpdates did not return after cancel")
	}

	// строка, пришедшая после отмены, не теряется
	go func() { _, _ = io.WriteString(w, "hola\n") }()

	updates, err := f.GetUpdates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hola", updates[0].Text)
}

func TestLineFetcher_LineTooLong(t *testing.T) {
	long := strings.Repeat("z", 100)
	f := NewLineFetcher(strings.NewReader("ok\n"+long+"\nsigue\n"+long), WithMaxLineSize(16))
	ctx := context.Background()

	updates, err := f.GetUpdates(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", updates[0].Text)

	_, err = f.GetUpdates(ctx)
	assert.ErrorIs(t, err, ErrLineTooLong)

	updates, err = f.GetUpdates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Update{{UpdateID: 2, Text: "sigue"}}, updates)

	_, err = f.GetUpdates(ctx)
	assert.ErrorIs(t, err, ErrLineTooLong)

	_, err = f.GetUpdates(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineFetcher_LongLineWithinLimit(t *testing.T) {
	long := strings.Repeat("s", 200<<10)
	f := NewLineFetcher(strings.NewReader(long + "\n"))

	updates, err := f.GetUpdates(context.Background())
	require.NoError(t, err)
	assert.Len(t, updates[0].Text, 200<<10)
}
