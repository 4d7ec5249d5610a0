package sender

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSender(&buf)

	require.NoError(t, s.Message("hola"))

	path := filepath.Join(t.TempDir(), "respuestas.csv")
	require.NoError(t, s.Document(path, []byte("a,b\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
	assert.Equal(t, "hola\nArchivo guardado: "+path+"\n", buf.String())
}
