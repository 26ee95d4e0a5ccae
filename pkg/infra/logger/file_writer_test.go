package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterPersistsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	w, err := NewFileWriter(path, 4096)
	require.NoError(t, err)

	_, err = w.Write([]byte("first line\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first line")
	assert.Contains(t, string(data), "second line")
}

func TestFileWriterNeverBlocksCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	w, err := NewFileWriter(path, 4096)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	line := []byte("a line that may be dropped under pressure\n")
	for i := 0; i < lineQueueDepth*4; i++ {
		n, err := w.Write(line)
		require.NoError(t, err)
		assert.Equal(t, len(line), n)
	}
}

func TestConsoleHookLevels(t *testing.T) {
	hook := NewConsoleHook(logrus.InfoLevel)

	assert.Contains(t, hook.Levels(), logrus.InfoLevel)
	assert.Contains(t, hook.Levels(), logrus.ErrorLevel)
	assert.NotContains(t, hook.Levels(), logrus.DebugLevel)
}
