package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFileAndLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "playground.txt")
	l, err := New(Options{Path: path})
	require.NoError(t, err)

	l.Log("hello")
	l.Slog().Info("object selected", "name", "box")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "msg=hello")
	assert.Contains(t, lines[1], `msg="object selected" name=box`)
	assert.Regexp(t, `^time="?\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}"? level=INFO`, lines[0])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", string(data))
}

func TestLevelFiltering(t *testing.T) {
	l, err := New(Options{Level: slog.LevelWarn})
	require.NoError(t, err)
	l.Slog().Info("dropped")
	l.Slog().Warn("kept")
	require.Len(t, l.Lines(), 1)

	l.SetLevel(slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, l.Level())
	l.Slog().Debug("now kept")
	assert.Len(t, l.Lines(), 2)
}

func TestLinesAreBounded(t *testing.T) {
	var echo bytes.Buffer
	l, err := New(Options{MaxLines: 3, Echo: &echo})
	require.NoError(t, err)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		l.Log(s)
	}
	lines := l.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "msg=c")
	assert.Contains(t, lines[2], "msg=e")
	assert.Equal(t, 5, strings.Count(echo.String(), "\n"))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
