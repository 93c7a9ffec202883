package redact_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-personal-data/redact"
)

func newTestWriter(t *testing.T, buf *bytes.Buffer, fields ...string) *redact.Writer {
	t.Helper()
	f, err := redact.NewRedactingFormatter(fields)
	require.NoError(t, err)
	return redact.NewWriter(buf, f)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := redact.NewLogger("user_data", []string{"password"}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("user=alice;password=secret")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[HOLBERTON] user_data INFO "), line)
	assert.True(t, strings.HasSuffix(line, ": user=alice;password=***\n"), line)
	assert.NotContains(t, line, "secret")
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := redact.NewLogger("user_data", nil, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	assert.Zero(t, buf.Len(), "debug is below the default level")

	logger.Error().Msg("shown")
	assert.Contains(t, buf.String(), " ERROR ")
}

func TestNewLogger_InvalidField(t *testing.T) {
	_, err := redact.NewLogger("user_data", []string{"a=b"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, redact.ErrInvalidField)
}

func TestWriter_Event(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf, "ssn")

	event := `{"level":"warn","logger":"db","time":"2024-03-01T10:00:00Z","message":"ssn=123-45;ok=1","extra":"dropped"}` + "\n"
	n, err := w.Write([]byte(event))
	require.NoError(t, err)
	assert.Equal(t, len(event), n)
	assert.Equal(t, "[HOLBERTON] db WARNING 2024-03-01 10:00:00,000: ssn=***;ok=1\n", buf.String())
}

func TestWriter_UnixTime(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf)

	_, err := w.Write([]byte(`{"level":"error","logger":"db","time":1709287200,"message":"m"}`))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), " ERROR ")
	assert.True(t, strings.HasSuffix(buf.String(), ": m\n"))
}

func TestWriter_NonJSON(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWriter(t, &buf, "password")

	in := "plain password=1;x=2\n"
	n, err := w.Write([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	assert.Equal(t, "plain password=***;x=2\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_PropagatesWriteError(t *testing.T) {
	f, err := redact.NewRedactingFormatter(nil)
	require.NoError(t, err)
	w := redact.NewWriter(failingWriter{}, f)

	_, err = w.Write([]byte(`{"message":"m"}`))
	assert.EqualError(t, err, "disk full")
}
