package redact_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-personal-data/redact"
)

var fixedTime = time.Date(2019, time.November, 19, 18, 24, 25, 105_000_000, time.UTC)

func TestTextFormatter_Format(t *testing.T) {
	line := redact.TextFormatter{}.Format(redact.Record{
		Name:    "my_logger",
		Level:   redact.InfoLevel,
		Time:    fixedTime,
		Message: "hello",
	})
	assert.Equal(t, "[HOLBERTON] my_logger INFO 2019-11-19 18:24:25,105: hello", line)
}

func TestTextFormatter_CustomLayout(t *testing.T) {
	f := redact.TextFormatter{Prefix: "[APP]", TimeLayout: time.Kitchen}
	line := f.Format(redact.Record{Name: "n", Level: redact.ErrorLevel, Time: fixedTime, Message: "m"})
	// Kitchen is shorter than the 15-column time field and gets padded.
	assert.Equal(t, "[APP] n ERROR 6:24PM         : m", line)
}

func TestRedactingFormatter_Format(t *testing.T) {
	f, err := redact.NewRedactingFormatter([]string{"email", "ssn", "password"})
	require.NoError(t, err)

	line := f.Format(redact.Record{
		Name:    "my_logger",
		Level:   redact.InfoLevel,
		Time:    fixedTime,
		Message: "name=Bob;email=bob@dylan.com;ssn=000-123-0000;password=bobbyd;",
	})
	assert.Equal(t,
		"[HOLBERTON] my_logger INFO 2019-11-19 18:24:25,105: name=Bob;email=***;ssn=***;password=***;",
		line)
}

func TestRedactingFormatter_HeaderAndSuffix(t *testing.T) {
	f, err := redact.NewRedactingFormatter([]string{"password"})
	require.NoError(t, err)

	line := f.Format(redact.Record{
		Name:    "user_data",
		Level:   redact.WarnLevel,
		Time:    fixedTime,
		Message: "user=alice;password=secret",
	})
	assert.True(t, strings.HasPrefix(line, "[HOLBERTON] user_data WARNING 2019-11-19 18:24:25,105: "), line)
	assert.True(t, strings.HasSuffix(line, "user=alice;password=***"), line)
	assert.NotContains(t, line, "secret")
}

type upperFormatter struct{}

func (upperFormatter) Format(r redact.Record) string { return strings.ToUpper(r.Message) }

func TestRedactingFormatter_Options(t *testing.T) {
	f, err := redact.NewRedactingFormatter([]string{"pin"},
		redact.WithBase(upperFormatter{}),
		redact.WithRedaction("[x]"),
		redact.WithSeparator(","),
	)
	require.NoError(t, err)

	assert.Equal(t, "PIN=[X],USER=A;B", f.Format(redact.Record{Message: "pin=1234,user=a;b"}))
	assert.Equal(t, []string{"pin"}, f.Fields())
}

func TestRedactingFormatter_InvalidField(t *testing.T) {
	_, err := redact.NewRedactingFormatter([]string{"pass;word"})
	assert.ErrorIs(t, err, redact.ErrInvalidField)

	_, err = redact.NewRedactingFormatter([]string{"password"}, redact.WithSeparator(""))
	assert.ErrorIs(t, err, redact.ErrInvalidSeparator)
}

func TestRedactingFormatter_DoesNotAliasFields(t *testing.T) {
	fields := []string{"password"}
	f, err := redact.NewRedactingFormatter(fields)
	require.NoError(t, err)

	fields[0] = "changed"
	f.Fields()[0] = "changed"
	assert.Equal(t, []string{"password"}, f.Fields())
}

func TestLevel(t *testing.T) {
	cases := []struct {
		in    string
		level redact.Level
		name  string
		ok    bool
	}{
		{"debug", redact.DebugLevel, "DEBUG", true},
		{"trace", redact.DebugLevel, "DEBUG", true},
		{"INFO", redact.InfoLevel, "INFO", true},
		{"warn", redact.WarnLevel, "WARNING", true},
		{"Warning", redact.WarnLevel, "WARNING", true},
		{"error", redact.ErrorLevel, "ERROR", true},
		{"panic", redact.FatalLevel, "CRITICAL", true},
		{"critical", redact.FatalLevel, "CRITICAL", true},
		{"loud", redact.InfoLevel, "INFO", false},
	}
	for _, tc := range cases {
		got, ok := redact.ParseLevel(tc.in)
		assert.Equal(t, tc.level, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.name, got.String(), tc.in)
	}
	assert.Equal(t, "LEVEL(9)", redact.Level(9).String())
}
