package redact

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// LoggerFieldName is the event key that carries the logger name.
const LoggerFieldName = "logger"

// Writer turns zerolog JSON events into formatted text lines.
//
// Each event becomes a [Record] built from the logger, level, time and
// message keys; other keys are dropped. Input that is not a JSON object is
// still redacted and written through as text.
type Writer struct {
	out io.Writer
	f   *RedactingFormatter
	now func() time.Time
}

// NewWriter returns a Writer that renders events with f and writes them to out.
func NewWriter(out io.Writer, f *RedactingFormatter) *Writer {
	return &Writer{out: out, f: f, now: time.Now}
}

// Write implements io.Writer. zerolog calls it once per event.
func (w *Writer) Write(p []byte) (int, error) {
	var evt map[string]any
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if err := dec.Decode(&evt); err != nil {
		line := w.f.Redactor().Redact(string(bytes.TrimRight(p, "\n")))
		if _, err := io.WriteString(w.out, line+"\n"); err != nil {
			return 0, err
		}
		return len(p), nil
	}

	if _, err := io.WriteString(w.out, w.f.Format(w.record(evt))+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *Writer) record(evt map[string]any) Record {
	r := Record{Level: InfoLevel}
	r.Name, _ = evt[LoggerFieldName].(string)
	r.Message, _ = evt[zerolog.MessageFieldName].(string)
	if s, ok := evt[zerolog.LevelFieldName].(string); ok {
		r.Level, _ = ParseLevel(s)
	}
	r.Time = w.eventTime(evt[zerolog.TimestampFieldName])
	return r
}

func (w *Writer) eventTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		if ts, err := time.Parse(zerolog.TimeFieldFormat, t); err == nil {
			return ts
		}
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts
		}
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			break
		}
		switch zerolog.TimeFieldFormat {
		case zerolog.TimeFormatUnixMs:
			return time.UnixMilli(n)
		case zerolog.TimeFormatUnixMicro:
			return time.UnixMicro(n)
		case zerolog.TimeFormatUnixNano:
			return time.Unix(0, n)
		default:
			return time.Unix(n, 0)
		}
	}
	return w.now()
}

// NewLogger returns a zerolog logger named name whose events are rendered by
// a [RedactingFormatter] masking fields and written to out. The minimum
// level is info.
func NewLogger(name string, fields []string, out io.Writer, opts ...FormatterOption) (zerolog.Logger, error) {
	f, err := NewRedactingFormatter(fields, opts...)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(NewWriter(out, f)).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str(LoggerFieldName, name).
		Logger(), nil
}
