package redact

import (
	"fmt"
	"strings"
	"time"
)

// Level is the severity of a [Record].
type Level int8

const (
	// DebugLevel renders as DEBUG.
	DebugLevel Level = iota
	// InfoLevel renders as INFO.
	InfoLevel
	// WarnLevel renders as WARNING.
	WarnLevel
	// ErrorLevel renders as ERROR.
	ErrorLevel
	// FatalLevel renders as CRITICAL.
	FatalLevel
)

// String returns the upper-case level name used in formatted lines.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}
}

// ParseLevel maps a level name to a Level. It accepts both the names
// rendered by [Level.String] and zerolog's lower-case names, ignoring case.
// Unknown names map to InfoLevel and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return DebugLevel, true
	case "info", "":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "fatal", "panic", "critical":
		return FatalLevel, true
	default:
		return InfoLevel, false
	}
}

// Record is a single log event as handed over by the logging framework.
// Only Message is ever rewritten by redaction.
type Record struct {
	Name    string
	Level   Level
	Time    time.Time
	Message string
}

// Formatter renders a Record as one line of text, without a trailing newline.
type Formatter interface {
	Format(r Record) string
}

const (
	// DefaultPrefix opens every line rendered by a zero TextFormatter.
	DefaultPrefix = "[HOLBERTON]"

	// DefaultTimeLayout renders milliseconds after a comma.
	DefaultTimeLayout = "2006-01-02 15:04:05,000"
)

// TextFormatter is the base line layout:
//
//	[HOLBERTON] <name> <LEVEL> <time>: <message>
//
// Zero fields fall back to DefaultPrefix and DefaultTimeLayout.
type TextFormatter struct {
	Prefix     string
	TimeLayout string
}

// Format implements [Formatter].
func (f TextFormatter) Format(r Record) string {
	prefix := f.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	layout := f.TimeLayout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return fmt.Sprintf("%s %s %s %-15s: %s", prefix, r.Name, r.Level, r.Time.Format(layout), r.Message)
}

// RedactingFormatter masks configured fields in a Record's message and then
// delegates the layout to a base Formatter.
type RedactingFormatter struct {
	base     Formatter
	redactor *Redactor
	fields   []string
}

type formatterOptions struct {
	base      Formatter
	redaction string
	separator string
}

// FormatterOption customises a [RedactingFormatter].
type FormatterOption func(*formatterOptions)

// WithBase replaces the default [TextFormatter].
func WithBase(f Formatter) FormatterOption {
	return func(o *formatterOptions) { o.base = f }
}

// WithRedaction replaces the default [Redaction] token.
func WithRedaction(token string) FormatterOption {
	return func(o *formatterOptions) { o.redaction = token }
}

// WithSeparator replaces the default [Separator].
func WithSeparator(sep string) FormatterOption {
	return func(o *formatterOptions) { o.separator = sep }
}

// NewRedactingFormatter returns a formatter that masks fields using
// [Redaction] and [Separator] unless overridden by opts.
func NewRedactingFormatter(fields []string, opts ...FormatterOption) (*RedactingFormatter, error) {
	o := formatterOptions{
		base:      TextFormatter{},
		redaction: Redaction,
		separator: Separator,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.base == nil {
		o.base = TextFormatter{}
	}

	r, err := NewRedactor(fields, o.redaction, o.separator)
	if err != nil {
		return nil, err
	}
	return &RedactingFormatter{
		base:     o.base,
		redactor: r,
		fields:   append([]string(nil), fields...),
	}, nil
}

// Fields returns a copy of the masked field names.
func (f *RedactingFormatter) Fields() []string {
	return append([]string(nil), f.fields...)
}

// Redactor returns the compiled redactor used for messages.
func (f *RedactingFormatter) Redactor() *Redactor { return f.redactor }

// Format implements [Formatter].
func (f *RedactingFormatter) Format(r Record) string {
	r.Message = f.redactor.Redact(r.Message)
	return f.base.Format(r)
}
