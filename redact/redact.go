package redact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// Redaction replaces masked values by default.
	Redaction = "***"

	// Separator delimits name=value pairs by default.
	Separator = ";"
)

// Redactor masks the values of a fixed set of fields in name=value text.
//
// A value is the longest run of characters up to, not including, the next
// separator. The separator therefore cannot appear inside a value.
//
// Redactor is immutable and safe for concurrent use.
type Redactor struct {
	re        *regexp.Regexp
	redaction string
}

// NewRedactor compiles a Redactor for fields.
//
// Configuration mistakes fail here instead of silently matching nothing:
// see [ErrInvalidField] and [ErrInvalidSeparator]. An empty fields slice is
// valid and yields a Redactor that returns its input unchanged.
func NewRedactor(fields []string, redaction, separator string) (*Redactor, error) {
	if utf8.RuneCountInString(separator) != 1 {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSeparator, separator)
	}

	alts := make([]string, 0, len(fields))
	for _, f := range fields {
		if err := validateField(f, separator); err != nil {
			return nil, err
		}
		alts = append(alts, f)
	}

	r := &Redactor{redaction: redaction}
	if len(alts) == 0 {
		return r, nil
	}

	pattern := "(?:" + strings.Join(alts, "|") + ")=[^" + regexp.QuoteMeta(separator) + "]*"
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	r.re = re
	return r, nil
}

func validateField(f, separator string) error {
	switch {
	case f == "":
		return fmt.Errorf("%w: empty name", ErrInvalidField)
	case strings.Contains(f, separator):
		return fmt.Errorf("%w: %q contains the separator %q", ErrInvalidField, f, separator)
	case strings.Contains(f, "="):
		return fmt.Errorf("%w: %q contains \"=\"", ErrInvalidField, f)
	case regexp.QuoteMeta(f) != f:
		return fmt.Errorf("%w: %q contains a regular-expression metacharacter", ErrInvalidField, f)
	}
	return nil
}

// Redact returns message with every configured field's value replaced by
// the redaction token. The field name, the "=" and all other text are kept.
func (r *Redactor) Redact(message string) string {
	if r.re == nil {
		return message
	}
	return r.re.ReplaceAllStringFunc(message, func(m string) string {
		// Field names never contain "=", so the first one is the delimiter.
		return m[:strings.IndexByte(m, '=')+1] + r.redaction
	})
}

// Redact masks fields in message in one call. Prefer [NewRedactor] when the
// same field set is applied repeatedly.
func Redact(fields []string, redaction, message, separator string) (string, error) {
	r, err := NewRedactor(fields, redaction, separator)
	if err != nil {
		return "", err
	}
	return r.Redact(message), nil
}
