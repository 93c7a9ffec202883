// Package redact masks sensitive name=value pairs in log messages.
//
// The building block is [Redactor], a compiled regular expression that
// rewrites "password=1234" to "password=***" for a configured set of field
// names:
//
//	out, err := redact.Redact([]string{"password"}, "***", "name=bob;password=1234", ";")
//	// out == "name=bob;password=***"
//
// [RedactingFormatter] applies a Redactor to the message of a [Record]
// before handing it to a base [Formatter] that renders the header (logger
// name, level and time). [Writer] and [NewLogger] plug the formatter into
// zerolog; [Handler] does the same for log/slog.
//
// Matching is textual. A value runs up to the next separator, so the
// separator must not occur inside values. A field name also matches as the
// tail of a longer key: "password" masks "oldpassword=...".
package redact
