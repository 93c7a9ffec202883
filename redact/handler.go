package redact

import (
	"context"
	"fmt"
	"log/slog"
)

// Handler is a slog.Handler that redacts the record message and every
// string attribute value before passing the record on. Values that are an
// error or a fmt.Stringer are replaced by their redacted text. Other
// non-string values (numbers, structs, maps) are passed through untouched.
type Handler struct {
	next slog.Handler
	r    *Redactor
}

// NewHandler wraps next so that r is applied to everything it receives.
func NewHandler(next slog.Handler, r *Redactor) *Handler {
	return &Handler{next: next, r: r}
}

// Enabled reports whether the wrapped handler accepts level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle redacts record and hands it to the wrapped handler.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	masked := slog.NewRecord(record.Time, record.Level, h.r.Redact(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.attr(a))
		return true
	})
	return h.next.Handle(ctx, masked)
}

// WithAttrs redacts attrs and returns a Handler wrapping next.WithAttrs.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		masked = append(masked, h.attr(a))
	}
	return &Handler{next: h.next.WithAttrs(masked), r: h.r}
}

// WithGroup returns a Handler wrapping next.WithGroup.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), r: h.r}
}

func (h *Handler) attr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(h.r.Redact(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		masked := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			masked = append(masked, h.attr(ga))
		}
		a.Value = slog.GroupValue(masked...)
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case error:
			a.Value = slog.StringValue(h.r.Redact(v.Error()))
		case fmt.Stringer:
			a.Value = slog.StringValue(h.r.Redact(v.String()))
		}
	}
	return a
}
