package log

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// floatPrecision is the number of significant digits used for float attributes.
const floatPrecision = 6

// ScientificHandler wraps an slog.Handler to render floating point attributes
// with a fixed number of significant digits. The quantities logged by the
// analysis span many orders of magnitude (femtosecond delays near 1e-14 s,
// event counts near 1e6), and the default shortest-representation formatting
// turns them into digit strings like 2.0400000000000002e-14.
//
// Design decision: We use a handler wrapper rather than formatting at call
// sites because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay plain: logger.Info("peak", "t0", 2.04e-14) just works
type ScientificHandler struct {
	// handler is the underlying slog handler that receives formatted records.
	handler slog.Handler
}

// NewScientificHandler creates a new ScientificHandler wrapping the given handler.
// All float attributes are reformatted before being passed to the underlying handler.
// If handler is nil, the returned ScientificHandler will use slog.Default().Handler().
func NewScientificHandler(handler slog.Handler) *ScientificHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &ScientificHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *ScientificHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle reformats the record's float attributes and passes the record on.
func (h *ScientificHandler) Handle(ctx context.Context, r slog.Record) error {
	// Create a new record with formatted attributes
	formatted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		formatted.AddAttrs(h.formatAttr(a))
		return true
	})

	return h.handler.Handle(ctx, formatted)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are formatted before being added.
func (h *ScientificHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formattedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		formattedAttrs[i] = h.formatAttr(a)
	}
	return &ScientificHandler{handler: h.handler.WithAttrs(formattedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *ScientificHandler) WithGroup(name string) slog.Handler {
	return &ScientificHandler{handler: h.handler.WithGroup(name)}
}

// formatAttr formats a single attribute, recursively handling groups.
func (h *ScientificHandler) formatAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		formattedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			formattedAttrs[i] = h.formatAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(formattedAttrs...)}
	}

	switch a.Value.Kind() {
	case slog.KindFloat64:
		return slog.String(a.Key, FormatFloat(a.Value.Float64()))
	case slog.KindAny:
		// Float slices arrive as KindAny; scalars are converted by slog itself.
		if vs, ok := a.Value.Any().([]float64); ok {
			return slog.String(a.Key, formatFloats(vs))
		}
	}

	return a
}

// FormatFloat renders a float with floatPrecision significant digits, using
// scientific notation only when the exponent calls for it.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', floatPrecision, 64)
}

// formatFloats renders a float slice as a bracketed list.
func formatFloats(vs []float64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(FormatFloat(v))
	}
	sb.WriteByte(']')
	return sb.String()
}
