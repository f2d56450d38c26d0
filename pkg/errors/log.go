package errors

import "log/slog"

// LogHandler is a Handler that reports through the process-wide slog
// logger, so reported errors land in the same stream as the rest of the
// bar's logging.
type LogHandler struct {
	// Verbose includes the widget attribution and stack traces.
	Verbose bool
}

// HandleError logs an Error at error level.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if h.Verbose && err.Widget != "" {
		attrs = append(attrs, "widget", err.Widget)
	}
	slog.Error("widget error", attrs...)
}

// HandlePanic logs a recovered panic at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	slog.Error("recovered panic", attrs...)
}
