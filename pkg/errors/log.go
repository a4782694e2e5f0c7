package errors

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// LogHandler is an ErrorHandler that logs through a logr.Logger.
// The zero value logs to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the records. A zero Logger selects the stderr logger.
	Logger logr.Logger
}

// StderrLogger returns a funcr logger that writes one line per record to stderr.
func StderrLogger(verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

func (h *LogHandler) logger() logr.Logger {
	if h.Logger.GetSink() == nil {
		return StderrLogger(0).WithName("recycler")
	}
	return h.Logger
}

// HandleError logs a RecyclerError.
func (h *LogHandler) HandleError(err *RecyclerError) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "kind", err.Kind.String()}
	if err.Position != NoPosition {
		kv = append(kv, "position", err.Position)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error(err.Err, "recycler error", kv...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"value", fmt.Sprint(err.Value)}
	if err.Op != "" {
		kv = append(kv, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error(nil, "recycler panic", kv...)
}
