package recycler

import "github.com/go-logr/logr"

// Option configures an [Adapter].
type Option func(*options)

type options struct {
	detectMoves  bool
	recoverHooks bool
	log          logr.Logger
}

func defaultOptions() options {
	return options{
		detectMoves: true,
		log:         logr.Discard(),
	}
}

// WithoutMoveDetection reports reordered rows as removals and insertions.
func WithoutMoveDetection() Option {
	return func(o *options) {
		o.detectMoves = false
	}
}

// WithLogger sets the logger for submit summaries and slot transitions,
// all logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithHookRecovery recovers panics raised by row lifecycle hooks and reports
// them to the global error handler instead of unwinding the host loop.
func WithHookRecovery() Option {
	return func(o *options) {
		o.recoverHooks = true
	}
}
