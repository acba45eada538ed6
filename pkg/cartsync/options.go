package cartsync

import "log/slog"

// Option configures the Synchronizer during construction.
type Option func(*Synchronizer)

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(s *Synchronizer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSerializedMutations serializes mutating operations through a single
// in-flight slot, so refreshes land in issue order. The default accepts the
// documented race between rapid concurrent mutations instead; enable this
// when stricter ordering matters more than latency.
func WithSerializedMutations() Option {
	return func(s *Synchronizer) {
		s.serialize = true
	}
}
