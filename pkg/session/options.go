package session

import "log/slog"

// Option configures the Manager during construction.
type Option func(*Manager)

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithOnExpired registers a listener fired when the session transitions to
// Anonymous, typically to redirect the user to the login page.
func WithOnExpired(fn func()) Option {
	return func(m *Manager) {
		if fn == nil {
			return
		}
		m.transitions = append(m.transitions, func(s State) {
			if s == StateAnonymous {
				fn()
			}
		})
	}
}
