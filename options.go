package undofsm

import "log/slog"

// Logger is the default logger used when none is provided.
var Logger = slog.Default()

// Option applies configuration to a Machine via the functional options pattern.
type Option func(*Machine)

// Listener receives every completed state change, synchronously.
type Listener func(Change)

// WithID sets the machine identifier. Defaults to a random UUID.
func WithID(id string) Option {
	return func(m *Machine) {
		m.id = id
	}
}

// WithLogger sets the logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithListener registers fn to be called after each state change.
// May be passed more than once.
func WithListener(fn Listener) Option {
	return func(m *Machine) {
		if fn != nil {
			m.listeners = append(m.listeners, fn)
		}
	}
}
