// Package tursu provides the user-facing support-code surface of the
// framework: the per-attempt World passed to every step and hook function,
// and the Library where step definitions and hooks are registered.
package tursu

import (
	"context"
	"fmt"
)

// Logger is the interface for structured logging within step functions.
// Compatible with *slog.Logger and other structured loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Data provides attempt-scoped state management. Use it to share values
// across steps within one attempt of a scenario.
type Data struct {
	values map[string]any
}

// Set stores a value in the attempt-scoped data store.
func (d *Data) Set(key string, value any) {
	d.values[key] = value
}

// Get retrieves a value and reports whether the key was present.
func (d *Data) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// MustGet retrieves a value or fails the current step if the key is absent.
func (d *Data) MustGet(key string) any {
	v, ok := d.values[key]
	if !ok {
		panic(fmt.Sprintf("key %q not found in world data", key))
	}

	return v
}

// World is the execution context passed to every step and hook invocation
// of one attempt. A fresh World is created per attempt, so no state leaks
// across retries. It is owned exclusively by the in-flight attempt.
type World struct {
	ctx    context.Context
	logger Logger
	assert *Assert
	data   *Data
	params map[string]any
}

// NewWorld creates a World with the given options.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		ctx:    context.Background(),
		data:   &Data{values: make(map[string]any)},
		assert: &Assert{},
		params: make(map[string]any),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = &noopLogger{}
	}

	return w
}

// Context returns the underlying context.Context for library compatibility.
func (w *World) Context() context.Context {
	return w.ctx
}

// WithContext replaces the underlying context.Context. Use it for
// timeouts, cancellation, or storing values in the standard context.
func (w *World) WithContext(ctx context.Context) {
	w.ctx = ctx
}

// Logger returns the logger instance.
func (w *World) Logger() Logger {
	return w.logger
}

// Assert returns the assertion helper. Assertion failures surface as a
// failed step result.
func (w *World) Assert() *Assert {
	return w.assert
}

// Data returns the attempt-scoped data store.
func (w *World) Data() *Data {
	return w.data
}

// Parameters returns the world parameters supplied by the invocation.
func (w *World) Parameters() map[string]any {
	return w.params
}

// Param retrieves a single world parameter.
func (w *World) Param(key string) (any, bool) {
	v, ok := w.params[key]
	return v, ok
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger for the world.
func WithLogger(logger Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// WithContext sets the initial context.Context.
func WithContext(ctx context.Context) WorldOption {
	return func(w *World) {
		w.ctx = ctx
	}
}

// WithParameters sets the world parameters forwarded by the caller.
func WithParameters(params map[string]any) WorldOption {
	return func(w *World) {
		if params != nil {
			w.params = params
		}
	}
}

// noopLogger discards all log messages.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, args ...any) {}
func (n *noopLogger) Info(msg string, args ...any)  {}
func (n *noopLogger) Warn(msg string, args ...any)  {}
func (n *noopLogger) Error(msg string, args ...any) {}
