package port

// Logger is the leveled logging interface the positions services depend on,
// keeping them decoupled from the concrete logging setup. Args are
// alternating key/value pairs, slog style.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
