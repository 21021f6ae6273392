package core

// Logger receives render progress and diagnostics
type Logger interface {
	Printf(format string, args ...interface{})
}
