package framework

import "log"

// Tracer receives progress lines from a running loop. Callers pass
// printf-style arguments; implementations decide where the lines go.
type Tracer func(format string, args ...interface{})

// LogTracer writes trace lines through the standard logger, each one
// prefixed with the bracketed tag.
func LogTracer(tag string) Tracer {
	prefix := "[" + tag + "] "
	return func(format string, args ...interface{}) {
		log.Printf(prefix+format, args...)
	}
}
