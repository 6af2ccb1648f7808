// Package obslog wraps a *zap.Logger behind a small value type, the
// way temirov-SummerCamp25/pkg/log wraps one behind Init/L — except
// this module threads the logger through Config rather than keeping
// it in a package-global, since a Problem/solve can be re-entered
// concurrently (spec.md section 5) and a package-global would be
// shared mutable state across those calls.
package obslog

import "go.uber.org/zap"

// Logger is a small facade over *zap.Logger. The zero value is a
// no-op logger, so library code never needs a nil check before
// logging.
type Logger struct {
	z *zap.Logger
}

// Nop returns a Logger that discards everything, the default for
// library code that hasn't opted into logging.
func Nop() Logger {
	return Logger{}
}

// New wraps an existing *zap.Logger. Passing nil is equivalent to
// Nop().
func New(z *zap.Logger) Logger {
	return Logger{z: z}
}

// Info logs a structured event if a logger is attached.
func (l Logger) Info(msg string, fields ...zap.Field) {
	if l.z == nil {
		return
	}
	l.z.Info(msg, fields...)
}

// Enabled reports whether this Logger will actually emit anything.
func (l Logger) Enabled() bool {
	return l.z != nil
}
