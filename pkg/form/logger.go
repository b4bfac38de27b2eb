package form

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger receives the controller's diagnostics. Both conditions the
// controller reports (a change event naming an unknown field, a validation
// issue that cannot be attached to a field) are caller-configuration
// problems, so they are logged rather than surfaced as faults.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

type charmLogger struct {
	inner *charmlog.Logger
}

func (l charmLogger) Debug(msg string, keyvals ...any) { l.inner.Debug(msg, keyvals...) }
func (l charmLogger) Warn(msg string, keyvals ...any)  { l.inner.Warn(msg, keyvals...) }

func defaultLogger() Logger {
	return charmLogger{inner: charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "formstate",
	})}
}

// NopLogger discards all diagnostics.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Warn(string, ...any)  {}
