package form

// Sanitizer transforms an incoming change value before it is written into
// the value record. It runs on the HandleChange path only; raw setters write
// values verbatim.
type Sanitizer func(string) string

// ValueObserver is notified with a snapshot of the value record after any
// mutation of field values.
type ValueObserver func(values map[string]string)

// ErrorObserver is notified with a snapshot of the error record after any
// mutation of field errors, including the reset performed by Validate.
type ErrorObserver func(errors map[string]string)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger replaces the diagnostics logger. Passing nil silences
// diagnostics entirely.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger == nil {
			logger = NopLogger{}
		}
		c.log = logger
	}
}

// WithSanitizer installs a sanitizer applied to change-event values.
// Multiple sanitizers compose in registration order.
func WithSanitizer(sanitizer Sanitizer) Option {
	return func(c *Controller) {
		if sanitizer == nil {
			return
		}
		if prev := c.sanitize; prev != nil {
			c.sanitize = func(value string) string {
				return sanitizer(prev(value))
			}
			return
		}
		c.sanitize = sanitizer
	}
}

// WithValueObserver registers an observer for value-record changes. Hosts
// that re-render on state changes hook their invalidation here.
func WithValueObserver(observer ValueObserver) Option {
	return func(c *Controller) {
		if observer != nil {
			c.valueObservers = append(c.valueObservers, observer)
		}
	}
}

// WithErrorObserver registers an observer for error-record changes.
func WithErrorObserver(observer ErrorObserver) Option {
	return func(c *Controller) {
		if observer != nil {
			c.errorObservers = append(c.errorObservers, observer)
		}
	}
}
