// Package form implements the runtime form-state controller: a live value
// record, a live error record, a change-event handler, and an on-demand
// validate pass that maps schema issues back onto the error record.
package form

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-formstate/pkg/schema"
)

var errNilSchema = errors.New("form: schema is required")

// ChangeEvent carries the name/value pair a host UI reads off an input
// change event's target.
type ChangeEvent struct {
	Name  string
	Value string
}

// Controller owns the mutable state for one form instance. It is designed
// for a single-threaded, event-driven host: no method is safe for concurrent
// use, and none blocks.
type Controller struct {
	schema schema.Schema
	fields []string
	known  map[string]struct{}
	values map[string]string
	errors map[string]string

	log            Logger
	sanitize       Sanitizer
	valueObservers []ValueObserver
	errorObservers []ErrorObserver
}

// New builds a controller for the given schema. The value record starts with
// exactly the schema's keys, all mapped to the empty string; the error
// record starts empty.
func New(s schema.Schema, options ...Option) (*Controller, error) {
	if s == nil {
		return nil, errNilSchema
	}

	declared := s.Fields()
	fields := make([]string, 0, len(declared))
	known := make(map[string]struct{}, len(declared))
	values := make(map[string]string, len(declared))
	for _, name := range declared {
		if name == "" {
			return nil, errors.New("form: schema declares an empty field name")
		}
		if _, dup := known[name]; dup {
			return nil, fmt.Errorf("form: schema declares field %q twice", name)
		}
		fields = append(fields, name)
		known[name] = struct{}{}
		values[name] = ""
	}

	c := &Controller{
		schema: s,
		fields: fields,
		known:  known,
		values: values,
		errors: make(map[string]string, len(fields)),
		log:    defaultLogger(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Fields returns the schema's field names in declaration order.
func (c *Controller) Fields() []string {
	out := make([]string, len(c.fields))
	copy(out, c.fields)
	return out
}

// Values returns a snapshot of the value record.
func (c *Controller) Values() map[string]string {
	out := make(map[string]string, len(c.values))
	for name, value := range c.values {
		out[name] = value
	}
	return out
}

// Value returns the current value for a field, "" when the field is unknown.
func (c *Controller) Value(name string) string {
	return c.values[name]
}

// Errors returns a snapshot of the error record. Fields that passed the last
// validation pass are absent.
func (c *Controller) Errors() map[string]string {
	out := make(map[string]string, len(c.errors))
	for name, message := range c.errors {
		out[name] = message
	}
	return out
}

// FieldError returns the current error message for a field, "" when the
// field has no error.
func (c *Controller) FieldError(name string) string {
	return c.errors[name]
}

// HandleChange mirrors an input change event into the value record. Events
// naming a field outside the schema are ignored with a diagnostic; a
// misrouted event is a wiring problem, not a user-facing error.
func (c *Controller) HandleChange(ev ChangeEvent) {
	if _, ok := c.known[ev.Name]; !ok {
		c.log.Debug("ignoring change event for unknown field", "field", ev.Name)
		return
	}
	value := ev.Value
	if c.sanitize != nil {
		value = c.sanitize(value)
	}
	c.values[ev.Name] = value
	c.notifyValues()
}

// HandleForm applies a whole submitted form through the change path, taking
// the first value for each key. Keys outside the schema are ignored the same
// way HandleChange ignores them.
func (c *Controller) HandleForm(values url.Values) {
	for _, name := range c.fields {
		if vs, ok := values[name]; ok && len(vs) > 0 {
			c.HandleChange(ChangeEvent{Name: name, Value: vs[0]})
		}
	}
	for name := range values {
		if _, ok := c.known[name]; !ok {
			c.log.Debug("ignoring submitted value for unknown field", "field", name)
		}
	}
}

// Validate runs the schema against a snapshot of the value record and
// rebuilds the error record from the resulting issues. The error record is
// reset before validation runs, so no stale message survives a pass
// regardless of outcome. Returns true when the record is valid.
func (c *Controller) Validate() bool {
	c.errors = make(map[string]string, len(c.fields))

	issues := c.schema.Validate(c.Values())
	if len(issues) == 0 {
		c.notifyErrors()
		return true
	}

	for _, issue := range issues {
		field := issue.Field()
		if field == "" {
			c.log.Warn("dropping form-level issue with no field path", "message", issue.Message)
			continue
		}
		if _, ok := c.known[field]; !ok {
			c.log.Warn("dropping issue for field outside the schema", "field", field, "message", issue.Message)
			continue
		}
		// Last issue wins when several target the same field.
		c.errors[field] = issue.Message
	}
	c.notifyErrors()
	return false
}

// SetValue writes a value directly, bypassing sanitization and the schema
// key check. No validation runs.
func (c *Controller) SetValue(name, value string) {
	c.values[name] = value
	c.notifyValues()
}

// SetValues writes several values directly.
func (c *Controller) SetValues(values map[string]string) {
	if len(values) == 0 {
		return
	}
	for name, value := range values {
		c.values[name] = value
	}
	c.notifyValues()
}

// SetError writes an error message directly. An empty message clears the
// field's error.
func (c *Controller) SetError(name, message string) {
	if message == "" {
		delete(c.errors, name)
	} else {
		c.errors[name] = message
	}
	c.notifyErrors()
}

// SetErrors writes several error messages directly, typically to surface
// server-side validation feedback.
func (c *Controller) SetErrors(errors map[string]string) {
	if len(errors) == 0 {
		return
	}
	for name, message := range errors {
		if message == "" {
			delete(c.errors, name)
			continue
		}
		c.errors[name] = message
	}
	c.notifyErrors()
}

// ClearErrors resets the error record without running validation.
func (c *Controller) ClearErrors() {
	c.errors = make(map[string]string, len(c.fields))
	c.notifyErrors()
}

func (c *Controller) notifyValues() {
	if len(c.valueObservers) == 0 {
		return
	}
	snapshot := c.Values()
	for _, observer := range c.valueObservers {
		observer(snapshot)
	}
}

func (c *Controller) notifyErrors() {
	if len(c.errorObservers) == 0 {
		return
	}
	snapshot := c.Errors()
	for _, observer := range c.errorObservers {
		observer(snapshot)
	}
}
