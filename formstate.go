// Package formstate binds a field schema to live form state: a value record,
// an error record, a change-event handler, and an on-demand validate pass.
// The root package re-exports the common types so most callers only import
// this one path.
package formstate

import (
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// Schema is the capability interface controllers consume.
type Schema = schema.Schema

// Issue is a single validation failure located by field path.
type Issue = schema.Issue

// Issues is an ordered collection of validation failures.
type Issues = schema.Issues

// Controller owns the live state for one form instance.
type Controller = form.Controller

// ChangeEvent carries the name/value pair read off an input change event.
type ChangeEvent = form.ChangeEvent

// Option configures a Controller.
type Option = form.Option

// Logger receives controller diagnostics.
type Logger = form.Logger

// New builds a controller for the given schema.
func New(s Schema, options ...Option) (*Controller, error) {
	return form.New(s, options...)
}

// WithLogger replaces the diagnostics logger.
func WithLogger(logger Logger) Option {
	return form.WithLogger(logger)
}

// WithSanitizer installs a sanitizer applied to change-event values.
func WithSanitizer(sanitizer form.Sanitizer) Option {
	return form.WithSanitizer(sanitizer)
}

// WithValueObserver registers an observer for value-record changes.
func WithValueObserver(observer form.ValueObserver) Option {
	return form.WithValueObserver(observer)
}

// WithErrorObserver registers an observer for error-record changes.
func WithErrorObserver(observer form.ErrorObserver) Option {
	return form.WithErrorObserver(observer)
}
