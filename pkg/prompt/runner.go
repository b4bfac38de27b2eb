// Package prompt drives a form controller from an interactive terminal
// session: one prompt per field, answers fed through the controller's change
// handler, validation errors surfaced as re-prompts.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/internal/label"
	"github.com/goliatone/go-formstate/pkg/form"
)

// ErrStillInvalid is returned when the form remains invalid after the retry
// budget is spent. The controller's error record holds the surviving
// messages.
var ErrStillInvalid = errors.New("prompt: form still invalid")

const defaultAttempts = 3

// Runner walks a controller's fields and collects values interactively.
type Runner struct {
	driver   Driver
	attempts int
	labeler  func(string) string
	secret   map[string]struct{}
	choices  map[string][]string
}

// Option configures a Runner.
type Option func(*Runner)

// WithDriver replaces the terminal driver, typically with a fake in tests.
func WithDriver(driver Driver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithAttempts sets how many validation rounds run before giving up. Values
// below one are ignored.
func WithAttempts(attempts int) Option {
	return func(r *Runner) {
		if attempts >= 1 {
			r.attempts = attempts
		}
	}
}

// WithLabeler replaces the field-name humanizer used for prompt messages.
func WithLabeler(labeler func(string) string) Option {
	return func(r *Runner) {
		if labeler != nil {
			r.labeler = labeler
		}
	}
}

// WithSecretFields masks input for the named fields.
func WithSecretFields(names ...string) Option {
	return func(r *Runner) {
		for _, name := range names {
			r.secret[name] = struct{}{}
		}
	}
}

// WithChoices prompts the named field as a single-choice select.
func WithChoices(name string, options ...string) Option {
	return func(r *Runner) {
		if len(options) > 0 {
			r.choices[name] = options
		}
	}
}

// NewRunner builds a Runner with the survey-backed driver by default.
func NewRunner(options ...Option) *Runner {
	r := &Runner{
		driver:   NewSurveyDriver(),
		attempts: defaultAttempts,
		labeler:  label.Humanize,
		secret:   make(map[string]struct{}),
		choices:  make(map[string][]string),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run prompts for every field, validates, and re-prompts fields that failed
// until the form validates or the attempt budget runs out. On success the
// final value snapshot is returned.
func (r *Runner) Run(ctx context.Context, ctrl *form.Controller) (map[string]string, error) {
	if ctrl == nil {
		return nil, errors.New("prompt: controller is required")
	}

	if err := r.askFields(ctx, ctrl, ctrl.Fields(), nil); err != nil {
		return nil, err
	}
	if ctrl.Validate() {
		return ctrl.Values(), nil
	}

	for attempt := 1; attempt < r.attempts; attempt++ {
		failed := failedFields(ctrl)
		if err := r.askFields(ctx, ctrl, failed, ctrl.Errors()); err != nil {
			return nil, err
		}
		if ctrl.Validate() {
			return ctrl.Values(), nil
		}
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrStillInvalid, r.attempts)
}

func (r *Runner) askFields(ctx context.Context, ctrl *form.Controller, names []string, errs map[string]string) error {
	for _, name := range names {
		message := r.labeler(name)
		help := errs[name]

		var answer string
		var err error
		if options, ok := r.choices[name]; ok {
			answer, err = r.driver.Select(ctx, SelectConfig{
				Message: message,
				Options: options,
				Default: ctrl.Value(name),
				Help:    help,
			})
		} else {
			_, secret := r.secret[name]
			cfg := InputConfig{
				Message: message,
				Help:    help,
				Secret:  secret,
			}
			if !secret {
				cfg.Default = ctrl.Value(name)
			}
			answer, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		ctrl.HandleChange(form.ChangeEvent{Name: name, Value: answer})
	}
	return nil
}

// failedFields lists errored fields in the controller's declaration order so
// re-prompts stay stable.
func failedFields(ctrl *form.Controller) []string {
	errs := ctrl.Errors()
	var out []string
	for _, name := range ctrl.Fields() {
		if _, ok := errs[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
