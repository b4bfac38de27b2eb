package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formstate/internal/label"
)

// Rule checks a single field's value. The values record carries the whole
// form so cross-field rules can read sibling fields. A nil return means the
// value passes; a non-nil error carries the human-readable message.
type Rule interface {
	Check(value string, values map[string]string) error
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(value string, values map[string]string) error

// Check implements Rule.
func (fn RuleFunc) Check(value string, values map[string]string) error {
	return fn(value, values)
}

// emailPattern is deliberately loose: it rejects obvious non-addresses
// without trying to police the full RFC grammar.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Required fails on empty or whitespace-only values.
func Required() Rule {
	return RuleFunc(func(value string, _ map[string]string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("must be provided")
		}
		return nil
	})
}

// MinLength fails when the value is shorter than n characters. Empty values
// pass; pair with Required when the field is mandatory.
func MinLength(n int) Rule {
	return RuleFunc(func(value string, _ map[string]string) error {
		if value == "" {
			return nil
		}
		if len([]rune(value)) < n {
			return fmt.Errorf("must be at least %d characters long", n)
		}
		return nil
	})
}

// MaxLength fails when the value is longer than n characters.
func MaxLength(n int) Rule {
	return RuleFunc(func(value string, _ map[string]string) error {
		if len([]rune(value)) > n {
			return fmt.Errorf("must be no more than %d characters long", n)
		}
		return nil
	})
}

// Pattern fails non-empty values that do not match the expression. The
// message is shown verbatim; when empty, a generic one is used.
func Pattern(expr *regexp.Regexp, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("must match the pattern %s", expr.String())
	}
	return RuleFunc(func(value string, _ map[string]string) error {
		if value == "" {
			return nil
		}
		if !expr.MatchString(value) {
			return errors.New(message)
		}
		return nil
	})
}

// Email fails non-empty values that are not plausible email addresses.
func Email() Rule {
	return RuleFunc(func(value string, _ map[string]string) error {
		if value == "" {
			return nil
		}
		if !emailPattern.MatchString(value) {
			return errors.New("must be a valid email address")
		}
		return nil
	})
}

// OneOf fails non-empty values outside the allowed set.
func OneOf(options ...string) Rule {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option] = struct{}{}
	}
	message := fmt.Sprintf("must be one of: %s", strings.Join(options, ", "))
	return RuleFunc(func(value string, _ map[string]string) error {
		if value == "" {
			return nil
		}
		if _, ok := allowed[value]; !ok {
			return errors.New(message)
		}
		return nil
	})
}

// MatchesField fails when the value differs from another field's current
// value, the usual password/confirmPassword pairing. The issue lands on the
// field declaring the rule.
func MatchesField(other, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("must match %s", label.Humanize(other))
	}
	return RuleFunc(func(value string, values map[string]string) error {
		if value != values[other] {
			return errors.New(message)
		}
		return nil
	})
}

// Check wraps an arbitrary single-value predicate as a Rule.
func Check(fn func(value string) error) Rule {
	return RuleFunc(func(value string, _ map[string]string) error {
		return fn(value)
	})
}
