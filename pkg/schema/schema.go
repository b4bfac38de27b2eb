// Package schema defines the capability surface form controllers consume:
// an enumerable set of field names plus a validation function that reports
// issues located by field path. Controllers depend on this interface only,
// never on a validation library's internal representation.
package schema

import (
	"fmt"
	"strings"
)

// Schema describes a form's fields and how to validate a values record.
type Schema interface {
	// Fields returns the declared field names in presentation order.
	Fields() []string
	// Validate checks a values record. A nil or empty result means the
	// record is valid.
	Validate(values map[string]string) Issues
}

// Issue is a single validation failure. Path locates the offending field as
// a sequence of key segments; an empty Path marks a form-level issue that
// cannot be attached to any one field.
type Issue struct {
	Path    []string `json:"path,omitempty"`
	Message string   `json:"message"`
}

// At constructs an issue attached to a single field.
func At(field, message string) Issue {
	return Issue{Path: []string{field}, Message: message}
}

// FormLevel constructs an issue with no field path.
func FormLevel(message string) Issue {
	return Issue{Message: message}
}

// Field returns the first path segment, or "" for form-level issues.
func (i Issue) Field() string {
	if len(i.Path) == 0 {
		return ""
	}
	return i.Path[0]
}

// Issues is an ordered collection of validation failures. It implements
// error so validators can hand it back through error-shaped plumbing, but a
// non-empty Issues value is the expected invalid-input outcome, not a fault.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	shown := len(iss)
	if shown > maxShown {
		shown = maxShown
	}
	for idx := 0; idx < shown; idx++ {
		if idx > 0 {
			b.WriteString("; ")
		}
		issue := iss[idx]
		if field := issue.Field(); field != "" {
			fmt.Fprintf(b, "%s: %s", field, issue.Message)
		} else {
			b.WriteString(issue.Message)
		}
	}
	if len(iss) > shown {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}
