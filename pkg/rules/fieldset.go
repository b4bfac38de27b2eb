// Package rules implements a declarative field schema: ordered field
// descriptors with per-field validation rules, satisfying the schema.Schema
// capability interface consumed by form controllers.
package rules

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/internal/label"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// Field describes one form field and the rules applied to it. Rules run in
// declared order and stop at the first failure, so ordering encodes
// priority: put Required first when a field is mandatory.
type Field struct {
	Name  string
	Rules []Rule
}

// FormRule inspects the whole values record and may report one issue. A
// returned issue usually targets a specific field via its path; an issue
// with an empty path is form-level and controllers drop it with a
// diagnostic.
type FormRule func(values map[string]string) *schema.Issue

// FieldSet is an ordered collection of field descriptors implementing
// schema.Schema.
type FieldSet struct {
	fields    []Field
	formRules []FormRule
}

var _ schema.Schema = (*FieldSet)(nil)

// NewFieldSet builds a FieldSet, rejecting empty and duplicate field names.
func NewFieldSet(fields ...Field) (*FieldSet, error) {
	if len(fields) == 0 {
		return nil, errors.New("rules: at least one field is required")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return nil, errors.New("rules: field name is required")
		}
		if _, dup := seen[field.Name]; dup {
			return nil, fmt.Errorf("rules: duplicate field %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return &FieldSet{fields: fields}, nil
}

// WithFormRules appends whole-form rules evaluated after every field rule.
func (fs *FieldSet) WithFormRules(rules ...FormRule) *FieldSet {
	for _, rule := range rules {
		if rule != nil {
			fs.formRules = append(fs.formRules, rule)
		}
	}
	return fs
}

// Fields implements schema.Schema.
func (fs *FieldSet) Fields() []string {
	names := make([]string, len(fs.fields))
	for idx, field := range fs.fields {
		names[idx] = field.Name
	}
	return names
}

// Validate implements schema.Schema. Issues are reported in field
// declaration order, then form-rule order.
func (fs *FieldSet) Validate(values map[string]string) schema.Issues {
	var issues schema.Issues
	for _, field := range fs.fields {
		value := values[field.Name]
		for _, rule := range field.Rules {
			if err := rule.Check(value, values); err != nil {
				issues = append(issues, schema.At(field.Name, err.Error()))
				break
			}
		}
	}
	for _, rule := range fs.formRules {
		if issue := rule(values); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// FieldsMatch is a FormRule reporting an issue on the second field when the
// two values differ.
func FieldsMatch(first, second, message string) FormRule {
	if message == "" {
		message = fmt.Sprintf("must match %s", label.Humanize(first))
	}
	return func(values map[string]string) *schema.Issue {
		if values[first] == values[second] {
			return nil
		}
		issue := schema.At(second, message)
		return &issue
	}
}
