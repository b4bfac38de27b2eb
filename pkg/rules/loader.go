package rules

import (
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ParseYAML builds a FieldSet from a YAML descriptor document:
//
//	fields:
//	  - name: email
//	    rules: [required, email]
//	  - name: password
//	    rules:
//	      - required
//	      - minLength: 8
//	  - name: confirmPassword
//	    rules:
//	      - required
//	      - matches: password
//
// Scalar entries name parameterless rules (required, email); single-key
// mappings carry a parameter (minLength, maxLength, pattern, oneOf,
// matches).
func ParseYAML(data []byte) (*FieldSet, error) {
	var doc struct {
		Fields []struct {
			Name  string      `yaml:"name"`
			Rules []yaml.Node `yaml:"rules"`
		} `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rules: parse descriptor: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, errors.New("rules: descriptor declares no fields")
	}

	fields := make([]Field, 0, len(doc.Fields))
	for _, entry := range doc.Fields {
		field := Field{Name: entry.Name}
		for idx := range entry.Rules {
			rule, err := ruleFromNode(entry.Name, &entry.Rules[idx])
			if err != nil {
				return nil, err
			}
			field.Rules = append(field.Rules, rule)
		}
		fields = append(fields, field)
	}
	return NewFieldSet(fields...)
}

func ruleFromNode(field string, node *yaml.Node) (Rule, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarRule(field, node.Value)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, fmt.Errorf("rules: field %q: rule mappings take exactly one key", field)
		}
		return mappingRule(field, node.Content[0].Value, node.Content[1])
	default:
		return nil, fmt.Errorf("rules: field %q: unsupported rule node", field)
	}
}

func scalarRule(field, name string) (Rule, error) {
	switch name {
	case "required":
		return Required(), nil
	case "email":
		return Email(), nil
	default:
		return nil, fmt.Errorf("rules: field %q: unknown rule %q", field, name)
	}
}

func mappingRule(field, name string, arg *yaml.Node) (Rule, error) {
	switch name {
	case "minLength":
		n, err := intArg(field, name, arg)
		if err != nil {
			return nil, err
		}
		return MinLength(n), nil
	case "maxLength":
		n, err := intArg(field, name, arg)
		if err != nil {
			return nil, err
		}
		return MaxLength(n), nil
	case "pattern":
		var expr string
		if err := arg.Decode(&expr); err != nil {
			return nil, fmt.Errorf("rules: field %q: pattern: %w", field, err)
		}
		compiled, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rules: field %q: pattern %q: %w", field, expr, err)
		}
		return Pattern(compiled, ""), nil
	case "oneOf":
		var options []string
		if err := arg.Decode(&options); err != nil {
			return nil, fmt.Errorf("rules: field %q: oneOf: %w", field, err)
		}
		return OneOf(options...), nil
	case "matches":
		var other string
		if err := arg.Decode(&other); err != nil {
			return nil, fmt.Errorf("rules: field %q: matches: %w", field, err)
		}
		return MatchesField(other, ""), nil
	default:
		return nil, fmt.Errorf("rules: field %q: unknown rule %q", field, name)
	}
}

func intArg(field, name string, arg *yaml.Node) (int, error) {
	var n int
	if err := arg.Decode(&n); err != nil {
		return 0, fmt.Errorf("rules: field %q: %s: %w", field, name, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("rules: field %q: %s must not be negative", field, name)
	}
	return n, nil
}
