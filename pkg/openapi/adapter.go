// Package openapi derives form field schemas from OpenAPI 3 documents: one
// field per top-level request-body property, with validation rules taken
// from the property's constraints.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/rules"
)

// Options configures field-set derivation.
type Options struct {
	// ContentType selects the request body media type. Defaults to the
	// first match among application/json, application/x-www-form-urlencoded
	// and multipart/form-data.
	ContentType string
}

var defaultContentTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// FieldSetFromDocument loads an OpenAPI document and derives a field set
// from the request body of the operation with the given operationId.
func FieldSetFromDocument(ctx context.Context, data []byte, operationID string, opts Options) (*rules.FieldSet, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	return FieldSetFromOperation(operation, opts)
}

// FieldSetFromOperation derives a field set from an already resolved
// operation.
func FieldSetFromOperation(operation *openapi3.Operation, opts Options) (*rules.FieldSet, error) {
	if operation == nil {
		return nil, errors.New("openapi: operation is required")
	}
	body := requestSchema(operation.RequestBody, opts.ContentType)
	if body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operation.OperationID)
	}
	if !typeIs(body, "object") || len(body.Properties) == 0 {
		return nil, fmt.Errorf("openapi: operation %q request body is not an object schema", operation.OperationID)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	fields := make([]rules.Field, 0, len(body.Properties))
	for _, name := range propertyOrder(body) {
		property := body.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		_, isRequired := required[name]
		field, err := fieldFromProperty(name, property.Value, isRequired)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return rules.NewFieldSet(fields...)
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(ref *openapi3.RequestBodyRef, contentType string) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	candidates := defaultContentTypes
	if contentType != "" {
		candidates = []string{contentType}
	}
	for _, mediaType := range candidates {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// propertyOrder lists required properties first, in their declared order,
// then the remaining properties sorted by name. Go's map iteration would
// otherwise make field order unstable between runs.
func propertyOrder(body *openapi3.Schema) []string {
	names := make([]string, 0, len(body.Properties))
	seen := make(map[string]struct{}, len(body.Properties))
	for _, name := range body.Required {
		if _, ok := body.Properties[name]; ok {
			names = append(names, name)
			seen[name] = struct{}{}
		}
	}
	rest := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func fieldFromProperty(name string, property *openapi3.Schema, required bool) (rules.Field, error) {
	field := rules.Field{Name: name}
	if required {
		field.Rules = append(field.Rules, rules.Required())
	}
	if property.MinLength != 0 {
		field.Rules = append(field.Rules, rules.MinLength(int(property.MinLength)))
	}
	if property.MaxLength != nil {
		field.Rules = append(field.Rules, rules.MaxLength(int(*property.MaxLength)))
	}
	if property.Pattern != "" {
		compiled, err := regexp.Compile(property.Pattern)
		if err != nil {
			return rules.Field{}, fmt.Errorf("openapi: property %q: pattern %q: %w", name, property.Pattern, err)
		}
		field.Rules = append(field.Rules, rules.Pattern(compiled, ""))
	}
	if property.Format == "email" {
		field.Rules = append(field.Rules, rules.Email())
	}
	if len(property.Enum) > 0 {
		options := make([]string, 0, len(property.Enum))
		for _, option := range property.Enum {
			options = append(options, fmt.Sprint(option))
		}
		field.Rules = append(field.Rules, rules.OneOf(options...))
	}
	return field, nil
}

func typeIs(schema *openapi3.Schema, want string) bool {
	if schema.Type == nil {
		// Untyped schemas with properties are treated as objects, the way
		// most real-world specs mean them.
		return want == "object" && len(schema.Properties) > 0
	}
	return schema.Type.Is(want)
}
