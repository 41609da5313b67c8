package jsonschema

import (
	"reflect"
	"strings"
)

// Schema represents a JSON Schema document used to describe tool arguments
// and structured outputs. It supports the subset of the standard that LLM
// provider APIs consume: object/array/primitive types, per-property schemas,
// required lists, descriptions, and enums.
type Schema struct {
	// Type specifies the data type (e.g. "object", "array", "string", "number").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties maps field names to their schemas for object types.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the element schema for array types.
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether undeclared properties are allowed.
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Enum lists the allowed values for the parameter.
	Enum []any `json:"enum,omitempty"`
}

// Generate builds a JSON schema for the type T.
// Struct fields are named after their `json` tags (falling back to the Go
// field name), and `jsonschema` tags contribute descriptions, enums, and
// required markers. Recursive types are cut off with a bare object schema.
func Generate[T any]() *Schema {
	return generate(reflect.TypeFor[T](), map[reflect.Type]bool{})
}

func generate(t reflect.Type, visiting map[reflect.Type]bool) *Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return generate(t.Elem(), visiting)

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: generate(t.Elem(), visiting)}

	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: true}

	case reflect.Struct:
		return generateStruct(t, visiting)

	default:
		// Interfaces, channels, funcs: nothing useful to describe.
		return &Schema{}
	}
}

func generateStruct(t reflect.Type, visiting map[reflect.Type]bool) *Schema {
	if visiting[t] {
		// Recursion cutoff: reference-free schemas keep providers happy.
		return &Schema{Type: "object"}
	}
	visiting[t] = true
	defer delete(visiting, t)

	schema := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := parseJSONTag(field)
		if skip {
			continue
		}

		fieldSchema := generate(field.Type, visiting)
		required := !omitEmpty

		if tag := field.Tag.Get("jsonschema"); tag != "" {
			required = applySchemaTag(fieldSchema, tag, required)
		}

		schema.Properties[name] = fieldSchema
		if required {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// parseJSONTag resolves the wire name of a struct field from its `json` tag.
// It reports whether the field carries omitempty and whether it is excluded
// entirely (json:"-").
func parseJSONTag(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	name = field.Name

	tag := field.Tag.Get("json")
	if tag == "" {
		return name, false, false
	}
	if tag == "-" {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, option := range parts[1:] {
		if option == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// applySchemaTag folds a `jsonschema` struct tag into the field schema.
// Supported directives: description=..., enum=... (repeatable), required.
// Returns the updated required flag for the field.
func applySchemaTag(schema *Schema, tag string, required bool) bool {
	for _, part := range strings.Split(tag, ",") {
		switch {
		case strings.HasPrefix(part, "description="):
			schema.Description = strings.TrimPrefix(part, "description=")
		case strings.HasPrefix(part, "enum="):
			schema.Enum = append(schema.Enum, strings.TrimPrefix(part, "enum="))
		case part == "required":
			required = true
		}
	}
	return required
}
