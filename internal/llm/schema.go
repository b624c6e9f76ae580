package llm

import "strings"

// Type is a schema value type.
type Type string

// Schema value types.
const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Schema describes the JSON shape a model must produce. It is plain data so
// each provider can render it in its own dialect.
type Schema struct {
	Items       *Schema
	Type        Type
	Description string
	Enum        []string
	Properties  []Field
	Required    []string
}

// Field is a named object property. Order is preserved when rendering.
type Field struct {
	Schema *Schema
	Name   string
}

// Object builds an object schema.
func Object(required []string, fields ...Field) *Schema {
	return &Schema{Type: TypeObject, Properties: fields, Required: required}
}

// String builds a string schema with an optional description.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Enum builds a string schema restricted to values.
func Enum(values ...string) *Schema {
	return &Schema{Type: TypeString, Enum: values}
}

// Number builds a number schema.
func Number(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

// Boolean builds a boolean schema.
func Boolean() *Schema {
	return &Schema{Type: TypeBoolean}
}

// Array builds an array schema of items.
func Array(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// Gemini renders the schema in the OpenAPI subset accepted by Gemini's
// responseSchema, with upper-case type names and explicit property ordering.
func (s *Schema) Gemini() map[string]any {
	return s.render(func(t Type) string { return strings.ToUpper(string(t)) }, true)
}

// JSONSchema renders the schema as standard JSON Schema.
func (s *Schema) JSONSchema() map[string]any {
	return s.render(func(t Type) string { return string(t) }, false)
}

func (s *Schema) render(typeName func(Type) string, ordering bool) map[string]any {
	if s == nil {
		return nil
	}

	out := map[string]any{"type": typeName(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = append([]string(nil), s.Enum...)
	}
	if s.Items != nil {
		out["items"] = s.Items.render(typeName, ordering)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		order := make([]string, 0, len(s.Properties))
		for _, f := range s.Properties {
			props[f.Name] = f.Schema.render(typeName, ordering)
			order = append(order, f.Name)
		}
		out["properties"] = props
		if ordering {
			out["propertyOrdering"] = order
		}
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	return out
}
