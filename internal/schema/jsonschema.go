package schema

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-coopsite/internal/validation"
)

const draft2020 = "https://json-schema.org/draft/2020-12/schema"

// ErrUnknownType is returned for names missing from the catalog.
var ErrUnknownType = errors.New("schema: unknown type")

// JSONSchema renders t as a draft 2020-12 JSON Schema. Underscore-prefixed
// system attributes are always allowed; documents must carry their _type.
func JSONSchema(t Type) map[string]any {
	out := objectSchema(t.Fields)
	out["$schema"] = draft2020
	out["title"] = t.Title
	if t.Kind == KindDocument {
		properties := out["properties"].(map[string]any)
		properties["_type"] = map[string]any{"const": t.Name}
		out["required"] = append([]any{"_type"}, requiredNames(t.Fields)...)
	}
	return out
}

// JSONSchemas renders every document type keyed by name.
func JSONSchemas() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, t := range catalog {
		if t.Kind == KindDocument {
			out[t.Name] = JSONSchema(t)
		}
	}
	return out
}

var compiled sync.Map

// Validate checks payload against the named type.
func Validate(name string, payload any) error {
	schema, err := compile(name)
	if err != nil {
		return err
	}
	return schema.Validate(payload)
}

func compile(name string) (*validation.Schema, error) {
	if cached, ok := compiled.Load(name); ok {
		return cached.(*validation.Schema), nil
	}
	t, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	schema, err := validation.Compile(name, JSONSchema(t))
	if err != nil {
		return nil, err
	}
	actual, _ := compiled.LoadOrStore(name, schema)
	return actual.(*validation.Schema), nil
}

func objectSchema(fields []Field) map[string]any {
	properties := make(map[string]any, len(fields))
	for _, field := range fields {
		properties[field.Name] = fieldSchema(field)
	}
	out := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"patternProperties":    map[string]any{"^_": map[string]any{}},
		"additionalProperties": false,
	}
	if names := requiredNames(fields); len(names) > 0 {
		out["required"] = names
	}
	return out
}

func requiredNames(fields []Field) []any {
	names := []any{}
	for _, field := range fields {
		if field.Required {
			names = append(names, field.Name)
		}
	}
	return names
}

func fieldSchema(field Field) map[string]any {
	switch field.Type {
	case TypeString, TypeText:
		return stringSchema(field, "")
	case TypeEmail:
		return stringSchema(field, "email")
	case TypeURL:
		return stringSchema(field, "uri")
	case TypeDatetime:
		return stringSchema(field, "date-time")
	case TypeNumber:
		out := map[string]any{"type": "number"}
		if field.Min != 0 {
			out["minimum"] = field.Min
		}
		if field.Max != 0 {
			out["maximum"] = field.Max
		}
		return out
	case TypeBoolean:
		return map[string]any{"type": "boolean"}
	case TypeSlug:
		return objectSchema([]Field{required(str("current"))})
	case TypeReference:
		return objectSchema([]Field{required(Field{Name: "_ref", Type: TypeString, Min: 1})})
	case TypeBlock:
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"_type"},
			},
		}
	case TypeArray:
		out := map[string]any{"type": "array"}
		if field.Of != nil {
			out["items"] = fieldSchema(*field.Of)
		}
		if field.Min != 0 {
			out["minItems"] = field.Min
		}
		if field.Max != 0 {
			out["maxItems"] = field.Max
		}
		return out
	case TypeObject:
		return objectSchema(field.Fields)
	}
	if named, ok := index[string(field.Type)]; ok && catalog[named].Kind == KindObject {
		return objectSchema(catalog[named].Fields)
	}
	return map[string]any{}
}

func stringSchema(field Field, format string) map[string]any {
	out := map[string]any{"type": "string"}
	if format != "" {
		out["format"] = format
	}
	if field.Min != 0 {
		out["minLength"] = field.Min
	}
	if field.Max != 0 {
		out["maxLength"] = field.Max
	}
	if len(field.Options) > 0 {
		options := make([]any, len(field.Options))
		for i, option := range field.Options {
			options[i] = option
		}
		out["enum"] = options
	}
	return out
}
