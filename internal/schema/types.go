// Package schema declares the CMS content model: every document and object
// type the site reads or writes, with a JSON Schema view used to validate
// payloads before they are sent to the CMS.
package schema

import (
	"github.com/goliatone/go-coopsite/internal/locale"
)

// FieldType names a field kind in the content model.
type FieldType string

const (
	TypeString       FieldType = "string"
	TypeText         FieldType = "text"
	TypeEmail        FieldType = "email"
	TypeURL          FieldType = "url"
	TypeNumber       FieldType = "number"
	TypeBoolean      FieldType = "boolean"
	TypeDatetime     FieldType = "datetime"
	TypeSlug         FieldType = "slug"
	TypeImage        FieldType = "image"
	TypeReference    FieldType = "reference"
	TypeArray        FieldType = "array"
	TypeObject       FieldType = "object"
	TypeBlock        FieldType = "block"
	TypeLocaleString FieldType = "localeString"
	TypeLocaleText   FieldType = "localeText"
	TypeLocaleBlock  FieldType = "localeBlock"
)

// Kind separates top-level documents from reusable objects.
type Kind string

const (
	KindDocument Kind = "document"
	KindObject   Kind = "object"
)

// Field is one field of a type. Type may also name an object type declared
// in the catalog.
type Field struct {
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required,omitempty"`
	// Max bounds string length, or item count for arrays.
	Max     int      `json:"max,omitempty"`
	Min     int      `json:"min,omitempty"`
	Options []string `json:"options,omitempty"`
	// Of is the item definition of an array.
	Of *Field `json:"of,omitempty"`
	// To is the target type of a reference.
	To     string  `json:"to,omitempty"`
	Fields []Field `json:"fields,omitempty"`
}

// Type is a document or object type.
type Type struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Kind  Kind   `json:"kind"`
	// Singleton documents exist once per dataset.
	Singleton bool    `json:"singleton,omitempty"`
	Fields    []Field `json:"fields"`
}

func (t Type) clone() Type {
	t.Fields = cloneFields(t.Fields)
	return t
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		field.Options = append([]string(nil), field.Options...)
		field.Fields = cloneFields(field.Fields)
		if field.Of != nil {
			of := *field.Of
			of.Options = append([]string(nil), of.Options...)
			of.Fields = cloneFields(of.Fields)
			field.Of = &of
		}
		out[i] = field
	}
	return out
}

func languages() []string {
	codes := locale.Supported()
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = code.String()
	}
	return out
}

func str(name string) Field          { return Field{Name: name, Type: TypeString} }
func text(name string) Field         { return Field{Name: name, Type: TypeText} }
func localeString(name string) Field { return Field{Name: name, Type: TypeLocaleString} }
func localeText(name string) Field   { return Field{Name: name, Type: TypeLocaleText} }
func image(name string) Field        { return Field{Name: name, Type: TypeImage} }
func object(name, typeName string) Field {
	return Field{Name: name, Type: FieldType(typeName)}
}
func list(name string, of Field) Field {
	return Field{Name: name, Type: TypeArray, Of: &of}
}
func enum(name string, options ...string) Field {
	return Field{Name: name, Type: TypeString, Options: options}
}
func required(field Field) Field {
	field.Required = true
	return field
}
