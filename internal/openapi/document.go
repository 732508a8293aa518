package openapi

import (
	"maps"

	"github.com/goliatone/go-coopsite/internal/contact"
	"github.com/goliatone/go-coopsite/internal/schema"
)

// Version is the OpenAPI revision emitted by Describe.
const Version = "3.1.0"

// Document represents a minimal OpenAPI document.
type Document struct {
	OpenAPI    string         `json:"openapi"`
	Info       Info           `json:"info"`
	Paths      map[string]any `json:"paths"`
	Components Components     `json:"components"`
}

// Info captures OpenAPI metadata.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Components aggregates schema components.
type Components struct {
	Schemas map[string]any `json:"schemas,omitempty"`
}

func NewDocument(title, version string) *Document {
	return &Document{
		OpenAPI:    Version,
		Info:       Info{Title: title, Version: version},
		Paths:      map[string]any{},
		Components: Components{Schemas: map[string]any{}},
	}
}

// AddSchema registers a component schema.
func (d *Document) AddSchema(name string, schema map[string]any) {
	if d == nil || name == "" || schema == nil {
		return
	}
	if d.Components.Schemas == nil {
		d.Components.Schemas = map[string]any{}
	}
	d.Components.Schemas[name] = schema
}

// AddOperation registers one method on path.
func (d *Document) AddOperation(path, method string, operation map[string]any) {
	if d == nil || path == "" || method == "" || operation == nil {
		return
	}
	item, _ := d.Paths[path].(map[string]any)
	if item == nil {
		item = map[string]any{}
		d.Paths[path] = item
	}
	item[method] = operation
}

// Describe returns the document for the public JSON API. Content document
// types from the schema catalog are registered as components.
func Describe(version string) *Document {
	doc := NewDocument("Stroomkring site API", version)
	for name, s := range schema.JSONSchemas() {
		component := maps.Clone(s)
		delete(component, "$schema")
		doc.AddSchema(name, component)
	}
	doc.AddSchema("Error", errorSchema())
	doc.AddSchema("ContactRequest", contactRequestSchema())
	doc.AddSchema("ContactReceipt", receiptSchema())

	lang := queryParam("lang", "Content language; overrides Accept-Language and is remembered in a cookie.", enumSchema("en", "du"))

	doc.AddOperation("/healthz", "get", operation("Liveness check", nil, map[string]any{
		"200": jsonResponse("Service is up", nil),
	}))
	doc.AddOperation("/api/pages/{page}", "get", operation("Render one page view model", []any{
		pathParam("page", enumSchema("home", "about", "pilot", "contact")), lang,
	}, map[string]any{
		"200": jsonResponse("Page view model", nil),
		"404": errorResponse("Unknown page"),
	}))
	doc.AddOperation("/api/blog", "get", operation("List blog posts", []any{
		lang,
		queryParam("category", "Category filter", stringSchema()),
		queryParam("tag", "Tag filter", stringSchema()),
		queryParam("q", "Free text search over title and excerpt", stringSchema()),
		queryParam("page", "1-based page number", integerSchema()),
		queryParam("per_page", "Posts per page", integerSchema()),
	}, map[string]any{
		"200": jsonResponse("Blog listing", nil),
	}))
	doc.AddOperation("/api/blog/{slug}", "get", operation("Render one blog post", []any{
		pathParam("slug", stringSchema()), lang,
	}, map[string]any{
		"200": jsonResponse("Post view model", nil),
		"404": errorResponse("Unknown post"),
	}))
	contactOp := operation("Submit the contact form", []any{lang}, map[string]any{
		"202": jsonResponse("Submission accepted", ref("ContactReceipt")),
		"400": errorResponse("Malformed body"),
		"422": errorResponse("Invalid fields"),
		"502": errorResponse("Content store rejected the submission"),
		"503": errorResponse("Contact form disabled"),
	})
	contactOp["requestBody"] = map[string]any{
		"required": true,
		"content":  map[string]any{"application/json": map[string]any{"schema": ref("ContactRequest")}},
	}
	doc.AddOperation("/api/contact", "post", contactOp)
	doc.AddOperation("/api/schema", "get", operation("Content type catalog", nil, map[string]any{
		"200": jsonResponse("Catalog and JSON Schemas", nil),
	}))
	doc.AddOperation("/api/schema/{type}", "get", operation("JSON Schema for one content type", []any{
		pathParam("type", stringSchema()),
	}, map[string]any{
		"200": jsonResponse("JSON Schema", nil),
		"404": errorResponse("Unknown type"),
	}))
	doc.AddOperation("/api/openapi.json", "get", operation("This document", nil, map[string]any{
		"200": jsonResponse("OpenAPI document", nil),
	}))
	return doc
}

func operation(summary string, params []any, responses map[string]any) map[string]any {
	op := map[string]any{"summary": summary, "responses": responses}
	if len(params) > 0 {
		op["parameters"] = params
	}
	return op
}

func jsonResponse(description string, schema map[string]any) map[string]any {
	if schema == nil {
		schema = map[string]any{"type": "object"}
	}
	return map[string]any{
		"description": description,
		"content":     map[string]any{"application/json": map[string]any{"schema": schema}},
	}
}

func errorResponse(description string) map[string]any {
	return jsonResponse(description, ref("Error"))
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func pathParam(name string, schema map[string]any) map[string]any {
	return map[string]any{"name": name, "in": "path", "required": true, "schema": schema}
}

func queryParam(name, description string, schema map[string]any) map[string]any {
	return map[string]any{"name": name, "in": "query", "description": description, "schema": schema}
}

func stringSchema() map[string]any  { return map[string]any{"type": "string"} }
func integerSchema() map[string]any { return map[string]any{"type": "integer", "minimum": 1} }

func enumSchema(values ...string) map[string]any {
	options := make([]any, len(values))
	for i, v := range values {
		options[i] = v
	}
	return map[string]any{"type": "string", "enum": options}
}

func errorSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"error"},
		"properties": map[string]any{
			"error":   stringSchema(),
			"message": stringSchema(),
			"issues": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"location": stringSchema(),
						"message":  stringSchema(),
					},
				},
			},
		},
	}
}

func contactRequestSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"name", "email", "message"},
		"properties": map[string]any{
			"name":     map[string]any{"type": "string", "minLength": 1, "maxLength": contact.MaxNameLength},
			"email":    map[string]any{"type": "string", "format": "email"},
			"message":  map[string]any{"type": "string", "minLength": contact.MinMessageLength, "maxLength": contact.MaxMessageLength},
			"language": enumSchema("en", "du"),
		},
	}
}

func receiptSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":        map[string]any{"type": "string", "format": "uuid"},
			"reference": stringSchema(),
			"status":    enumSchema(string(contact.StatusPending), string(contact.StatusSent), string(contact.StatusFailed)),
		},
	}
}
