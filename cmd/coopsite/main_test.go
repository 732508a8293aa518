package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-coopsite"
)

func quietModules(t *testing.T) {
	t.Helper()
	original := moduleBuilder
	moduleBuilder = func(cfg coopsite.Config) (*coopsite.Module, error) {
		cfg.Features.Logger = false
		return coopsite.New(cfg)
	}
	t.Cleanup(func() { moduleBuilder = original })
}

func TestRunRequiresCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, &out); err == nil {
		t.Fatal("expected error without a command")
	}
	if !strings.Contains(out.String(), "usage: coopsite") {
		t.Fatalf("expected usage text, got %q", out.String())
	}
	if err := run([]string{"deploy"}, &out); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRenderPrintsPageJSON(t *testing.T) {
	quietModules(t)

	var out bytes.Buffer
	if err := run([]string{"render", "-page", "about", "-lang", "du"}, &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	var payload struct {
		Meta struct {
			Page string `json:"page"`
			Lang string `json:"lang"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if payload.Meta.Page != "about" || payload.Meta.Lang != "du" {
		t.Fatalf("unexpected meta %+v", payload.Meta)
	}
}

func TestRenderRejectsUnknownPage(t *testing.T) {
	quietModules(t)

	var out bytes.Buffer
	if err := run([]string{"render", "-page", "careers"}, &out); err == nil {
		t.Fatal("expected unknown page error")
	}
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"schema", "-type", "contactSubmission"}, &out); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(out.String(), `"contactSubmission"`) {
		t.Fatalf("expected contactSubmission schema, got %s", out.String())
	}
	if err := run([]string{"schema", "-type", "careers"}, &out); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestSubmissionsCommandOnEmptyStore(t *testing.T) {
	quietModules(t)

	var out bytes.Buffer
	if err := run([]string{"submissions"}, &out); err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if !strings.Contains(out.String(), "0 of 0 submissions") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
