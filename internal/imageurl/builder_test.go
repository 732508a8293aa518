package imageurl

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	asset, err := Parse("image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if asset.ID != "Tb9Ew8CXIwaY6R1kjMvI0uRR" || asset.Width != 2000 || asset.Height != 3000 || asset.Format != "jpg" {
		t.Fatalf("unexpected asset %+v", asset)
	}

	for _, ref := range []string{"", "file-abc-10x10-pdf", "image-abc-10-jpg", "image-abc-0x10-jpg", "image-abc-10x10"} {
		if _, err := Parse(ref); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Parse(%q) expected ErrInvalidReference, got %v", ref, err)
		}
	}
}

func TestURL(t *testing.T) {
	b := Builder{ProjectID: "coop123", Dataset: "production", Defaults: Options{AutoFormat: true}}

	got, err := b.URL("image-abc123-1200x800-png", Options{Width: 600, Fit: FitCrop})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	want := "https://cdn.sanity.io/images/coop123/production/abc123-1200x800.png?auto=format&fit=crop&w=600"
	if got != want {
		t.Fatalf("URL = %q, want %q", got, want)
	}
}

func TestURLWithoutOptions(t *testing.T) {
	b := Builder{ProjectID: "p", Dataset: "d", BaseURL: "https://images.example.org/"}
	got, err := b.URL("image-x-1x2-webp", Options{})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got != "https://images.example.org/images/p/d/x-1x2.webp" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestURLRequiresConfiguration(t *testing.T) {
	if _, err := (Builder{}).URL("image-x-1x2-webp", Options{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
