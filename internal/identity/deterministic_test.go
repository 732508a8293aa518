package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("coopsite:test:key")
	second := UUID("  coopsite:test:key ")
	if first == uuid.Nil || first != second {
		t.Fatalf("expected stable non-nil uuid, got %s and %s", first, second)
	}
	if UUID("coopsite:test:other") == first {
		t.Fatalf("distinct keys should not collide")
	}
	if UUID("   ") != uuid.Nil {
		t.Fatalf("blank key should yield uuid.Nil")
	}
}

func TestSubmissionUUID(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	local := at.In(time.FixedZone("CET", 3600))

	a := SubmissionUUID("Ada@Example.com", at, "Hello there, friends")
	b := SubmissionUUID("ada@example.com ", local, "Hello there, friends ")
	if a != b {
		t.Fatalf("expected normalized inputs to match: %s vs %s", a, b)
	}
	if SubmissionUUID("ada@example.com", at.Add(time.Second), "Hello there, friends") == a {
		t.Fatalf("different instants should produce different ids")
	}
	if PostUUID("zon-op-school", "en") == PostUUID("zon-op-school", "du") {
		t.Fatalf("post ids should differ per language")
	}
}

func TestReferenceCode(t *testing.T) {
	id := UUID("coopsite:test:reference")
	code := ReferenceCode(id)
	if !strings.HasPrefix(code, "CS-") || len(code) != len("CS-")+8 {
		t.Fatalf("unexpected reference code %q", code)
	}
	if code != ReferenceCode(id) {
		t.Fatalf("reference code should be stable")
	}
	if ReferenceCode(uuid.Nil) != "" {
		t.Fatalf("nil id should not have a reference")
	}
	if got := DocumentID("submission", id); got != "submission."+id.String() {
		t.Fatalf("unexpected document id %q", got)
	}
}
