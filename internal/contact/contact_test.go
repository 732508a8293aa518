package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-coopsite/internal/logging/logtest"
	"github.com/goliatone/go-coopsite/internal/schema"
)

type fakeWriter struct {
	mu   sync.Mutex
	docs []map[string]any
	err  error
}

func (w *fakeWriter) Create(_ context.Context, doc map[string]any) (map[string]any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	w.docs = append(w.docs, doc)
	return map[string]any{"_id": doc["_id"], "_type": doc["_type"]}, nil
}

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func validCommand() SubmitCommand {
	return SubmitCommand{
		Name:     "  Ada Lovelace ",
		Email:    "Ada@Example.com",
		Message:  "I would like to join the battery pilot.",
		Language: "du",
	}
}

func TestSubmitCommandValidate(t *testing.T) {
	if err := validCommand().Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}

	cases := map[string]struct {
		mutate func(*SubmitCommand)
		field  string
	}{
		"blank name":       {func(c *SubmitCommand) { c.Name = "   " }, "name"},
		"long name":        {func(c *SubmitCommand) { c.Name = strings.Repeat("a", MaxNameLength+1) }, "name"},
		"bad email":        {func(c *SubmitCommand) { c.Email = "not-an-email" }, "email"},
		"short message":    {func(c *SubmitCommand) { c.Message = "hi there" }, "message"},
		"padded short":     {func(c *SubmitCommand) { c.Message = "   short    " }, "message"},
		"long message":     {func(c *SubmitCommand) { c.Message = strings.Repeat("x", MaxMessageLength+1) }, "message"},
		"unknown language": {func(c *SubmitCommand) { c.Language = "fr" }, "language"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := validCommand()
			tc.mutate(&cmd)
			fields := FieldErrors(cmd.Validate())
			if _, ok := fields[tc.field]; !ok {
				t.Fatalf("expected error on %s, got %v", tc.field, fields)
			}
		})
	}

	cmd := validCommand()
	cmd.Language = ""
	if err := cmd.Validate(); err != nil {
		t.Fatalf("blank language should be accepted, got %v", err)
	}
	if FieldErrors(errors.New("plain")) != nil {
		t.Fatalf("expected nil for non validation errors")
	}
}

func TestServiceSubmitSendsDocument(t *testing.T) {
	repo := NewMemoryRepository()
	writer := &fakeWriter{}
	recorder := logtest.New()
	svc := NewService(repo, writer, WithClock(func() time.Time { return fixedNow }), WithLogger(recorder))

	receipt, err := svc.Submit(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if receipt.Status != StatusSent || !strings.HasPrefix(receipt.Reference, "CS-") {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if len(writer.docs) != 1 {
		t.Fatalf("expected one CMS document, got %d", len(writer.docs))
	}
	doc := writer.docs[0]
	if doc["_type"] != schema.ContactSubmission || doc["name"] != "Ada Lovelace" || doc["email"] != "ada@example.com" || doc["language"] != "du" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc["submittedAt"] != "2026-03-01T10:00:00Z" {
		t.Fatalf("unexpected submittedAt %v", doc["submittedAt"])
	}

	stored, err := svc.Get(context.Background(), receipt.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Status != StatusSent || stored.DocumentID != doc["_id"] {
		t.Fatalf("expected sent record, got %+v", stored)
	}
	if got := recorder.Messages("info"); len(got) == 0 {
		t.Fatalf("expected info logs")
	}
}

func TestServiceSubmitRecordsWriterFailure(t *testing.T) {
	repo := NewMemoryRepository()
	writer := &fakeWriter{err: errors.New("cms unavailable")}
	svc := NewService(repo, writer, WithClock(func() time.Time { return fixedNow }))

	receipt, err := svc.Submit(context.Background(), validCommand())
	if err == nil {
		t.Fatal("expected delivery error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if receipt.Status != StatusFailed {
		t.Fatalf("expected failed receipt, got %+v", receipt)
	}
	records, total, err := svc.List(context.Background(), ListOptions{Status: StatusFailed})
	if err != nil || total != 1 {
		t.Fatalf("expected one failed record, got %d (%v)", total, err)
	}
	if !strings.Contains(records[0].LastError, "cms unavailable") {
		t.Fatalf("expected stored cause, got %+v", records[0])
	}
}

func TestServiceSubmitRejectsInvalidCommand(t *testing.T) {
	writer := &fakeWriter{}
	svc := NewService(NewMemoryRepository(), writer)

	cmd := validCommand()
	cmd.Email = "nope"
	_, err := svc.Submit(context.Background(), cmd)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(writer.docs) != 0 {
		t.Fatalf("writer should not be called for invalid input")
	}
	_, total, _ := svc.List(context.Background(), ListOptions{})
	if total != 0 {
		t.Fatalf("invalid submissions should not be stored")
	}
}

func TestServiceDisabled(t *testing.T) {
	if _, err := NewService(nil, nil).Submit(context.Background(), validCommand()); !errors.Is(err, ErrContactDisabled) {
		t.Fatalf("expected ErrContactDisabled without writer, got %v", err)
	}
	svc := NewService(nil, &fakeWriter{}, WithEnabled(false))
	if svc.Enabled() {
		t.Fatal("expected disabled service")
	}
	if _, err := svc.Submit(context.Background(), validCommand()); !errors.Is(err, ErrContactDisabled) {
		t.Fatalf("expected ErrContactDisabled, got %v", err)
	}
}

func TestMemoryRepositoryListPaging(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		record := &Submission{
			Reference:   "CS-" + string(rune('A'+i)),
			Status:      StatusPending,
			SubmittedAt: fixedNow.Add(time.Duration(i) * time.Minute),
		}
		if _, err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	page, total, err := repo.List(ctx, ListOptions{Limit: 2, Offset: 1})
	if err != nil || total != 5 || len(page) != 2 {
		t.Fatalf("unexpected page %d/%d (%v)", len(page), total, err)
	}
	if page[0].Reference != "CS-D" || page[1].Reference != "CS-C" {
		t.Fatalf("expected newest first, got %s %s", page[0].Reference, page[1].Reference)
	}
	if _, err := repo.UpdateStatus(ctx, page[0].ID, StatusSent, "submission.x", ""); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if _, err := repo.Get(ctx, fixedUUID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
