package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-coopsite/internal/identity"
	"github.com/goliatone/go-coopsite/pkg/testsupport"
)

func fixedUUID() uuid.UUID {
	return uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
}

func newTestDB(t *testing.T, name string) *bun.DB {
	t.Helper()
	db := testsupport.NewBunDB(t, name)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := CreateTables(ctx, db); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return db
}

func newSubmission(email string, at time.Time) *Submission {
	id := identity.SubmissionUUID(email, at, "Please tell me more about the pilot.")
	return &Submission{
		ID:          id,
		Reference:   identity.ReferenceCode(id),
		Name:        "Visitor",
		Email:       email,
		Message:     "Please tell me more about the pilot.",
		Language:    "en",
		Status:      StatusPending,
		SubmittedAt: at,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func TestBunRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t, "contact_lifecycle")
	repo := NewBunRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, newSubmission("a@example.com", fixedNow))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Create(ctx, newSubmission("b@example.com", fixedNow.Add(time.Hour))); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	fetched, err := repo.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.Email != "a@example.com" || fetched.Status != StatusPending {
		t.Fatalf("unexpected record %+v", fetched)
	}

	updated, err := repo.UpdateStatus(ctx, first.ID, StatusSent, "submission."+first.ID.String(), "")
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != StatusSent {
		t.Fatalf("expected sent status, got %s", updated.Status)
	}

	records, total, err := repo.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 || len(records) != 2 || records[0].Email != "b@example.com" {
		t.Fatalf("expected newest first, got %d records", len(records))
	}

	sent, total, err := repo.List(ctx, ListOptions{Status: StatusSent})
	if err != nil || total != 1 || sent[0].ID != first.ID {
		t.Fatalf("expected one sent record, got %d (%v)", total, err)
	}

	if _, err := repo.Get(ctx, fixedUUID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBunRepositoryWithCache(t *testing.T) {
	db := newTestDB(t, "contact_cache")

	cfg := repocache.DefaultConfig()
	cfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	repo := NewBunRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
	ctx := context.Background()

	created, err := repo.Create(ctx, newSubmission("c@example.com", fixedNow))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		fetched, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if fetched.Reference != created.Reference {
			t.Fatalf("unexpected reference %s", fetched.Reference)
		}
	}
}

func TestServiceWithBunRepository(t *testing.T) {
	db := newTestDB(t, "contact_service")
	writer := &fakeWriter{}
	svc := NewService(NewBunRepository(db), writer, WithClock(func() time.Time { return fixedNow }))

	receipt, err := svc.Submit(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	stored, err := svc.Get(context.Background(), receipt.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Status != StatusSent || stored.Language != "du" {
		t.Fatalf("unexpected stored record %+v", stored)
	}
}
