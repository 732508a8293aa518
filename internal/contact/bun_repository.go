package contact

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository stores submissions through go-repository-bun.
type BunRepository struct {
	repo repository.Repository[*Submission]
	now  func() time.Time
}

var _ Repository = (*BunRepository)(nil)

// NewSubmissionRepository builds the generic repository for submissions.
func NewSubmissionRepository(db *bun.DB) repository.Repository[*Submission] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Submission]{
		NewRecord: func() *Submission { return &Submission{} },
		GetID: func(s *Submission) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Submission, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "reference"
		},
		GetIdentifierValue: func(s *Submission) string {
			return s.Reference
		},
	})
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache wraps the repository with go-repository-cache
// when both the service and the serializer are set.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	var base repository.Repository[*Submission] = NewSubmissionRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{repo: base, now: time.Now}
}

// CreateTables creates the submissions table when missing.
func CreateTables(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Submission)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (r *BunRepository) Create(ctx context.Context, record *Submission) (*Submission, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("submission repository error: %w", err)
	}
	return created, nil
}

func (r *BunRepository) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context, opts ListOptions) ([]*Submission, int, error) {
	records, total, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if opts.Status != "" {
				q = q.Where("?TableAlias.status = ?", string(opts.Status))
			}
			return q.OrderExpr("?TableAlias.submitted_at DESC").
				OrderExpr("?TableAlias.id ASC")
		}),
		repository.SelectPaginate(opts.limit(), max(opts.Offset, 0)),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("submission repository error: %w", err)
	}
	return records, total, nil
}

func (r *BunRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, documentID, lastError string) (*Submission, error) {
	record, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Status = status
	if documentID != "" {
		record.DocumentID = documentID
	}
	record.LastError = lastError
	record.UpdatedAt = r.now().UTC()

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("status", "document_id", "last_error", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return updated, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("submission repository error: %w", err)
}
