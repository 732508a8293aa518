package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("contact: submission not found")

// NotFoundError reports a missing submission.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("submission %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ListOptions pages through stored submissions, newest first.
type ListOptions struct {
	Status Status
	Limit  int
	Offset int
}

const defaultListLimit = 50

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return defaultListLimit
	}
	return o.Limit
}

// Repository persists contact submissions.
type Repository interface {
	Create(ctx context.Context, record *Submission) (*Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*Submission, error)
	List(ctx context.Context, opts ListOptions) ([]*Submission, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, documentID, lastError string) (*Submission, error)
}
