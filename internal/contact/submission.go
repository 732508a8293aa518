package contact

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-coopsite/internal/identity"
	"github.com/goliatone/go-coopsite/internal/schema"
)

// Status tracks delivery of a submission to the CMS.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Submission is the locally stored record of a contact form submission.
type Submission struct {
	bun.BaseModel `bun:"table:contact_submissions,alias:cs"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Reference   string    `bun:"reference,notnull" json:"reference"`
	Name        string    `bun:"name,notnull" json:"name"`
	Email       string    `bun:"email,notnull" json:"email"`
	Message     string    `bun:"message,notnull" json:"message"`
	Language    string    `bun:"language,notnull" json:"language"`
	Status      Status    `bun:"status,notnull,default:'pending'" json:"status"`
	DocumentID  string    `bun:"document_id,nullzero" json:"document_id,omitempty"`
	LastError   string    `bun:"last_error,nullzero" json:"last_error,omitempty"`
	SubmittedAt time.Time `bun:"submitted_at,notnull" json:"submitted_at"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

const documentPrefix = "submission"

// Document renders the CMS document written for s.
func Document(s *Submission) map[string]any {
	return map[string]any{
		"_id":         identity.DocumentID(documentPrefix, s.ID),
		"_type":       schema.ContactSubmission,
		"name":        s.Name,
		"email":       s.Email,
		"message":     s.Message,
		"language":    s.Language,
		"submittedAt": s.SubmittedAt.UTC().Format(time.RFC3339),
		"reference":   s.Reference,
		"status":      schema.SubmissionNew,
	}
}

func cloneSubmission(s *Submission) *Submission {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
