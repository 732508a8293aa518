package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-coopsite/internal/commands"
	"github.com/goliatone/go-coopsite/internal/identity"
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/logging"
	"github.com/goliatone/go-coopsite/internal/schema"
	"github.com/goliatone/go-coopsite/pkg/interfaces"
)

// ErrContactDisabled is returned by Submit when the contact form is switched
// off or no CMS writer is configured.
var ErrContactDisabled = errors.New("contact: submissions are disabled")

const codeDocumentInvalid = "CONTACT_DOCUMENT_INVALID"

// Receipt is returned to the visitor after a successful submission.
type Receipt struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	Status    Status    `json:"status"`
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeout bounds each submission, including the CMS write.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// WithEnabled switches the contact form on or off.
func WithEnabled(enabled bool) Option {
	return func(s *Service) {
		s.enabled = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service stores submissions locally and forwards them to the CMS.
type Service struct {
	repo    Repository
	writer  interfaces.DocumentCreator
	logger  interfaces.Logger
	timeout time.Duration
	enabled bool
	now     func() time.Time
}

// NewService wires the repository and the CMS writer. A nil writer leaves
// the service disabled.
func NewService(repo Repository, writer interfaces.DocumentCreator, opts ...Option) *Service {
	if repo == nil {
		repo = NewMemoryRepository()
	}
	s := &Service{
		repo:    repo,
		writer:  writer,
		logger:  logging.NoOp(),
		timeout: commands.DefaultTimeout,
		enabled: true,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Enabled reports whether Submit accepts submissions.
func (s *Service) Enabled() bool {
	return s != nil && s.enabled && s.writer != nil
}

// Submit validates cmd, records it as pending, writes the CMS document and
// marks the record sent or failed.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (Receipt, error) {
	if !s.Enabled() {
		return Receipt{}, ErrContactDisabled
	}
	var receipt Receipt
	handler := commands.NewHandler[SubmitCommand](func(ctx context.Context, msg SubmitCommand) error {
		result, err := s.submit(ctx, msg)
		receipt = result
		return err
	},
		commands.WithLogger[SubmitCommand](s.logger),
		commands.WithTimeout[SubmitCommand](s.timeout),
		commands.WithOperation[SubmitCommand]("contact.submit"),
	)
	if err := handler.Execute(ctx, cmd); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// Get returns one stored submission.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	return s.repo.Get(ctx, id)
}

// List pages through stored submissions, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Submission, int, error) {
	return s.repo.List(ctx, opts)
}

func (s *Service) submit(ctx context.Context, cmd SubmitCommand) (Receipt, error) {
	cmd = cmd.normalized()
	submittedAt := s.now().UTC().Truncate(time.Second)
	id := identity.SubmissionUUID(cmd.Email, submittedAt, cmd.Message)
	record := &Submission{
		ID:          id,
		Reference:   identity.ReferenceCode(id),
		Name:        cmd.Name,
		Email:       strings.ToLower(cmd.Email),
		Message:     cmd.Message,
		Language:    locale.Normalize(cmd.Language).String(),
		Status:      StatusPending,
		SubmittedAt: submittedAt,
		CreatedAt:   submittedAt,
		UpdatedAt:   submittedAt,
	}
	logger := logging.WithFields(s.logger, map[string]any{
		"submission": record.Reference,
		"lang":       record.Language,
	})

	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		return Receipt{}, err
	}
	receipt := Receipt{ID: stored.ID, Reference: stored.Reference, Status: StatusPending}

	doc := Document(stored)
	if err := schema.Validate(schema.ContactSubmission, doc); err != nil {
		s.markFailed(ctx, logger, stored.ID, err)
		receipt.Status = StatusFailed
		return receipt, goerrors.Wrap(err, goerrors.CategoryValidation, "contact submission document rejected").
			WithTextCode(codeDocumentInvalid)
	}

	created, err := s.writer.Create(ctx, doc)
	if err != nil {
		s.markFailed(ctx, logger, stored.ID, err)
		receipt.Status = StatusFailed
		return receipt, fmt.Errorf("contact: deliver submission %s: %w", stored.Reference, err)
	}

	documentID, _ := created["_id"].(string)
	if documentID == "" {
		documentID, _ = doc["_id"].(string)
	}
	if _, err := s.repo.UpdateStatus(ctx, stored.ID, StatusSent, documentID, ""); err != nil {
		logger.Warn("contact.submission.mark_sent_failed", "error", err)
	}
	logger.Info("contact.submission.sent", "document", documentID)
	receipt.Status = StatusSent
	return receipt, nil
}

func (s *Service) markFailed(ctx context.Context, logger interfaces.Logger, id uuid.UUID, cause error) {
	logger.Warn("contact.submission.failed", "error", cause)
	if _, err := s.repo.UpdateStatus(context.WithoutCancel(ctx), id, StatusFailed, "", cause.Error()); err != nil {
		logger.Warn("contact.submission.mark_failed_failed", "error", err)
	}
}
