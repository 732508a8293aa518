package contact

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps submissions in process memory for tests and for
// running without a database.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Submission
	now     func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]*Submission), now: time.Now}
}

func (m *MemoryRepository) Create(_ context.Context, record *Submission) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneSubmission(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	now := m.now().UTC()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	if copied.Status == "" {
		copied.Status = StatusPending
	}
	m.records[copied.ID] = copied
	return cloneSubmission(copied), nil
}

func (m *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneSubmission(record), nil
}

func (m *MemoryRepository) List(_ context.Context, opts ListOptions) ([]*Submission, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*Submission, 0, len(m.records))
	for _, record := range m.records {
		if opts.Status != "" && record.Status != opts.Status {
			continue
		}
		matched = append(matched, record)
	}
	slices.SortFunc(matched, func(a, b *Submission) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	total := len(matched)
	start := min(max(opts.Offset, 0), total)
	end := min(start+opts.limit(), total)
	out := make([]*Submission, 0, end-start)
	for _, record := range matched[start:end] {
		out = append(out, cloneSubmission(record))
	}
	return out, total, nil
}

func (m *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status Status, documentID, lastError string) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	record.Status = status
	if documentID != "" {
		record.DocumentID = documentID
	}
	record.LastError = lastError
	record.UpdatedAt = m.now().UTC()
	return cloneSubmission(record), nil
}
