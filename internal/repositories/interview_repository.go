package repositories

import (
	"context"
	"errors"

	"interviewlens/internal/models"
)

// ErrNotFound is returned when no interview exists under the given id.
var ErrNotFound = errors.New("interview not found")

// InterviewRepository is the persistent store contract: keyed upsert,
// partial field update, delete, and sorted listing. The pipeline only ever
// talks to the store through single-document operations keyed by id.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// List returns all interviews sorted by pinned desc, then recency desc.
	List(ctx context.Context) ([]models.Interview, error)
}
