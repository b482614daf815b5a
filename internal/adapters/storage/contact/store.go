package contact

import (
	"context"

	domain "clubsite/internal/domain/contact"
)

// ListFilter narrows List results. Zero Limit means no limit.
type ListFilter struct {
	Status string
	Limit  int
}

// Store persists contact form Submission state.
type Store interface {
	Save(ctx context.Context, s domain.Submission) error
	GetByID(ctx context.Context, id string) (domain.Submission, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Submission, error)
}
