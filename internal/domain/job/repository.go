package job

import (
	"context"

	"github.com/google/uuid"
)

// Listing is a job joined with its owner's display name.
type Listing struct {
	Job
	OwnerDisplayName string
}

type Repository interface {
	FindByTitle(ctx context.Context, title string) (Job, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Listing, error)
	List(ctx context.Context, limit, offset int) ([]Listing, error)
	Insert(ctx context.Context, j Job) error
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}
