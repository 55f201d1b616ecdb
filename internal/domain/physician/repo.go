package physician

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Physician) error
	GetByID(ctx context.Context, id uuid.UUID) (*Physician, error)
	GetByUserID(ctx context.Context, userID string) (*Physician, error)
	Update(ctx context.Context, p *Physician) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Physician, int, error)
}
