package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByHealthCard(ctx context.Context, healthCardNo string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	UpdateClinical(ctx context.Context, id uuid.UUID, rec ClinicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// Search matches the term against the full name and the health card
	// number, case-insensitively.
	Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error)
}
