package physician

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, p *Physician) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Physician, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserID resolves the identity provider subject to its physician
// profile.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*Physician, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, p *Physician) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Physician, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func validate(p *Physician) error {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Specialty = strings.TrimSpace(p.Specialty)
	p.LicenseNo = strings.TrimSpace(p.LicenseNo)

	switch {
	case p.UserID == "":
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	case p.Specialty == "":
		return fmt.Errorf("%w: specialty is required", ErrValidation)
	case p.LicenseNo == "":
		return fmt.Errorf("%w: license_no is required", ErrValidation)
	}
	return nil
}
