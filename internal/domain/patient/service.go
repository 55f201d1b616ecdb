package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QueueEnqueuer places a freshly registered patient on a physician's
// queue. It decouples registration from the queue package.
type QueueEnqueuer interface {
	EnqueuePatient(ctx context.Context, patientID, physicianID uuid.UUID, notes string) error
}

type Service struct {
	repo     Repository
	enqueuer QueueEnqueuer
}

func NewService(repo Repository, enqueuer QueueEnqueuer) *Service {
	return &Service{repo: repo, enqueuer: enqueuer}
}

func (s *Service) Register(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.Age == nil {
		age := yearsSince(p.BirthDate)
		p.Age = &age
	}
	return s.repo.Create(ctx, p)
}

// RegisterAndEnqueue registers the patient and, in the same request,
// places them on the physician's queue. Registration is not rolled back
// when the enqueue fails; the caller gets the patient and the error.
func (s *Service) RegisterAndEnqueue(ctx context.Context, p *Patient, physicianID uuid.UUID, notes string) error {
	if err := s.Register(ctx, p); err != nil {
		return err
	}
	if err := s.enqueuer.EnqueuePatient(ctx, p.ID, physicianID, notes); err != nil {
		return fmt.Errorf("patient registered but not enqueued: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByHealthCard(ctx context.Context, healthCardNo string) (*Patient, error) {
	return s.repo.GetByHealthCard(ctx, strings.TrimSpace(healthCardNo))
}

// UpdateDemographics overwrites the reception-desk fields. Clinical
// fields are untouched; physicians own those through UpdateClinical.
func (s *Service) UpdateDemographics(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.Age == nil {
		age := yearsSince(p.BirthDate)
		p.Age = &age
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) UpdateClinical(ctx context.Context, id uuid.UUID, rec ClinicalRecord) (*Patient, error) {
	if err := s.repo.UpdateClinical(ctx, id, rec); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Search lists patients matching term by name or health card number.
// A blank term lists everyone.
func (s *Service) Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx, limit, offset)
	}
	return s.repo.Search(ctx, term, limit, offset)
}

func validate(p *Patient) error {
	p.FullName = strings.TrimSpace(p.FullName)
	p.MotherName = strings.TrimSpace(p.MotherName)
	p.HealthCardNo = strings.TrimSpace(p.HealthCardNo)

	switch {
	case p.FullName == "":
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	case p.MotherName == "":
		return fmt.Errorf("%w: mother_name is required", ErrValidation)
	case p.HealthCardNo == "":
		return fmt.Errorf("%w: health_card_no is required", ErrValidation)
	case p.BirthDate.IsZero():
		return fmt.Errorf("%w: birth_date is required", ErrValidation)
	case p.BirthDate.After(time.Now()):
		return fmt.Errorf("%w: birth_date is in the future", ErrValidation)
	}
	return nil
}

func yearsSince(birth time.Time) int {
	now := time.Now()
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
