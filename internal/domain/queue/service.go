package queue

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/filad/filad/internal/platform/metrics"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Enqueue creates a WAITING entry for the patient on the physician's queue.
func (s *Service) Enqueue(ctx context.Context, patientID, physicianID uuid.UUID, notes string) (*Entry, error) {
	if patientID == uuid.Nil || physicianID == uuid.Nil {
		return nil, ErrInvalidReference
	}

	e := &Entry{
		PatientID:   patientID,
		PhysicianID: &physicianID,
		Status:      StatusWaiting,
		ArrivedAt:   time.Now().UTC(),
	}
	if n := strings.TrimSpace(notes); n != "" {
		e.Notes = &n
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, e.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

// Call moves a WAITING entry to IN_PROGRESS. An entry in any other status
// is left untouched and the caller gets ErrInvalidTransition, or
// ErrConcurrentModification when the conditional write lost a race it
// should have won.
func (s *Service) Call(ctx context.Context, id uuid.UUID) (*Entry, error) {
	ok, err := s.repo.MarkInProgress(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		e, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if e.Status == StatusWaiting {
			return nil, ErrConcurrentModification
		}
		return nil, ErrInvalidTransition
	}

	metrics.RecordTransition(string(StatusWaiting), string(StatusInProgress))
	return s.repo.GetByID(ctx, id)
}

// Finalize closes an entry out. A WAITING entry is closed directly: its
// called timestamp is backfilled to the finish time, covering visits that
// were never formally called. A DONE entry reports ErrAlreadyFinalized
// alongside its current state; a CANCELLED one reports ErrInvalidTransition.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := e.Status

	ok, err := s.repo.MarkDone(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		e, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		switch e.Status {
		case StatusDone:
			return e, ErrAlreadyFinalized
		case StatusCancelled:
			return nil, ErrInvalidTransition
		default:
			return nil, ErrConcurrentModification
		}
	}

	metrics.RecordTransition(string(from), string(StatusDone))
	return s.repo.GetByID(ctx, id)
}

// Cancel moves a WAITING or IN_PROGRESS entry to CANCELLED. Terminal
// entries report ErrInvalidTransition.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := e.Status

	ok, err := s.repo.MarkCancelled(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	metrics.RecordTransition(string(from), string(StatusCancelled))
	return s.repo.GetByID(ctx, id)
}

// RecordClinicalData overwrites the encounter payload. Only the assigned
// physician may write, exams must come from the vocabulary, and blank free
// text normalizes to absent. The write goes through regardless of status
// except on CANCELLED entries.
func (s *Service) RecordClinicalData(ctx context.Context, id, physicianID uuid.UUID, data ClinicalData) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.PhysicianID == nil || *e.PhysicianID != physicianID {
		return nil, ErrNotAssigned
	}

	for _, exam := range data.Exams {
		if !ValidExam(exam) {
			return nil, ErrInvalidExam
		}
	}
	data.OtherExam = normalizeText(data.OtherExam)
	data.Progression = trimText(data.Progression)
	data.Conduct = trimText(data.Conduct)

	ok, err := s.repo.SetClinicalData(ctx, id, data)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Only a CANCELLED entry refuses the write.
		return nil, ErrInvalidTransition
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListWaiting(ctx context.Context, physicianID *uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	return s.repo.ListWaiting(ctx, physicianID, limit, offset)
}

func (s *Service) ListPhysicianQueue(ctx context.Context, physicianID uuid.UUID, exclude *uuid.UUID) ([]*Entry, error) {
	return s.repo.ListPhysicianQueue(ctx, physicianID, exclude)
}

// normalizeText trims s and turns blank text into absence.
func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func trimText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
