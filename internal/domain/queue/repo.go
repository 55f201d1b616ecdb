package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage contract for queue entries. The Mark* methods
// are conditional writes: they mutate only when the entry is in a status
// the transition allows, and report whether a row changed. That check and
// the write happen in a single statement, so two concurrent callers can
// never both win the same transition.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// MarkInProgress moves WAITING -> IN_PROGRESS, setting called_at.
	MarkInProgress(ctx context.Context, id uuid.UUID, calledAt time.Time) (bool, error)
	// MarkDone moves WAITING or IN_PROGRESS -> DONE, setting finished_at
	// and, when unset, called_at.
	MarkDone(ctx context.Context, id uuid.UUID, finishedAt time.Time) (bool, error)
	// MarkCancelled moves WAITING or IN_PROGRESS -> CANCELLED.
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
	// SetClinicalData overwrites the encounter payload unless the entry
	// is CANCELLED.
	SetClinicalData(ctx context.Context, id uuid.UUID, data ClinicalData) (bool, error)

	ListWaiting(ctx context.Context, physicianID *uuid.UUID, limit, offset int) ([]*Entry, int, error)
	ListPhysicianQueue(ctx context.Context, physicianID uuid.UUID, exclude *uuid.UUID) ([]*Entry, error)

	// CurrentInProgress returns the most recently called IN_PROGRESS entry
	// for the physician, or nil when there is none.
	CurrentInProgress(ctx context.Context, physicianID uuid.UUID) (*Entry, error)
	// NextWaiting returns the earliest-arrived WAITING entry for the
	// physician, or nil when there is none.
	NextWaiting(ctx context.Context, physicianID uuid.UUID) (*Entry, error)
}
