package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/filad/filad/internal/platform/metrics"
)

// Poll outcomes, from highest to lowest priority.
const (
	PollInProgress  = "IN_PROGRESS"
	PollNextWaiting = "NEXT_WAITING"
	PollEmpty       = "EMPTY"
)

// PollResult is the physician dashboard snapshot: the visit in progress
// when one exists, otherwise the next patient to call, otherwise empty.
type PollResult struct {
	OverallStatus string     `json:"overall_status"`
	EntryID       *uuid.UUID `json:"entry_id,omitempty"`
	PatientID     *uuid.UUID `json:"patient_id,omitempty"`
	PatientName   string     `json:"patient_name,omitempty"`
	StatusLabel   string     `json:"status_label,omitempty"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
}

// PollStatus resolves the physician's current-or-next actionable entry.
// An IN_PROGRESS visit always wins; with several in progress the most
// recently called one is reported. The timestamp carries the called time
// for in-progress entries and the arrival time for waiting ones.
func (s *Service) PollStatus(ctx context.Context, physicianID uuid.UUID) (*PollResult, error) {
	cur, err := s.repo.CurrentInProgress(ctx, physicianID)
	if err != nil {
		return nil, err
	}
	if cur != nil {
		metrics.RecordPollResult(PollInProgress)
		return &PollResult{
			OverallStatus: PollInProgress,
			EntryID:       &cur.ID,
			PatientID:     &cur.PatientID,
			PatientName:   cur.PatientName,
			StatusLabel:   cur.Status.Label(),
			Timestamp:     cur.CalledAt,
		}, nil
	}

	next, err := s.repo.NextWaiting(ctx, physicianID)
	if err != nil {
		return nil, err
	}
	if next != nil {
		arrived := next.ArrivedAt
		metrics.RecordPollResult(PollNextWaiting)
		return &PollResult{
			OverallStatus: PollNextWaiting,
			EntryID:       &next.ID,
			PatientID:     &next.PatientID,
			PatientName:   next.PatientName,
			StatusLabel:   next.Status.Label(),
			Timestamp:     &arrived,
		}, nil
	}

	metrics.RecordPollResult(PollEmpty)
	return &PollResult{OverallStatus: PollEmpty}, nil
}
