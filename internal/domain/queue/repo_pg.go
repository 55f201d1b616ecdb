package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryCols = `q.id, q.patient_id, q.physician_id, q.status,
	q.arrived_at, q.called_at, q.finished_at, q.notes,
	q.exams, q.other_exam, q.progression, q.conduct,
	p.full_name, q.created_at, q.updated_at`

const entryFrom = ` FROM queue_entry q JOIN patient p ON p.id = q.patient_id `

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO queue_entry (id, patient_id, physician_id, status, arrived_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.PatientID, e.PhysicianID, e.Status, e.ArrivedAt, e.Notes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 foreign_key_violation: patient or physician does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInvalidReference
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryCols+entryFrom+`WHERE q.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *repoPG) MarkInProgress(ctx context.Context, id uuid.UUID, calledAt time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE queue_entry
		SET status = $3, called_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = $4`,
		id, calledAt, StatusInProgress, StatusWaiting,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repoPG) MarkDone(ctx context.Context, id uuid.UUID, finishedAt time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE queue_entry
		SET status = $3, called_at = COALESCE(called_at, $2), finished_at = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ($4, $5)`,
		id, finishedAt, StatusDone, StatusWaiting, StatusInProgress,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repoPG) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE queue_entry
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ($3, $4)`,
		id, StatusCancelled, StatusWaiting, StatusInProgress,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repoPG) SetClinicalData(ctx context.Context, id uuid.UUID, data ClinicalData) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE queue_entry
		SET exams = $2, other_exam = $3, progression = $4, conduct = $5, updated_at = NOW()
		WHERE id = $1 AND status <> $6`,
		id, data.Exams, data.OtherExam, data.Progression, data.Conduct, StatusCancelled,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repoPG) ListWaiting(ctx context.Context, physicianID *uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	var total int
	var err error
	if physicianID != nil {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM queue_entry WHERE status = $1 AND physician_id = $2`,
			StatusWaiting, *physicianID).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM queue_entry WHERE status = $1`, StatusWaiting).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}

	var rows pgx.Rows
	if physicianID != nil {
		rows, err = r.pool.Query(ctx, `SELECT `+entryCols+entryFrom+`
			WHERE q.status = $1 AND q.physician_id = $2
			ORDER BY q.arrived_at ASC LIMIT $3 OFFSET $4`,
			StatusWaiting, *physicianID, limit, offset)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+entryCols+entryFrom+`
			WHERE q.status = $1
			ORDER BY q.arrived_at ASC LIMIT $2 OFFSET $3`,
			StatusWaiting, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *repoPG) ListPhysicianQueue(ctx context.Context, physicianID uuid.UUID, exclude *uuid.UUID) ([]*Entry, error) {
	// IN_PROGRESS entries sort ahead of WAITING, each group by arrival.
	rows, err := r.pool.Query(ctx, `SELECT `+entryCols+entryFrom+`
		WHERE q.physician_id = $1
		  AND q.status IN ($2, $3)
		  AND ($4::uuid IS NULL OR q.id <> $4)
		ORDER BY (q.status = $2) DESC, q.arrived_at ASC`,
		physicianID, StatusInProgress, StatusWaiting, exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *repoPG) CurrentInProgress(ctx context.Context, physicianID uuid.UUID) (*Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryCols+entryFrom+`
		WHERE q.physician_id = $1 AND q.status = $2
		ORDER BY q.called_at DESC LIMIT 1`,
		physicianID, StatusInProgress))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *repoPG) NextWaiting(ctx context.Context, physicianID uuid.UUID) (*Entry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryCols+entryFrom+`
		WHERE q.physician_id = $1 AND q.status = $2
		ORDER BY q.arrived_at ASC LIMIT 1`,
		physicianID, StatusWaiting))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.PatientID, &e.PhysicianID, &e.Status,
		&e.ArrivedAt, &e.CalledAt, &e.FinishedAt, &e.Notes,
		&e.Exams, &e.OtherExam, &e.Progression, &e.Conduct,
		&e.PatientName, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.StatusLabel = e.Status.Label()
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.ID, &e.PatientID, &e.PhysicianID, &e.Status,
			&e.ArrivedAt, &e.CalledAt, &e.FinishedAt, &e.Notes,
			&e.Exams, &e.OtherExam, &e.Progression, &e.Conduct,
			&e.PatientName, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.StatusLabel = e.Status.Label()
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
