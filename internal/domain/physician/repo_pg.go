package physician

import (
	"context"
	"errors"

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

const physicianCols = `id, user_id, specialty, license_no, phone, email, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Physician) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO physician (id, user_id, specialty, license_no, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.Specialty, p.LicenseNo, p.Phone, p.Email,
	)
	return mapPgError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Physician, error) {
	p, err := scanPhysician(r.pool.QueryRow(ctx,
		`SELECT `+physicianCols+` FROM physician WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) GetByUserID(ctx context.Context, userID string) (*Physician, error) {
	p, err := scanPhysician(r.pool.QueryRow(ctx,
		`SELECT `+physicianCols+` FROM physician WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Physician) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE physician
		SET user_id = $2, specialty = $3, license_no = $4, phone = $5, email = $6, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.UserID, p.Specialty, p.LicenseNo, p.Phone, p.Email,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	// Queue history keeps its rows; the FK nulls physician_id out.
	tag, err := r.pool.Exec(ctx, `DELETE FROM physician WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Physician, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM physician`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+physicianCols+` FROM physician
		ORDER BY specialty ASC, license_no ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var physicians []*Physician
	for rows.Next() {
		var p Physician
		if err := rows.Scan(&p.ID, &p.UserID, &p.Specialty, &p.LicenseNo,
			&p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		physicians = append(physicians, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return physicians, total, nil
}

// mapPgError splits unique violations by constraint: the user binding
// and the license number each carry their own index.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "physician_user_id_key" {
			return ErrDuplicateUser
		}
		return ErrDuplicateLicense
	}
	return err
}

func scanPhysician(row pgx.Row) (*Physician, error) {
	var p Physician
	err := row.Scan(&p.ID, &p.UserID, &p.Specialty, &p.LicenseNo,
		&p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
