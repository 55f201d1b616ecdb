package patient

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

const patientCols = `id, full_name, birth_date, age, mother_name, health_card_no, insurance_plan,
	chief_complaint, illness_onset, pain_location, pain_characteristics,
	progression, allergies, preexisting_conditions, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, full_name, birth_date, age, mother_name, health_card_no, insurance_plan)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.FullName, p.BirthDate, p.Age, p.MotherName, p.HealthCardNo, p.InsurancePlan,
	)
	return mapPgError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) GetByHealthCard(ctx context.Context, healthCardNo string) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE health_card_no = $1`, healthCardNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient
		SET full_name = $2, birth_date = $3, age = $4, mother_name = $5,
		    health_card_no = $6, insurance_plan = $7, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.BirthDate, p.Age, p.MotherName, p.HealthCardNo, p.InsurancePlan,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateClinical(ctx context.Context, id uuid.UUID, rec ClinicalRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient
		SET chief_complaint = $2, illness_onset = $3, pain_location = $4,
		    pain_characteristics = $5, progression = $6, allergies = $7,
		    preexisting_conditions = $8, updated_at = NOW()
		WHERE id = $1`,
		id, rec.ChiefComplaint, rec.IllnessOnset, rec.PainLocation,
		rec.PainCharacteristics, rec.Progression, rec.Allergies,
		rec.PreexistingConditions,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient
		ORDER BY full_name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients, err := collectPatients(rows)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *repoPG) Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + term + "%"

	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM patient
		WHERE full_name ILIKE $1 OR health_card_no ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient
		WHERE full_name ILIKE $1 OR health_card_no ILIKE $1
		ORDER BY full_name ASC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients, err := collectPatients(rows)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// mapPgError translates unique violations on the health card column.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateHealthCard
	}
	return err
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.FullName, &p.BirthDate, &p.Age, &p.MotherName, &p.HealthCardNo, &p.InsurancePlan,
		&p.ChiefComplaint, &p.IllnessOnset, &p.PainLocation, &p.PainCharacteristics,
		&p.Progression, &p.Allergies, &p.PreexistingConditions, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows) ([]*Patient, error) {
	var patients []*Patient
	for rows.Next() {
		var p Patient
		err := rows.Scan(
			&p.ID, &p.FullName, &p.BirthDate, &p.Age, &p.MotherName, &p.HealthCardNo, &p.InsurancePlan,
			&p.ChiefComplaint, &p.IllnessOnset, &p.PainLocation, &p.PainCharacteristics,
			&p.Progression, &p.Allergies, &p.PreexistingConditions, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		patients = append(patients, &p)
	}
	return patients, rows.Err()
}
