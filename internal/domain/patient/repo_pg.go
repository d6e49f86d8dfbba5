package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(_ context.Context) queryable { return r.pool }

const patientCols = `id, doctor_id, name, birth_date, gender, parent_name, parent_phone,
	email, allergies, blood_type, notes, growth_history, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.DoctorID, &p.Name, &p.BirthDate, &p.Gender, &p.ParentName,
		&p.ParentPhone, &p.Email, &p.Allergies, &p.BloodType, &p.Notes, &p.GrowthHistory,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.GrowthHistory == nil {
		p.GrowthHistory = []GrowthRecord{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, doctor_id, name, birth_date, gender, parent_name, parent_phone,
			email, allergies, blood_type, notes, growth_history)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.DoctorID, p.Name, p.BirthDate, p.Gender, p.ParentName, p.ParentPhone,
		p.Email, p.Allergies, p.BloodType, p.Notes, p.GrowthHistory)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	if p.GrowthHistory == nil {
		p.GrowthHistory = []GrowthRecord{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET doctor_id=$2, name=$3, birth_date=$4, gender=$5, parent_name=$6,
			parent_phone=$7, email=$8, allergies=$9, blood_type=$10, notes=$11,
			growth_history=$12, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.DoctorID, p.Name, p.BirthDate, p.Gender, p.ParentName, p.ParentPhone,
		p.Email, p.Allergies, p.BloodType, p.Notes, p.GrowthHistory)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error) {
	query := `SELECT ` + patientCols + ` FROM patients WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM patients WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.DoctorID != nil {
		query += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		args = append(args, *filter.DoctorID)
		idx++
	}
	if filter.Name != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		countQuery += fmt.Sprintf(` AND name ILIKE $%d`, idx)
		args = append(args, "%"+filter.Name+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) CountByDoctor(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT doctor_id, COUNT(*) FROM patients GROUP BY doctor_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var doctorID uuid.UUID
		var n int
		if err := rows.Scan(&doctorID, &n); err != nil {
			return nil, err
		}
		counts[doctorID] = n
	}
	return counts, rows.Err()
}
