package scheduling

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

const appointmentCols = `id, doctor_id, patient_id, patient_name, date_time, reason, status, cost,
	symptoms, physical_exam, diagnosis, treatment, weight, height, head_circumference, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.PatientName, &a.DateTime, &a.Reason,
		&a.Status, &a.Cost, &a.Symptoms, &a.PhysicalExam, &a.Diagnosis, &a.Treatment,
		&a.Weight, &a.Height, &a.HeadCircumference, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, patient_name, date_time, reason, status, cost,
			symptoms, physical_exam, diagnosis, treatment, weight, height, head_circumference)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		a.ID, a.DoctorID, a.PatientID, a.PatientName, a.DateTime, a.Reason, a.Status, a.Cost,
		a.Symptoms, a.PhysicalExam, a.Diagnosis, a.Treatment, a.Weight, a.Height, a.HeadCircumference)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET doctor_id=$2, patient_id=$3, patient_name=$4, date_time=$5, reason=$6,
			status=$7, cost=$8, symptoms=$9, physical_exam=$10, diagnosis=$11, treatment=$12,
			weight=$13, height=$14, head_circumference=$15, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.DoctorID, a.PatientID, a.PatientName, a.DateTime, a.Reason, a.Status, a.Cost,
		a.Symptoms, a.PhysicalExam, a.Diagnosis, a.Treatment, a.Weight, a.Height, a.HeadCircumference)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + appointmentCols + ` FROM appointments WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointments WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.DoctorID != nil {
		query += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		args = append(args, *filter.DoctorID)
		idx++
	}
	if filter.PatientID != nil {
		query += fmt.Sprintf(` AND patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, *filter.PatientID)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.DateFrom != "" {
		query += fmt.Sprintf(` AND date_time::date >= $%d`, idx)
		countQuery += fmt.Sprintf(` AND date_time::date >= $%d`, idx)
		args = append(args, filter.DateFrom)
		idx++
	}
	if filter.DateTo != "" {
		query += fmt.Sprintf(` AND date_time::date <= $%d`, idx)
		countQuery += fmt.Sprintf(` AND date_time::date <= $%d`, idx)
		args = append(args, filter.DateTo)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY date_time LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) CountByDoctor(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT doctor_id, COUNT(*) FROM appointments GROUP BY doctor_id`)
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
