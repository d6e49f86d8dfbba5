package ledger

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

const transactionCols = `id, doctor_id, type, category, description, amount, date,
	related_appointment_id, created_at, updated_at`

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.DoctorID, &t.Type, &t.Category, &t.Description, &t.Amount,
		&t.Date, &t.RelatedAppointmentID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO transactions (id, doctor_id, type, category, description, amount, date, related_appointment_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		t.ID, t.DoctorID, t.Type, t.Category, t.Description, t.Amount, t.Date, t.RelatedAppointmentID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return scanTransaction(r.conn(ctx).QueryRow(ctx, `SELECT `+transactionCols+` FROM transactions WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, t *Transaction) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE transactions SET doctor_id=$2, type=$3, category=$4, description=$5,
			amount=$6, date=$7, related_appointment_id=$8, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.DoctorID, t.Type, t.Category, t.Description, t.Amount, t.Date, t.RelatedAppointmentID)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Transaction, int, error) {
	query := `SELECT ` + transactionCols + ` FROM transactions WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM transactions WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.DoctorID != nil {
		query += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND doctor_id = $%d`, idx)
		args = append(args, *filter.DoctorID)
		idx++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(` AND type = $%d`, idx)
		countQuery += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, filter.Type)
		idx++
	}
	if filter.DateFrom != "" {
		query += fmt.Sprintf(` AND date >= $%d`, idx)
		countQuery += fmt.Sprintf(` AND date >= $%d`, idx)
		args = append(args, filter.DateFrom)
		idx++
	}
	if filter.DateTo != "" {
		query += fmt.Sprintf(` AND date <= $%d`, idx)
		countQuery += fmt.Sprintf(` AND date <= $%d`, idx)
		args = append(args, filter.DateTo)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListByRelatedAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*Transaction, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+transactionCols+` FROM transactions WHERE related_appointment_id = $1 ORDER BY created_at`,
		appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *repoPG) DeleteByRelatedAppointment(ctx context.Context, appointmentID uuid.UUID) (int, error) {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM transactions WHERE related_appointment_id = $1`, appointmentID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *repoPG) SumByTypeInRange(ctx context.Context, doctorID *uuid.UUID, txType, dateFrom, dateTo string) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1 AND date >= $2 AND date <= $3`
	args := []interface{}{txType, dateFrom, dateTo}
	if doctorID != nil {
		query += ` AND doctor_id = $4`
		args = append(args, *doctorID)
	}
	var sum float64
	err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&sum)
	return sum, err
}
