package ledger

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows ledger listings. Zero values mean no constraint.
type ListFilter struct {
	DoctorID *uuid.UUID
	Type     string
	DateFrom string
	DateTo   string
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Transaction, int, error)
	ListByRelatedAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*Transaction, error)
	DeleteByRelatedAppointment(ctx context.Context, appointmentID uuid.UUID) (int, error)
	SumByTypeInRange(ctx context.Context, doctorID *uuid.UUID, txType, dateFrom, dateTo string) (float64, error)
}
