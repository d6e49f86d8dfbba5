package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows appointment listings. Zero values mean no
// constraint. Dates compare against the calendar date of the visit.
type ListFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Status    string
	DateFrom  string
	DateTo    string
}

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error)
	CountByDoctor(ctx context.Context) (map[uuid.UUID]int, error)
}
