package patient

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows patient listings. A nil DoctorID means all doctors.
type ListFilter struct {
	DoctorID *uuid.UUID
	Name     string
}

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error)
	CountByDoctor(ctx context.Context) (map[uuid.UUID]int, error)
}
