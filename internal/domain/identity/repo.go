package identity

import (
	"context"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	ListByRole(ctx context.Context, role string) ([]*User, error)
	Count(ctx context.Context) (int, error)
}

type ClinicRepository interface {
	Get(ctx context.Context) (*ClinicInfo, error)
	Put(ctx context.Context, info *ClinicInfo) error
}
