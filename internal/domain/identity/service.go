package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/platform/auth"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var validRoles = map[string]bool{
	auth.RoleAdmin:  true,
	auth.RoleDoctor: true,
}

type Service struct {
	users  UserRepository
	clinic ClinicRepository
}

func NewService(users UserRepository, clinic ClinicRepository) *Service {
	return &Service{users: users, clinic: clinic}
}

// -- Users --

func (s *Service) CreateUser(ctx context.Context, u *User, password string) error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if u.Role == "" {
		u.Role = auth.RoleDoctor
	}
	if !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.Email = strings.ToLower(u.Email)
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser replaces the user's profile. The password changes only when
// newPassword is non-empty.
func (s *Service) UpdateUser(ctx context.Context, u *User, newPassword string) error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if u.Role != "" && !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}

	existing, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return ErrNotFound
	}

	u.PasswordHash = existing.PasswordHash
	if newPassword != "" {
		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if u.Email == "" {
		u.Email = existing.Email
	}
	u.Email = strings.ToLower(u.Email)
	return s.users.Update(ctx, u)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*User, error) {
	return s.users.ListByRole(ctx, auth.RoleDoctor)
}

// Authenticate verifies an email/password pair. Unknown emails and bad
// passwords both report ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// -- Clinic info --

func (s *Service) GetClinicInfo(ctx context.Context) (*ClinicInfo, error) {
	return s.clinic.Get(ctx)
}

// SaveClinicInfo replaces the singleton settings row, creating it on
// first save.
func (s *Service) SaveClinicInfo(ctx context.Context, info *ClinicInfo) error {
	if info.Name == "" {
		return fmt.Errorf("clinic name is required")
	}
	if existing, err := s.clinic.Get(ctx); err == nil {
		info.ID = existing.ID
	}
	return s.clinic.Put(ctx, info)
}
