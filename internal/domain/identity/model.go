package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. Admins manage the practice; doctors own
// patients, appointments and ledger entries.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Role         string     `db:"role" json:"role"`
	Specialty    *string    `db:"specialty" json:"specialty,omitempty"`
	LicenseID    *string    `db:"license_id" json:"license_id,omitempty"`
	BirthDate    *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Photo        *string    `db:"photo" json:"photo,omitempty"`
	PasswordHash string     `db:"password_hash" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ClinicInfo is the single row of practice settings shown on printed
// documents and the login screen.
type ClinicInfo struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	Logo      *string   `db:"logo" json:"logo,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
