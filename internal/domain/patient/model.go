package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/domain/growth"
)

// GrowthRecord is one dated weight/height reading. Date uses YYYY-MM-DD;
// the history column stores records sorted ascending by date. Head
// circumference is recorded when measured but not charted.
type GrowthRecord struct {
	Date              string   `json:"date"`
	Weight            float64  `json:"weight"`
	Height            float64  `json:"height"`
	HeadCircumference *float64 `json:"headCircumference,omitempty"`
}

// Patient maps to the patients table.
type Patient struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	DoctorID      uuid.UUID      `db:"doctor_id" json:"doctor_id"`
	Name          string         `db:"name" json:"name"`
	BirthDate     time.Time      `db:"birth_date" json:"birth_date"`
	Gender        string         `db:"gender" json:"gender"`
	ParentName    string         `db:"parent_name" json:"parent_name"`
	ParentPhone   string         `db:"parent_phone" json:"parent_phone"`
	Email         *string        `db:"email" json:"email,omitempty"`
	Allergies     []string       `db:"allergies" json:"allergies"`
	BloodType     *string        `db:"blood_type" json:"blood_type,omitempty"`
	Notes         *string        `db:"notes" json:"notes,omitempty"`
	GrowthHistory []GrowthRecord `db:"growth_history" json:"growth_history"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// OwnedBy reports the doctor the record belongs to for scope filtering.
func (p Patient) OwnedBy() uuid.UUID { return p.DoctorID }

// Measurements converts the stored history for the growth engine.
func (p *Patient) Measurements() []growth.Measurement {
	out := make([]growth.Measurement, len(p.GrowthHistory))
	for i, r := range p.GrowthHistory {
		out[i] = growth.Measurement{Date: r.Date, Weight: r.Weight, Height: r.Height}
	}
	return out
}
