package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types. Income rows linked to an appointment carry the
// appointment id in RelatedAppointmentID so the two stay in lockstep.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

type Transaction struct {
	ID                   uuid.UUID  `json:"id"`
	DoctorID             uuid.UUID  `json:"doctorId"`
	Type                 string     `json:"type"`
	Category             string     `json:"category"`
	Description          string     `json:"description"`
	Amount               float64    `json:"amount"`
	Date                 string     `json:"date"`
	RelatedAppointmentID *uuid.UUID `json:"relatedAppointmentId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// OwnedBy reports the doctor whose books this entry belongs to.
func (t *Transaction) OwnedBy() uuid.UUID { return t.DoctorID }
