package scheduling

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/domain/ledger"
	"github.com/pedicare/pedicare/internal/domain/patient"
)

// SyncPlan is the set of cascaded writes that keep the ledger and the
// patient's growth history in lockstep with an appointment mutation.
// Planning is pure; the Service loads state, plans, then applies the
// plan through the repositories in order.
type SyncPlan struct {
	CreateTransaction        *ledger.Transaction
	UpdateTransaction        *ledger.Transaction
	DeleteLinkedTransactions bool
	GrowthAppend             *GrowthAppend
}

// GrowthAppend records a measurement taken during a visit against the
// owning patient's history.
type GrowthAppend struct {
	PatientID uuid.UUID
	Record    patient.GrowthRecord
}

func consultationDescription(patientName string) string {
	return "Consulta: " + patientName
}

func growthAppendFor(appt *Appointment) *GrowthAppend {
	if !appt.HasMeasurements() {
		return nil
	}
	return &GrowthAppend{
		PatientID: appt.PatientID,
		Record: patient.GrowthRecord{
			Date:              appt.DateOnly(),
			Weight:            *appt.Weight,
			Height:            *appt.Height,
			HeadCircumference: appt.HeadCircumference,
		},
	}
}

// PlanCreate derives the cascade for a new appointment: exactly one
// income transaction linked back to it, plus a growth append when the
// visit captured measurements.
func PlanCreate(appt *Appointment) (SyncPlan, error) {
	if appt.PatientID == uuid.Nil {
		return SyncPlan{}, fmt.Errorf("appointment has no patient reference")
	}
	if appt.Cost <= 0 {
		return SyncPlan{}, fmt.Errorf("appointment has no cost")
	}
	apptID := appt.ID
	return SyncPlan{
		CreateTransaction: &ledger.Transaction{
			DoctorID:             appt.DoctorID,
			Type:                 ledger.TypeIncome,
			Category:             "Consulta",
			Description:          consultationDescription(appt.PatientName),
			Amount:               appt.Cost,
			Date:                 appt.DateOnly(),
			RelatedAppointmentID: &apptID,
		},
		GrowthAppend: growthAppendFor(appt),
	}, nil
}

// PlanUpdate derives the cascade for an edited appointment. The linked
// transaction, when present, gets only its amount and description
// refreshed; identity, date and category stay as booked. No linked
// transaction is a silent no-op on the ledger, a known gap kept from
// the original flow. More than one linked transaction is prior
// corruption and is surfaced.
func PlanUpdate(appt *Appointment, linked []*ledger.Transaction) (SyncPlan, error) {
	plan := SyncPlan{GrowthAppend: growthAppendFor(appt)}

	switch len(linked) {
	case 0:
	case 1:
		tx := *linked[0]
		tx.Amount = appt.Cost
		tx.Description = consultationDescription(appt.PatientName)
		plan.UpdateTransaction = &tx
	default:
		return SyncPlan{}, ErrAmbiguousLedgerLink
	}
	return plan, nil
}

// PlanDelete derives the cascade for a removed appointment: every
// transaction still pointing at it is swept. Measurements already
// appended to the growth history are not retracted.
func PlanDelete(appt *Appointment) SyncPlan {
	return SyncPlan{DeleteLinkedTransactions: true}
}
