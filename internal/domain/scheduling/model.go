package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Appointment is a visit on a doctor's calendar. PatientName is a
// snapshot taken at creation time; it is not refreshed when the
// patient record is later renamed.
type Appointment struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctorId"`
	PatientID   uuid.UUID `json:"patientId"`
	PatientName string    `json:"patientName"`
	DateTime    time.Time `json:"dateTime"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	Cost        float64   `json:"cost"`

	// Consultation notes, filled in as the visit progresses.
	Symptoms     *string `json:"symptoms,omitempty"`
	PhysicalExam *string `json:"physicalExam,omitempty"`
	Diagnosis    *string `json:"diagnosis,omitempty"`
	Treatment    *string `json:"treatment,omitempty"`

	// Measurements taken during the visit. When weight and height are
	// both present the visit feeds the patient's growth history; head
	// circumference rides along when measured.
	Weight            *float64 `json:"weight,omitempty"`
	Height            *float64 `json:"height,omitempty"`
	HeadCircumference *float64 `json:"headCircumference,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports the doctor the appointment belongs to.
func (a *Appointment) OwnedBy() uuid.UUID { return a.DoctorID }

// HasMeasurements reports whether the visit captured a complete
// weight and height pair.
func (a *Appointment) HasMeasurements() bool {
	return a.Weight != nil && a.Height != nil
}

// DateOnly returns the calendar-date part of the visit time, which is
// the date the linked ledger entry is booked under.
func (a *Appointment) DateOnly() string {
	return a.DateTime.Format("2006-01-02")
}
