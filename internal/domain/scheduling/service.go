package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/domain/ledger"
	"github.com/pedicare/pedicare/internal/domain/patient"
)

var validStatuses = map[string]bool{
	StatusScheduled:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// LedgerStore is the slice of the ledger repository the synchronizer
// drives.
type LedgerStore interface {
	Create(ctx context.Context, t *ledger.Transaction) error
	Update(ctx context.Context, t *ledger.Transaction) error
	ListByRelatedAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*ledger.Transaction, error)
	DeleteByRelatedAppointment(ctx context.Context, appointmentID uuid.UUID) (int, error)
}

// PatientStore is the slice of the patient service the synchronizer
// drives. Satisfied by *patient.Service.
type PatientStore interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	AppendGrowthRecord(ctx context.Context, patientID uuid.UUID, rec patient.GrowthRecord) error
}

type Service struct {
	appointments Repository
	transactions LedgerStore
	patients     PatientStore
}

func NewService(appointments Repository, transactions LedgerStore, patients PatientStore) *Service {
	return &Service{appointments: appointments, transactions: transactions, patients: patients}
}

func (s *Service) validate(a *Appointment) error {
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.DateTime.IsZero() {
		return fmt.Errorf("date_time is required")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status %q", a.Status)
	}
	if a.Cost <= 0 {
		return fmt.Errorf("cost must be positive")
	}
	if a.Weight != nil && *a.Weight <= 0 {
		return fmt.Errorf("weight must be positive")
	}
	if a.Height != nil && *a.Height <= 0 {
		return fmt.Errorf("height must be positive")
	}
	if a.HeadCircumference != nil && *a.HeadCircumference <= 0 {
		return fmt.Errorf("head circumference must be positive")
	}
	return nil
}

// CreateAppointment persists the appointment, then applies the derived
// cascade: a single income transaction linked to it, and a growth
// append when measurements were taken. A failure after the appointment
// write comes back as a PartialCascadeError since the appointment is
// already committed.
func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}

	// Snapshot the patient's name at booking time. The snapshot is
	// not refreshed when the patient is later renamed.
	p, err := s.patients.GetPatient(ctx, a.PatientID)
	if err != nil {
		return fmt.Errorf("resolving patient: %w", err)
	}
	a.PatientName = p.Name

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	plan, err := PlanCreate(a)
	if err != nil {
		return err
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return err
	}
	return s.apply(ctx, a.ID, plan)
}

// UpdateAppointment persists the edit unconditionally, then refreshes
// the linked transaction's amount and description. A missing linked
// transaction leaves the ledger untouched. More than one linked
// transaction surfaces ErrAmbiguousLedgerLink.
func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	existing, err := s.appointments.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}

	p, err := s.patients.GetPatient(ctx, a.PatientID)
	if err != nil {
		return fmt.Errorf("resolving patient: %w", err)
	}
	a.PatientName = p.Name
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()

	if err := s.appointments.Update(ctx, a); err != nil {
		return err
	}

	linked, err := s.transactions.ListByRelatedAppointment(ctx, a.ID)
	if err != nil {
		return &PartialCascadeError{Step: "ledger lookup", Err: err}
	}
	plan, err := PlanUpdate(a, linked)
	if err != nil {
		return err
	}
	return s.apply(ctx, a.ID, plan)
}

// DeleteAppointment removes the appointment, then sweeps every
// transaction still linked to it. Growth records already appended stay.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	return s.apply(ctx, id, PlanDelete(a))
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, filter, limit, offset)
}

// apply runs a plan's cascaded writes in order. The first failure
// stops the sequence; there is no rollback of the primary write.
func (s *Service) apply(ctx context.Context, appointmentID uuid.UUID, plan SyncPlan) error {
	if plan.CreateTransaction != nil {
		if plan.CreateTransaction.ID == uuid.Nil {
			plan.CreateTransaction.ID = uuid.New()
		}
		if err := s.transactions.Create(ctx, plan.CreateTransaction); err != nil {
			return &PartialCascadeError{Step: "transaction create", Err: err}
		}
	}
	if plan.UpdateTransaction != nil {
		if err := s.transactions.Update(ctx, plan.UpdateTransaction); err != nil {
			return &PartialCascadeError{Step: "transaction update", Err: err}
		}
	}
	if plan.DeleteLinkedTransactions {
		if _, err := s.transactions.DeleteByRelatedAppointment(ctx, appointmentID); err != nil {
			return &PartialCascadeError{Step: "transaction sweep", Err: err}
		}
	}
	if plan.GrowthAppend != nil {
		if err := s.patients.AppendGrowthRecord(ctx, plan.GrowthAppend.PatientID, plan.GrowthAppend.Record); err != nil {
			return &PartialCascadeError{Step: "growth append", Err: err}
		}
	}
	return nil
}
