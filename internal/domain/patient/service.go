package patient

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/domain/growth"
)

var ErrNotFound = errors.New("patient not found")

var validGenders = map[string]bool{"M": true, "F": true}

type Service struct {
	patients Repository
	model    growth.ReferenceModel
}

func NewService(patients Repository, model growth.ReferenceModel) *Service {
	return &Service{patients: patients, model: model}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.GrowthHistory == nil {
		p.GrowthHistory = []GrowthRecord{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	sortHistory(p.GrowthHistory)
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	sortHistory(p.GrowthHistory)
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, filter, limit, offset)
}

// AppendGrowthRecord adds a reading to the patient's history, keeping it
// sorted ascending by date. Readings sharing a date keep insertion
// order, so a later correction lands after the value it corrects.
func (s *Service) AppendGrowthRecord(ctx context.Context, patientID uuid.UUID, rec GrowthRecord) error {
	if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
		return fmt.Errorf("growth record date must use YYYY-MM-DD: %w", err)
	}
	if rec.Weight <= 0 || rec.Height <= 0 {
		return fmt.Errorf("growth record weight and height must be positive")
	}
	if rec.HeadCircumference != nil && *rec.HeadCircumference <= 0 {
		return fmt.Errorf("growth record head circumference must be positive")
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return ErrNotFound
	}

	p.GrowthHistory = append(p.GrowthHistory, rec)
	sortHistory(p.GrowthHistory)
	return s.patients.Update(ctx, p)
}

// Analysis runs the growth engine over the stored history. A patient
// with no readings yields (nil, nil).
func (s *Service) Analysis(ctx context.Context, patientID uuid.UUID) (*growth.Assessment, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, ErrNotFound
	}
	return growth.Analyze(p.BirthDate, p.Gender, p.Measurements(), s.model)
}

func validate(p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("birth_date is required")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	return nil
}

func sortHistory(history []GrowthRecord) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})
}
