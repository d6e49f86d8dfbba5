package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/domain/identity"
	"github.com/pedicare/pedicare/internal/domain/ledger"
	"github.com/pedicare/pedicare/internal/domain/scheduling"
)

// DoctorStats is one row of the per-doctor dashboard table.
type DoctorStats struct {
	DoctorID     uuid.UUID `json:"doctorId"`
	DoctorName   string    `json:"doctorName"`
	Specialty    *string   `json:"specialty,omitempty"`
	Patients     int       `json:"patients"`
	Appointments int       `json:"appointments"`
}

// Dashboard is the practice-wide summary shown on the landing view.
// Non-admin viewers get the same shape scoped to their own records.
type Dashboard struct {
	TodayAppointments []*scheduling.Appointment `json:"todayAppointments"`
	MonthlyRevenue    float64                   `json:"monthlyRevenue"`
	TotalDoctors      int                       `json:"totalDoctors"`
	DoctorStats       []DoctorStats             `json:"doctorStats,omitempty"`
}

// PatientCounter is the slice of the patient repository the dashboard
// needs.
type PatientCounter interface {
	CountByDoctor(ctx context.Context) (map[uuid.UUID]int, error)
}

// AppointmentSource lists appointments and counts them per doctor.
type AppointmentSource interface {
	List(ctx context.Context, filter scheduling.ListFilter, limit, offset int) ([]*scheduling.Appointment, int, error)
	CountByDoctor(ctx context.Context) (map[uuid.UUID]int, error)
}

// RevenueSource sums booked income over a date range, optionally
// narrowed to one doctor.
type RevenueSource interface {
	SumByTypeInRange(ctx context.Context, doctorID *uuid.UUID, txType, dateFrom, dateTo string) (float64, error)
}

// DoctorSource lists the practice's doctors.
type DoctorSource interface {
	ListDoctors(ctx context.Context) ([]*identity.User, error)
}

type Service struct {
	appointments AppointmentSource
	revenue      RevenueSource
	patients     PatientCounter
	doctors      DoctorSource
	now          func() time.Time
}

func NewService(appointments AppointmentSource, revenue RevenueSource, patients PatientCounter, doctors DoctorSource) *Service {
	return &Service{
		appointments: appointments,
		revenue:      revenue,
		patients:     patients,
		doctors:      doctors,
		now:          time.Now,
	}
}

const todayLimit = 200

// TodayAppointments returns the visits booked for the current calendar
// date, optionally narrowed to one doctor.
func (s *Service) TodayAppointments(ctx context.Context, doctorID *uuid.UUID) ([]*scheduling.Appointment, error) {
	today := s.now().UTC().Format("2006-01-02")
	filter := scheduling.ListFilter{DoctorID: doctorID, DateFrom: today, DateTo: today}
	items, _, err := s.appointments.List(ctx, filter, todayLimit, 0)
	return items, err
}

// MonthlyRevenue sums the income booked during the current calendar
// month. A nil doctorID sums across the whole practice; doctors must
// only ever see their own figure.
func (s *Service) MonthlyRevenue(ctx context.Context, doctorID *uuid.UUID) (float64, error) {
	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.revenue.SumByTypeInRange(ctx, doctorID, ledger.TypeIncome, first.Format("2006-01-02"), last.Format("2006-01-02"))
}

// DoctorStats builds the per-doctor patient and appointment counts.
// Doctors without records still appear with zero counts.
func (s *Service) DoctorStats(ctx context.Context) ([]DoctorStats, error) {
	doctors, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	patientCounts, err := s.patients.CountByDoctor(ctx)
	if err != nil {
		return nil, err
	}
	apptCounts, err := s.appointments.CountByDoctor(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]DoctorStats, 0, len(doctors))
	for _, d := range doctors {
		stats = append(stats, DoctorStats{
			DoctorID:     d.ID,
			DoctorName:   d.Name,
			Specialty:    d.Specialty,
			Patients:     patientCounts[d.ID],
			Appointments: apptCounts[d.ID],
		})
	}
	return stats, nil
}

// BuildDashboard assembles the landing-view summary. Admin viewers get
// practice-wide figures plus the per-doctor table; doctors get their
// own day's schedule and no per-doctor breakdown.
func (s *Service) BuildDashboard(ctx context.Context, doctorID *uuid.UUID) (*Dashboard, error) {
	today, err := s.TodayAppointments(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.MonthlyRevenue(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{TodayAppointments: today, MonthlyRevenue: revenue}
	if doctorID == nil {
		stats, err := s.DoctorStats(ctx)
		if err != nil {
			return nil, err
		}
		d.DoctorStats = stats
		d.TotalDoctors = len(stats)
	} else {
		d.TotalDoctors = 1
	}
	if d.TodayAppointments == nil {
		d.TodayAppointments = []*scheduling.Appointment{}
	}
	return d, nil
}
