package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/domain/identity"
	"github.com/pedicare/pedicare/internal/domain/ledger"
	"github.com/pedicare/pedicare/internal/domain/scheduling"
)

type mockAppointments struct {
	appointments []*scheduling.Appointment
}

func (m *mockAppointments) List(_ context.Context, filter scheduling.ListFilter, limit, offset int) ([]*scheduling.Appointment, int, error) {
	var out []*scheduling.Appointment
	for _, a := range m.appointments {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		date := a.DateTime.Format("2006-01-02")
		if filter.DateFrom != "" && date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && date > filter.DateTo {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (m *mockAppointments) CountByDoctor(_ context.Context) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, a := range m.appointments {
		counts[a.DoctorID]++
	}
	return counts, nil
}

type mockRevenue struct {
	transactions []*ledger.Transaction
}

func (m *mockRevenue) SumByTypeInRange(_ context.Context, doctorID *uuid.UUID, txType, dateFrom, dateTo string) (float64, error) {
	var sum float64
	for _, t := range m.transactions {
		if doctorID != nil && t.DoctorID != *doctorID {
			continue
		}
		if t.Type == txType && t.Date >= dateFrom && t.Date <= dateTo {
			sum += t.Amount
		}
	}
	return sum, nil
}

type mockPatientCounts map[uuid.UUID]int

func (m mockPatientCounts) CountByDoctor(_ context.Context) (map[uuid.UUID]int, error) {
	return m, nil
}

type mockDoctors []*identity.User

func (m mockDoctors) ListDoctors(_ context.Context) ([]*identity.User, error) {
	return m, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestTodayAppointments(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	appts := &mockAppointments{appointments: []*scheduling.Appointment{
		{ID: uuid.New(), DoctorID: docA, DateTime: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), DoctorID: docB, DateTime: time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), DoctorID: docA, DateTime: time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)},
	}}
	svc := NewService(appts, &mockRevenue{}, mockPatientCounts{}, mockDoctors{})
	svc.now = fixedNow

	all, err := svc.TodayAppointments(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 appointments today, got %d", len(all))
	}

	mine, err := svc.TodayAppointments(context.Background(), &docA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 appointment for doctor, got %d", len(mine))
	}
}

func TestMonthlyRevenue(t *testing.T) {
	revenue := &mockRevenue{transactions: []*ledger.Transaction{
		{Type: ledger.TypeIncome, Amount: 800, Date: "2024-03-01"},
		{Type: ledger.TypeIncome, Amount: 950, Date: "2024-03-31"},
		{Type: ledger.TypeIncome, Amount: 500, Date: "2024-02-29"},
		{Type: ledger.TypeExpense, Amount: 300, Date: "2024-03-10"},
	}}
	svc := NewService(&mockAppointments{}, revenue, mockPatientCounts{}, mockDoctors{})
	svc.now = fixedNow

	sum, err := svc.MonthlyRevenue(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 1750 {
		t.Fatalf("expected 1750 for current-month income, got %v", sum)
	}
}

func TestMonthlyRevenue_ScopedToDoctor(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	revenue := &mockRevenue{transactions: []*ledger.Transaction{
		{DoctorID: docA, Type: ledger.TypeIncome, Amount: 800, Date: "2024-03-15"},
		{DoctorID: docB, Type: ledger.TypeIncome, Amount: 5000, Date: "2024-03-20"},
	}}
	svc := NewService(&mockAppointments{}, revenue, mockPatientCounts{}, mockDoctors{})
	svc.now = fixedNow

	mine, err := svc.MonthlyRevenue(context.Background(), &docA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mine != 800 {
		t.Fatalf("expected only the doctor's own income (800), got %v", mine)
	}

	all, err := svc.MonthlyRevenue(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all != 5800 {
		t.Fatalf("expected practice-wide income 5800, got %v", all)
	}
}

func TestDoctorStats(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	spec := "Pediatría"
	doctors := mockDoctors{
		{ID: docA, Name: "Dra. Ana López", Specialty: &spec},
		{ID: docB, Name: "Dr. Carlos Méndez"},
	}
	appts := &mockAppointments{appointments: []*scheduling.Appointment{
		{ID: uuid.New(), DoctorID: docA, DateTime: fixedNow()},
		{ID: uuid.New(), DoctorID: docA, DateTime: fixedNow()},
	}}
	patients := mockPatientCounts{docA: 3}

	svc := NewService(appts, &mockRevenue{}, patients, doctors)
	svc.now = fixedNow

	stats, err := svc.DoctorStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}
	if stats[0].Patients != 3 || stats[0].Appointments != 2 {
		t.Errorf("unexpected counts for first doctor: %+v", stats[0])
	}
	// Doctors without records still get a zeroed row.
	if stats[1].Patients != 0 || stats[1].Appointments != 0 {
		t.Errorf("expected zero counts for second doctor: %+v", stats[1])
	}
}

func TestBuildDashboard_AdminAndDoctorViews(t *testing.T) {
	docA, docB := uuid.New(), uuid.New()
	doctors := mockDoctors{{ID: docA, Name: "Dra. Ana López"}, {ID: docB, Name: "Dr. Carlos Méndez"}}
	appts := &mockAppointments{appointments: []*scheduling.Appointment{
		{ID: uuid.New(), DoctorID: docA, DateTime: fixedNow()},
	}}
	revenue := &mockRevenue{transactions: []*ledger.Transaction{
		{DoctorID: docA, Type: ledger.TypeIncome, Amount: 800, Date: "2024-03-15"},
		{DoctorID: docB, Type: ledger.TypeIncome, Amount: 5000, Date: "2024-03-20"},
	}}

	svc := NewService(appts, revenue, mockPatientCounts{docA: 1}, doctors)
	svc.now = fixedNow

	admin, err := svc.BuildDashboard(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.MonthlyRevenue != 5800 || admin.TotalDoctors != 2 || len(admin.DoctorStats) != 2 {
		t.Errorf("unexpected admin dashboard: %+v", admin)
	}

	doctor, err := svc.BuildDashboard(context.Background(), &docA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doctor.MonthlyRevenue != 800 {
		t.Errorf("doctor view must only show the doctor's own revenue, got %v", doctor.MonthlyRevenue)
	}
	if doctor.DoctorStats != nil {
		t.Error("doctor view must not include the per-doctor table")
	}
	if len(doctor.TodayAppointments) != 1 {
		t.Errorf("expected the doctor's own schedule, got %d items", len(doctor.TodayAppointments))
	}
}
