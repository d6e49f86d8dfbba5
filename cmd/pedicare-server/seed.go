package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pedicare/pedicare/internal/domain/growth"
	"github.com/pedicare/pedicare/internal/domain/identity"
	"github.com/pedicare/pedicare/internal/domain/ledger"
	"github.com/pedicare/pedicare/internal/domain/patient"
	"github.com/pedicare/pedicare/internal/domain/scheduling"
)

// seed loads a small demo practice: an admin, two doctors, one patient
// with growth history, and a completed consultation whose ledger entry
// is created through the synchronizer rather than inserted directly.
func seed(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	userRepo := identity.NewUserRepoPG(pool)
	clinicRepo := identity.NewClinicRepoPG(pool)
	patientRepo := patient.NewRepoPG(pool)
	apptRepo := scheduling.NewRepoPG(pool)
	txRepo := ledger.NewRepoPG(pool)

	identitySvc := identity.NewService(userRepo, clinicRepo)
	patientSvc := patient.NewService(patientRepo, growth.LinearModel{})
	schedSvc := scheduling.NewService(apptRepo, txRepo, patientSvc)

	admin := &identity.User{
		Name:  "Administración",
		Email: "admin@pedicare.mx",
		Role:  "admin",
	}
	if err := identitySvc.CreateUser(ctx, admin, "admin123"); err != nil {
		return err
	}

	pediatrics := "Pediatría"
	neonatology := "Neonatología"
	docA := &identity.User{
		Name:      "Dra. Ana López",
		Email:     "ana.lopez@pedicare.mx",
		Role:      "doctor",
		Specialty: &pediatrics,
	}
	if err := identitySvc.CreateUser(ctx, docA, "doctor123"); err != nil {
		return err
	}
	docB := &identity.User{
		Name:      "Dr. Carlos Méndez",
		Email:     "carlos.mendez@pedicare.mx",
		Role:      "doctor",
		Specialty: &neonatology,
	}
	if err := identitySvc.CreateUser(ctx, docB, "doctor123"); err != nil {
		return err
	}

	clinic := &identity.ClinicInfo{
		Name:    "Clínica Pediátrica PediCare",
		Address: "Av. Reforma 123, Ciudad de México",
		Phone:   "+52 55 1234 5678",
		Email:   "contacto@pedicare.mx",
	}
	if err := identitySvc.SaveClinicInfo(ctx, clinic); err != nil {
		return err
	}

	mateo := &patient.Patient{
		DoctorID:    docA.ID,
		Name:        "Mateo González",
		BirthDate:   time.Date(2021, 5, 15, 0, 0, 0, 0, time.UTC),
		Gender:      "M",
		ParentName:  "Laura González",
		ParentPhone: "+52 55 8765 4321",
		Allergies:   []string{"penicilina"},
		GrowthHistory: []patient.GrowthRecord{
			{Date: "2021-11-15", Weight: 7.2, Height: 68},
			{Date: "2022-05-15", Weight: 9.6, Height: 75.5},
		},
	}
	if err := patientSvc.CreatePatient(ctx, mateo); err != nil {
		return err
	}

	appt := &scheduling.Appointment{
		DoctorID:  docA.ID,
		PatientID: mateo.ID,
		DateTime:  time.Now().UTC().Truncate(time.Hour),
		Reason:    "Control de niño sano",
		Status:    scheduling.StatusScheduled,
		Cost:      800,
	}
	if err := schedSvc.CreateAppointment(ctx, appt); err != nil {
		return err
	}

	logger.Info().
		Str("admin", admin.Email).
		Str("patient", mateo.Name).
		Msg("demo data loaded")
	return nil
}
