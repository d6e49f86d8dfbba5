package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pedicare/pedicare/internal/domain/ledger"
)

func testAppointment() *Appointment {
	return &Appointment{
		ID:          uuid.New(),
		DoctorID:    uuid.New(),
		PatientID:   uuid.New(),
		PatientName: "Mateo González",
		DateTime:    time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Reason:      "Control de niño sano",
		Status:      StatusScheduled,
		Cost:        800,
	}
}

func TestPlanCreate(t *testing.T) {
	appt := testAppointment()

	plan, err := PlanCreate(appt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tx := plan.CreateTransaction
	if tx == nil {
		t.Fatal("expected a transaction to create")
	}
	if tx.Type != ledger.TypeIncome {
		t.Errorf("expected INCOME, got %s", tx.Type)
	}
	if tx.Category != "Consulta" {
		t.Errorf("expected category Consulta, got %s", tx.Category)
	}
	if tx.Description != "Consulta: Mateo González" {
		t.Errorf("unexpected description %q", tx.Description)
	}
	if tx.Amount != 800 {
		t.Errorf("expected amount 800, got %v", tx.Amount)
	}
	if tx.Date != "2024-03-15" {
		t.Errorf("expected date-only 2024-03-15, got %s", tx.Date)
	}
	if tx.RelatedAppointmentID == nil || *tx.RelatedAppointmentID != appt.ID {
		t.Error("expected transaction linked back to appointment")
	}
	if tx.DoctorID != appt.DoctorID {
		t.Error("expected transaction on the same doctor's books")
	}
	if plan.GrowthAppend != nil {
		t.Error("expected no growth append without measurements")
	}
}

func TestPlanCreate_InputContract(t *testing.T) {
	noPatient := testAppointment()
	noPatient.PatientID = uuid.Nil
	if _, err := PlanCreate(noPatient); err == nil {
		t.Fatal("expected error for missing patient reference")
	}

	noCost := testAppointment()
	noCost.Cost = 0
	if _, err := PlanCreate(noCost); err == nil {
		t.Fatal("expected error for missing cost")
	}
}

func TestPlanCreate_WithMeasurements(t *testing.T) {
	appt := testAppointment()
	w, h, hc := 7.8, 68.0, 44.5
	appt.Weight, appt.Height, appt.HeadCircumference = &w, &h, &hc

	plan, err := PlanCreate(appt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ga := plan.GrowthAppend
	if ga == nil {
		t.Fatal("expected growth append")
	}
	if ga.PatientID != appt.PatientID {
		t.Error("growth append targets wrong patient")
	}
	if ga.Record.Date != "2024-03-15" || ga.Record.Weight != 7.8 || ga.Record.Height != 68 {
		t.Errorf("unexpected growth record %+v", ga.Record)
	}
	if ga.Record.HeadCircumference == nil || *ga.Record.HeadCircumference != 44.5 {
		t.Errorf("expected head circumference 44.5 on the growth record, got %+v", ga.Record)
	}
}

func TestPlanCreate_HeadCircumferenceAloneDoesNotPropagate(t *testing.T) {
	appt := testAppointment()
	hc := 44.5
	appt.HeadCircumference = &hc

	plan, err := PlanCreate(appt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.GrowthAppend != nil {
		t.Fatal("head circumference without weight and height must not feed the history")
	}
}

func TestPlanCreate_WeightAloneDoesNotPropagate(t *testing.T) {
	appt := testAppointment()
	w := 7.8
	appt.Weight = &w

	plan, err := PlanCreate(appt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.GrowthAppend != nil {
		t.Error("expected no growth append with only weight recorded")
	}
}

func TestPlanUpdate_RefreshesAmountAndDescriptionOnly(t *testing.T) {
	appt := testAppointment()
	appt.Cost = 950
	appt.PatientName = "Valentina Ruiz"

	apptID := appt.ID
	linked := &ledger.Transaction{
		ID:                   uuid.New(),
		DoctorID:             appt.DoctorID,
		Type:                 ledger.TypeIncome,
		Category:             "Consulta",
		Description:          "Consulta: Mateo González",
		Amount:               800,
		Date:                 "2024-03-01",
		RelatedAppointmentID: &apptID,
	}

	plan, err := PlanUpdate(appt, []*ledger.Transaction{linked})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tx := plan.UpdateTransaction
	if tx == nil {
		t.Fatal("expected a transaction update")
	}
	if tx.Amount != 950 {
		t.Errorf("expected amount refreshed to 950, got %v", tx.Amount)
	}
	if tx.Description != "Consulta: Valentina Ruiz" {
		t.Errorf("expected description refreshed, got %q", tx.Description)
	}
	if tx.ID != linked.ID {
		t.Error("transaction identity must not change")
	}
	if tx.Date != "2024-03-01" {
		t.Error("transaction date must stay as booked")
	}
	if tx.Category != "Consulta" {
		t.Error("transaction category must not change")
	}
	if linked.Amount != 800 {
		t.Error("plan must not mutate its input")
	}
}

func TestPlanUpdate_NoLinkedTransactionIsNoOp(t *testing.T) {
	// Known gap kept from the original flow: an appointment without a
	// linked ledger row is updated without touching the ledger.
	plan, err := PlanUpdate(testAppointment(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.UpdateTransaction != nil || plan.CreateTransaction != nil {
		t.Error("expected no ledger writes for unlinked appointment")
	}
}

func TestPlanUpdate_AmbiguousLink(t *testing.T) {
	appt := testAppointment()
	apptID := appt.ID
	two := []*ledger.Transaction{
		{ID: uuid.New(), RelatedAppointmentID: &apptID},
		{ID: uuid.New(), RelatedAppointmentID: &apptID},
	}
	if _, err := PlanUpdate(appt, two); !errors.Is(err, ErrAmbiguousLedgerLink) {
		t.Fatalf("expected ErrAmbiguousLedgerLink, got %v", err)
	}
}

func TestPlanDelete(t *testing.T) {
	plan := PlanDelete(testAppointment())
	if !plan.DeleteLinkedTransactions {
		t.Error("expected linked transaction sweep")
	}
	if plan.GrowthAppend != nil {
		t.Error("deletion must not touch growth history")
	}
}
