package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	transactions map[uuid.UUID]*Transaction
}

func newMockRepo() *mockRepo {
	return &mockRepo{transactions: make(map[uuid.UUID]*Transaction)}
}

func (m *mockRepo) Create(_ context.Context, t *Transaction) error {
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, t *Transaction) error {
	if _, ok := m.transactions[t.ID]; !ok {
		return ErrNotFound
	}
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]*Transaction, int, error) {
	var out []*Transaction
	for _, t := range m.transactions {
		if filter.DoctorID != nil && t.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByRelatedAppointment(_ context.Context, appointmentID uuid.UUID) ([]*Transaction, error) {
	var out []*Transaction
	for _, t := range m.transactions {
		if t.RelatedAppointmentID != nil && *t.RelatedAppointmentID == appointmentID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) DeleteByRelatedAppointment(_ context.Context, appointmentID uuid.UUID) (int, error) {
	n := 0
	for id, t := range m.transactions {
		if t.RelatedAppointmentID != nil && *t.RelatedAppointmentID == appointmentID {
			delete(m.transactions, id)
			n++
		}
	}
	return n, nil
}

func (m *mockRepo) SumByTypeInRange(_ context.Context, doctorID *uuid.UUID, txType, dateFrom, dateTo string) (float64, error) {
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

func testTransaction() *Transaction {
	return &Transaction{
		DoctorID:    uuid.New(),
		Type:        TypeIncome,
		Category:    "Consulta",
		Description: "Consulta: Mateo González",
		Amount:      800,
		Date:        "2024-03-15",
	}
}

func TestCreateTransaction(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	tx := testTransaction()
	if err := svc.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if _, err := repo.GetByID(context.Background(), tx.ID); err != nil {
		t.Fatalf("transaction not stored: %v", err)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	tests := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"missing doctor", func(tx *Transaction) { tx.DoctorID = uuid.Nil }},
		{"invalid type", func(tx *Transaction) { tx.Type = "REFUND" }},
		{"missing category", func(tx *Transaction) { tx.Category = "" }},
		{"zero amount", func(tx *Transaction) { tx.Amount = 0 }},
		{"negative amount", func(tx *Transaction) { tx.Amount = -50 }},
		{"bad date", func(tx *Transaction) { tx.Date = "15/03/2024" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := testTransaction()
			tt.mutate(tx)
			if err := svc.CreateTransaction(context.Background(), tx); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	tx := testTransaction()
	tx.ID = uuid.New()
	if err := svc.UpdateTransaction(context.Background(), tx); err == nil {
		t.Fatal("expected error for unknown transaction")
	}
}

func TestDeleteByRelatedAppointment(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	apptID := uuid.New()
	for i := 0; i < 2; i++ {
		tx := testTransaction()
		tx.RelatedAppointmentID = &apptID
		if err := svc.CreateTransaction(context.Background(), tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	orphan := testTransaction()
	if err := svc.CreateTransaction(context.Background(), orphan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := repo.DeleteByRelatedAppointment(context.Background(), apptID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("expected unrelated transaction to survive, got %d rows", len(repo.transactions))
	}
}
