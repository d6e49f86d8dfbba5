package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("transaction not found")

var validTypes = map[string]bool{TypeIncome: true, TypeExpense: true}

type Service struct {
	transactions Repository
}

func NewService(transactions Repository) *Service {
	return &Service{transactions: transactions}
}

func validate(t *Transaction) error {
	if t.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if !validTypes[t.Type] {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Category == "" {
		return fmt.Errorf("category is required")
	}
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return fmt.Errorf("invalid transaction date %q", t.Date)
	}
	return nil
}

func (s *Service) CreateTransaction(ctx context.Context, t *Transaction) error {
	if err := validate(t); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.transactions.Create(ctx, t)
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

func (s *Service) UpdateTransaction(ctx context.Context, t *Transaction) error {
	if err := validate(t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.transactions.Update(ctx, t)
}

func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.transactions.Delete(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, filter ListFilter, limit, offset int) ([]*Transaction, int, error) {
	return s.transactions.List(ctx, filter, limit, offset)
}
