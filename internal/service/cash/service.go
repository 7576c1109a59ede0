package cash

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/repository"
)

type Service struct {
	repo repository.CashRepository
}

func NewService(repo repository.CashRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTransaction(ctx context.Context, req *model.CreateCashTransactionRequest) (*model.CashTransaction, error) {
	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("invalid business ID: %w", err)
	}

	tx := &model.CashTransaction{
		BusinessID:  businessID,
		Type:        model.CashType(req.Type),
		Amount:      req.Amount,
		PaymentType: model.PaymentType(req.PaymentType),
		TaxRate:     req.TaxRate,
		Description: req.Description,
	}
	tx.ID = uuid.New()

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create cash transaction: %w", err)
	}
	return tx, nil
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*model.CashTransaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash transaction: %w", err)
	}
	return tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, filters *model.CashFilters) ([]*model.CashTransaction, error) {
	transactions, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}
	return transactions, nil
}

// Report aggregates income and expense totals for the kasa report.
func (s *Service) Report(ctx context.Context, filters *model.CashFilters) (*model.CashSummary, error) {
	summary, err := s.repo.Summary(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build cash report: %w", err)
	}
	return summary, nil
}
