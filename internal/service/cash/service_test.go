package cash

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randevuhq/randevu-api/internal/model"
)

type stubRepo struct {
	transactions map[uuid.UUID]*model.CashTransaction
}

func newStubRepo() *stubRepo {
	return &stubRepo{transactions: make(map[uuid.UUID]*model.CashTransaction)}
}

func (r *stubRepo) Create(ctx context.Context, tx *model.CashTransaction) error {
	r.transactions[tx.ID] = tx
	return nil
}

func (r *stubRepo) Get(ctx context.Context, id uuid.UUID) (*model.CashTransaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, errors.New("transaction not found")
	}
	return tx, nil
}

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.transactions, id)
	return nil
}

func (r *stubRepo) List(ctx context.Context, filters *model.CashFilters) ([]*model.CashTransaction, error) {
	var out []*model.CashTransaction
	for _, tx := range r.transactions {
		if filters != nil && filters.Type != "" && tx.Type != filters.Type {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (r *stubRepo) Summary(ctx context.Context, filters *model.CashFilters) (*model.CashSummary, error) {
	summary := &model.CashSummary{}
	for _, tx := range r.transactions {
		switch tx.Type {
		case model.CashTypeIncome:
			summary.TotalIncome += tx.Amount
		case model.CashTypeExpense:
			summary.TotalExpense += tx.Amount
		}
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

func TestCreateTransaction(t *testing.T) {
	svc := NewService(newStubRepo())
	businessID := uuid.New()

	tx, err := svc.CreateTransaction(context.Background(), &model.CreateCashTransactionRequest{
		BusinessID:  businessID.String(),
		Type:        "income",
		Amount:      450,
		PaymentType: "card",
		TaxRate:     18,
		Description: "Saç kesimi",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, businessID, tx.BusinessID)
	assert.Equal(t, model.CashTypeIncome, tx.Type)
	assert.Equal(t, model.PaymentTypeCard, tx.PaymentType)

	got, err := svc.GetTransaction(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
}

func TestCreateTransactionInvalidBusinessID(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.CreateTransaction(context.Background(), &model.CreateCashTransactionRequest{
		BusinessID:  "not-a-uuid",
		Type:        "income",
		Amount:      100,
		PaymentType: "cash",
	})
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	businessID := uuid.New().String()

	for _, in := range []struct {
		txType string
		amount float64
	}{
		{"income", 450},
		{"income", 300},
		{"expense", 120},
	} {
		_, err := svc.CreateTransaction(context.Background(), &model.CreateCashTransactionRequest{
			BusinessID:  businessID,
			Type:        in.txType,
			Amount:      in.amount,
			PaymentType: "cash",
		})
		require.NoError(t, err)
	}

	summary, err := svc.Report(context.Background(), &model.CashFilters{
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, 750.0, summary.TotalIncome)
	assert.Equal(t, 120.0, summary.TotalExpense)
	assert.Equal(t, 630.0, summary.Net)
}
