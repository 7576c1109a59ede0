package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
)

func (r *cashRepository) Create(ctx context.Context, tx *model.CashTransaction) error {
	query := `
		INSERT INTO cash_transactions (
			id, business_id, type, amount, payment_type, tax_rate,
			description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.BusinessID,
		tx.Type,
		tx.Amount,
		tx.PaymentType,
		tx.TaxRate,
		tx.Description,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create cash transaction: %w", err)
	}
	return nil
}

func (r *cashRepository) Get(ctx context.Context, id uuid.UUID) (*model.CashTransaction, error) {
	query := `
		SELECT id, business_id, type, amount, payment_type, tax_rate,
			   description, created_at, updated_at
		FROM cash_transactions
		WHERE id = $1
	`
	var tx model.CashTransaction
	if err := r.db.GetContext(ctx, &tx, query, id); err != nil {
		return nil, fmt.Errorf("failed to get cash transaction: %w", err)
	}
	return &tx, nil
}

func (r *cashRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cash_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cash transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cash transaction not found")
	}
	return nil
}

func buildCashFilter(filters *model.CashFilters) (string, []interface{}) {
	clause := ""
	args := []interface{}{}
	argCount := 1

	if filters == nil {
		return clause, args
	}
	if filters.BusinessID != uuid.Nil {
		clause += fmt.Sprintf(" AND business_id = $%d", argCount)
		args = append(args, filters.BusinessID)
		argCount++
	}
	if filters.Type != "" {
		clause += fmt.Sprintf(" AND type = $%d", argCount)
		args = append(args, filters.Type)
		argCount++
	}
	if !filters.StartDate.IsZero() {
		clause += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, filters.StartDate)
		argCount++
	}
	if !filters.EndDate.IsZero() {
		clause += fmt.Sprintf(" AND created_at < $%d", argCount)
		args = append(args, filters.EndDate)
		argCount++
	}
	return clause, args
}

func (r *cashRepository) List(ctx context.Context, filters *model.CashFilters) ([]*model.CashTransaction, error) {
	query := `
		SELECT id, business_id, type, amount, payment_type, tax_rate,
			   description, created_at, updated_at
		FROM cash_transactions
		WHERE 1=1
	`
	clause, args := buildCashFilter(filters)
	query += clause + " ORDER BY created_at DESC"

	var transactions []*model.CashTransaction
	if err := r.db.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}
	return transactions, nil
}

func (r *cashRepository) Summary(ctx context.Context, filters *model.CashFilters) (*model.CashSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)  AS total_income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS total_expense
		FROM cash_transactions
		WHERE 1=1
	`
	clause, args := buildCashFilter(filters)
	query += clause

	var summary model.CashSummary
	if err := r.db.GetContext(ctx, &summary, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get cash summary: %w", err)
	}
	summary.Net = summary.TotalIncome - summary.TotalExpense
	return &summary, nil
}
