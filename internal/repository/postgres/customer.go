package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
)

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, business_id, name, email, phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.BusinessID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Notes,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, business_id, name, email, phone, notes, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, notes = $4, updated_at = $5
		WHERE id = $6
	`
	customer.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Notes,
		customer.UpdatedAt,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("customer not found")
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("customer not found")
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, filters *model.CustomerFilters) ([]*model.Customer, error) {
	query := `
		SELECT id, business_id, name, email, phone, notes, created_at, updated_at
		FROM customers
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.BusinessID != uuid.Nil {
			query += fmt.Sprintf(" AND business_id = $%d", argCount)
			args = append(args, filters.BusinessID)
			argCount++
		}
		if filters.SearchTerm != "" {
			query += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", argCount, argCount, argCount)
			args = append(args, "%"+filters.SearchTerm+"%")
			argCount++
		}
	}

	query += " ORDER BY name ASC"

	var customers []*model.Customer
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}
