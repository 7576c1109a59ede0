package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
)

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (id, business_id, name, email, phone, title, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.BusinessID,
		staff.Name,
		staff.Email,
		staff.Phone,
		staff.Title,
		staff.Status,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, business_id, name, email, phone, title, status, created_at, updated_at
		FROM staff
		WHERE id = $1
	`
	var staff model.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	query := `
		UPDATE staff
		SET name = $1, email = $2, phone = $3, title = $4, status = $5, updated_at = $6
		WHERE id = $7
	`
	staff.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		staff.Name,
		staff.Email,
		staff.Phone,
		staff.Title,
		staff.Status,
		staff.UpdatedAt,
		staff.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("staff not found")
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("staff not found")
	}
	return nil
}

func (r *staffRepository) List(ctx context.Context, businessID uuid.UUID) ([]*model.Staff, error) {
	query := `
		SELECT id, business_id, name, email, phone, title, status, created_at, updated_at
		FROM staff
		WHERE business_id = $1
		ORDER BY name ASC
	`
	var staff []*model.Staff
	if err := r.db.SelectContext(ctx, &staff, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}
