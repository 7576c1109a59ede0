package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
)

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	query := `
		INSERT INTO businesses (id, name, address, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	business.CreatedAt = time.Now()
	business.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		business.ID,
		business.Name,
		business.Address,
		business.Phone,
		business.Status,
		business.CreatedAt,
		business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`
	var business model.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	query := `
		UPDATE businesses
		SET name = $1, address = $2, phone = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	business.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		business.Name,
		business.Address,
		business.Phone,
		business.Status,
		business.UpdatedAt,
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("business not found")
	}
	return nil
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("business not found")
	}
	return nil
}

func (r *businessRepository) List(ctx context.Context) ([]*model.Business, error) {
	query := `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM businesses
		ORDER BY created_at DESC
	`
	var businesses []*model.Business
	if err := r.db.SelectContext(ctx, &businesses, query); err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

func (r *businessRepository) CreateService(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (id, business_id, name, duration, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		service.ID,
		service.BusinessID,
		service.Name,
		service.Duration,
		service.Price,
		service.Status,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *businessRepository) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, business_id, name, duration, price, status, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *businessRepository) UpdateService(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, duration = $2, price = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	service.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Duration,
		service.Price,
		service.Status,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}
	return nil
}

func (r *businessRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}
	return nil
}

func (r *businessRepository) ListServices(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	query := `
		SELECT id, business_id, name, duration, price, status, created_at, updated_at
		FROM services
		WHERE business_id = $1
		ORDER BY name ASC
	`
	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
