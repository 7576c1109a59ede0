package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/repository"
)

type Service struct {
	repo repository.StaffRepository
}

func NewService(repo repository.StaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateStaff(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("invalid business ID: %w", err)
	}

	staff := &model.Staff{
		BusinessID: businessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Title:      req.Title,
		Status:     "active",
	}
	staff.ID = uuid.New()

	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return staff, nil
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

func (s *Service) UpdateStaff(ctx context.Context, id uuid.UUID, req *model.UpdateStaffRequest) (*model.Staff, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Title != nil {
		staff.Title = *req.Title
	}
	if req.Status != nil {
		staff.Status = *req.Status
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}
	return staff, nil
}

func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, businessID uuid.UUID) ([]*model.Staff, error) {
	staff, err := s.repo.List(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}
