package business

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/repository"
	apperrors "github.com/randevuhq/randevu-api/pkg/errors"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service manages businesses and their service catalogs. Both change rarely
// and are read on every dashboard page, so reads go through an in-process
// cache invalidated on write.
type Service struct {
	repo  repository.BusinessRepository
	cache *cache.Cache
}

func NewService(repo repository.BusinessRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) CreateBusiness(ctx context.Context, req *model.CreateBusinessRequest) (*model.Business, error) {
	business := &model.Business{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Status:  "active",
	}
	business.ID = uuid.New()

	if err := s.repo.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	s.cache.Delete("businesses")
	return business, nil
}

func (s *Service) GetBusiness(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	key := "business:" + id.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Business), nil
	}

	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("business", err)
	}
	s.cache.Set(key, business, cache.DefaultExpiration)
	return business, nil
}

func (s *Service) UpdateBusiness(ctx context.Context, id uuid.UUID, req *model.UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("business", err)
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Address != nil {
		business.Address = *req.Address
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}
	if req.Status != nil {
		business.Status = *req.Status
	}

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, fmt.Errorf("failed to update business: %w", err)
	}
	s.invalidateBusiness(id)
	return business, nil
}

func (s *Service) DeleteBusiness(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}
	s.invalidateBusiness(id)
	return nil
}

func (s *Service) ListBusinesses(ctx context.Context) ([]*model.Business, error) {
	if cached, ok := s.cache.Get("businesses"); ok {
		return cached.([]*model.Business), nil
	}

	businesses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	s.cache.Set("businesses", businesses, cache.DefaultExpiration)
	return businesses, nil
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("invalid business ID: %w", err)
	}

	service := &model.Service{
		BusinessID: businessID,
		Name:       req.Name,
		Duration:   req.Duration,
		Price:      req.Price,
		Status:     "active",
	}
	service.ID = uuid.New()

	if err := s.repo.CreateService(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	s.cache.Delete("services:" + req.BusinessID)
	return service, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	service, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("service", err)
	}
	return service, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	service, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("service", err)
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Status != nil {
		service.Status = *req.Status
	}

	if err := s.repo.UpdateService(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	s.cache.Delete("services:" + service.BusinessID.String())
	return service, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	service, err := s.repo.GetService(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get service: %w", err)
	}
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	s.cache.Delete("services:" + service.BusinessID.String())
	return nil
}

func (s *Service) ListServices(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	key := "services:" + businessID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.ListServices(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	s.cache.Set(key, services, cache.DefaultExpiration)
	return services, nil
}

func (s *Service) invalidateBusiness(id uuid.UUID) {
	s.cache.Delete("business:" + id.String())
	s.cache.Delete("businesses")
}
