package business

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randevuhq/randevu-api/internal/model"
	apperrors "github.com/randevuhq/randevu-api/pkg/errors"
)

type stubRepo struct {
	businesses map[uuid.UUID]*model.Business
	services   map[uuid.UUID]*model.Service
	listCalls  int
	getCalls   int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		businesses: make(map[uuid.UUID]*model.Business),
		services:   make(map[uuid.UUID]*model.Service),
	}
}

func (r *stubRepo) Create(_ context.Context, b *model.Business) error {
	r.businesses[b.ID] = b
	return nil
}

func (r *stubRepo) Get(_ context.Context, id uuid.UUID) (*model.Business, error) {
	r.getCalls++
	if b, ok := r.businesses[id]; ok {
		return b, nil
	}
	return nil, errors.New("business not found")
}

func (r *stubRepo) Update(_ context.Context, b *model.Business) error {
	r.businesses[b.ID] = b
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.businesses, id)
	return nil
}

func (r *stubRepo) List(_ context.Context) ([]*model.Business, error) {
	r.listCalls++
	var out []*model.Business
	for _, b := range r.businesses {
		out = append(out, b)
	}
	return out, nil
}

func (r *stubRepo) CreateService(_ context.Context, s *model.Service) error {
	r.services[s.ID] = s
	return nil
}

func (r *stubRepo) GetService(_ context.Context, id uuid.UUID) (*model.Service, error) {
	if s, ok := r.services[id]; ok {
		return s, nil
	}
	return nil, errors.New("service not found")
}

func (r *stubRepo) UpdateService(_ context.Context, s *model.Service) error {
	r.services[s.ID] = s
	return nil
}

func (r *stubRepo) DeleteService(_ context.Context, id uuid.UUID) error {
	delete(r.services, id)
	return nil
}

func (r *stubRepo) ListServices(_ context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	var out []*model.Service
	for _, s := range r.services {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestGetBusinessCaching(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo)

	created, err := svc.CreateBusiness(ctx, &model.CreateBusinessRequest{Name: "Kuaför Ayşe"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.GetBusiness(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kuaför Ayşe", got.Name)
	}
	assert.Equal(t, 1, repo.getCalls, "repeated reads should hit the cache")
}

func TestUpdateBusinessInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo)

	created, err := svc.CreateBusiness(ctx, &model.CreateBusinessRequest{Name: "Old Name"})
	require.NoError(t, err)

	_, err = svc.GetBusiness(ctx, created.ID)
	require.NoError(t, err)

	newName := "New Name"
	_, err = svc.UpdateBusiness(ctx, created.ID, &model.UpdateBusinessRequest{Name: &newName})
	require.NoError(t, err)

	got, err := svc.GetBusiness(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}

func TestGetBusinessNotFound(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.GetBusiness(context.Background(), uuid.New())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestListBusinessesCaching(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo)

	_, err := svc.CreateBusiness(ctx, &model.CreateBusinessRequest{Name: "One"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		list, err := svc.ListBusinesses(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	assert.Equal(t, 1, repo.listCalls)

	// A write invalidates the list.
	_, err = svc.CreateBusiness(ctx, &model.CreateBusinessRequest{Name: "Two"})
	require.NoError(t, err)

	list, err := svc.ListBusinesses(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestServiceCatalog(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewService(repo)

	business, err := svc.CreateBusiness(ctx, &model.CreateBusinessRequest{Name: "Salon"})
	require.NoError(t, err)

	created, err := svc.CreateService(ctx, &model.CreateServiceRequest{
		BusinessID: business.ID.String(),
		Name:       "Saç Kesimi",
		Duration:   30,
		Price:      250,
	})
	require.NoError(t, err)
	assert.Equal(t, business.ID, created.BusinessID)

	services, err := svc.ListServices(ctx, business.ID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Saç Kesimi", services[0].Name)
}
