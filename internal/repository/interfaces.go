package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
)

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		UpdateDate(ctx context.Context, id uuid.UUID, date time.Time) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	BusinessRepository interface {
		Create(ctx context.Context, business *model.Business) error
		Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
		Update(ctx context.Context, business *model.Business) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Business, error)
		CreateService(ctx context.Context, service *model.Service) error
		GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
		UpdateService(ctx context.Context, service *model.Service) error
		DeleteService(ctx context.Context, id uuid.UUID) error
		ListServices(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error)
	}

	StaffRepository interface {
		Create(ctx context.Context, staff *model.Staff) error
		Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
		Update(ctx context.Context, staff *model.Staff) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, businessID uuid.UUID) ([]*model.Staff, error)
	}

	CustomerRepository interface {
		Create(ctx context.Context, customer *model.Customer) error
		Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
		Update(ctx context.Context, customer *model.Customer) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.CustomerFilters) ([]*model.Customer, error)
	}

	CashRepository interface {
		Create(ctx context.Context, tx *model.CashTransaction) error
		Get(ctx context.Context, id uuid.UUID) (*model.CashTransaction, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.CashFilters) ([]*model.CashTransaction, error)
		Summary(ctx context.Context, filters *model.CashFilters) (*model.CashSummary, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		List(ctx context.Context) ([]*model.User, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
