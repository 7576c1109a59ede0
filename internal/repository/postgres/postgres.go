package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/randevuhq/randevu-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

type businessRepository struct {
	db *sqlx.DB
}

type staffRepository struct {
	db *sqlx.DB
}

type customerRepository struct {
	db *sqlx.DB
}

type cashRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewBusinessRepository(db *sqlx.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func NewCashRepository(db *sqlx.DB) repository.CashRepository {
	return &cashRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
