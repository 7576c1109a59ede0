package model

import (
	"time"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusLocked   = "locked"
)

// User role constants. The role only drives menu visibility in the dashboard,
// there is no per-endpoint permission matrix.
const (
	UserRoleAdmin    = "admin"
	UserRoleManager  = "manager"
	UserRoleEmployee = "employee"
)

// User represents a dashboard login.
type User struct {
	Base
	Email            string    `json:"email" db:"email"`
	Name             string    `json:"name" db:"name"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Role             string    `json:"role" db:"role"`
	Status           string    `json:"status" db:"status"`
	LoginAttempts    int       `json:"-" db:"login_attempts"`
	LastLoginAttempt time.Time `json:"-" db:"last_login_attempt"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin manager employee"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Role   *string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	Status *string `json:"status" binding:"omitempty,oneof=active inactive locked"`
}
