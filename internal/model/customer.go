package model

import "github.com/google/uuid"

type Customer struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Notes      string    `db:"notes" json:"notes,omitempty"`
}

type CreateCustomerRequest struct {
	BusinessID string `json:"business_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes" binding:"max=1000"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

type CustomerFilters struct {
	BusinessID uuid.UUID
	SearchTerm string
}
