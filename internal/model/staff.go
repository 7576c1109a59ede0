package model

import "github.com/google/uuid"

type Staff struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Title      string    `db:"title" json:"title"`
	Status     string    `db:"status" json:"status"`
}

type CreateStaffRequest struct {
	BusinessID string `json:"business_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Title      string `json:"title"`
}

type UpdateStaffRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Phone  *string `json:"phone"`
	Title  *string `json:"title"`
	Status *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
