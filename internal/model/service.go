package model

import "github.com/google/uuid"

type Service struct {
	Base
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Duration   int       `db:"duration" json:"duration"` // in minutes
	Price      float64   `db:"price" json:"price"`
	Status     string    `db:"status" json:"status"`
}

type CreateServiceRequest struct {
	BusinessID string  `json:"business_id" binding:"required,uuid"`
	Name       string  `json:"name" binding:"required"`
	Duration   int     `json:"duration" binding:"required,min=5"`
	Price      float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name     *string  `json:"name"`
	Duration *int     `json:"duration" binding:"omitempty,min=5"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	Status   *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}
