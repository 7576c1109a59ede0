package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known appointment statuses.
// Transitions between statuses are deliberately unconstrained.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is scheduled at minute precision. For a given staff member no
// two non-cancelled appointments may share the same day and HH:MM.
type Appointment struct {
	Base
	BusinessID uuid.UUID         `db:"business_id" json:"business_id"`
	ServiceID  uuid.UUID         `db:"service_id" json:"service_id"`
	StaffID    uuid.UUID         `db:"staff_id" json:"staff_id"`
	CustomerID uuid.UUID         `db:"customer_id" json:"customer_id"`
	Date       time.Time         `db:"date" json:"date"`
	Status     AppointmentStatus `db:"status" json:"status"`
	Notes      string            `db:"notes" json:"notes,omitempty"`
}

type CreateAppointmentRequest struct {
	BusinessID string `json:"business_id" binding:"required,uuid"`
	ServiceID  string `json:"service_id" binding:"required,uuid"`
	StaffID    string `json:"staff_id" binding:"required,uuid"`
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"` // RFC 3339
	Notes      string `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	Date   *string            `json:"date"`
	Status *AppointmentStatus `json:"status" binding:"omitempty,appointmentstatus"`
	Notes  *string            `json:"notes"`
}

// RescheduleRequest carries a candidate placement from a drag gesture or a
// manual edit. Day and Time stay separate because that is how a grid cell is
// addressed.
type RescheduleRequest struct {
	Day  string `json:"day" binding:"required"`  // 2006-01-02
	Time string `json:"time" binding:"required"` // 15:04
}

type AppointmentFilters struct {
	BusinessID uuid.UUID
	StaffID    uuid.UUID
	CustomerID uuid.UUID
	Status     AppointmentStatus
	StartDate  time.Time
	EndDate    time.Time
}
