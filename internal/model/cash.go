package model

import (
	"time"

	"github.com/google/uuid"
)

type CashType string

const (
	CashTypeIncome  CashType = "income"
	CashTypeExpense CashType = "expense"
)

type PaymentType string

const (
	PaymentTypeCash  PaymentType = "cash"
	PaymentTypeCard  PaymentType = "card"
	PaymentTypeBank  PaymentType = "bank"
	PaymentTypeOther PaymentType = "other"
)

type CashTransaction struct {
	Base
	BusinessID  uuid.UUID   `db:"business_id" json:"business_id"`
	Type        CashType    `db:"type" json:"type"`
	Amount      float64     `db:"amount" json:"amount"`
	PaymentType PaymentType `db:"payment_type" json:"payment_type"`
	TaxRate     float64     `db:"tax_rate" json:"tax_rate"`
	Description string      `db:"description" json:"description,omitempty"`
}

type CreateCashTransactionRequest struct {
	BusinessID  string  `json:"business_id" binding:"required,uuid"`
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentType string  `json:"payment_type" binding:"required,oneof=cash card bank other"`
	TaxRate     float64 `json:"tax_rate" binding:"gte=0,lte=100"`
	Description string  `json:"description" binding:"max=500"`
}

type CashFilters struct {
	BusinessID uuid.UUID
	Type       CashType
	StartDate  time.Time
	EndDate    time.Time
}

// CashSummary aggregates transactions for the kasa report view.
type CashSummary struct {
	TotalIncome  float64 `db:"total_income" json:"total_income"`
	TotalExpense float64 `db:"total_expense" json:"total_expense"`
	Net          float64 `json:"net"`
}
