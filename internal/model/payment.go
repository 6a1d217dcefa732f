package model

import (
	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeConsultation PaymentType = "consultation"
	PaymentTypeLabTest      PaymentType = "lab_test"
	PaymentTypeMedication   PaymentType = "medication"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records a settlement against a consultation, lab test or
// medication. The reference is polymorphic by payment type. The amount
// is caller-supplied and not cross-checked against the referenced
// entity's price; see the payment service for why this stands.
type Payment struct {
	Base
	PatientID         uuid.UUID     `json:"patient_id" db:"patient_id"`
	PaymentType       PaymentType   `json:"payment_type" db:"payment_type"`
	ReferenceID       uuid.UUID     `json:"reference_id" db:"reference_id"`
	Amount            float64       `json:"amount" db:"amount"`
	InsuranceCoverage float64       `json:"insurance_coverage" db:"insurance_coverage"`
	PatientPays       float64       `json:"patient_pays" db:"patient_pays"`
	Status            PaymentStatus `json:"status" db:"status"`
	PaymentMethod     string        `json:"payment_method" db:"payment_method"`
	TransactionID     string        `json:"transaction_id" db:"transaction_id"`
}

type CreatePaymentRequest struct {
	PaymentType   PaymentType `json:"payment_type" binding:"required,oneof=consultation lab_test medication"`
	ReferenceID   uuid.UUID   `json:"reference_id" binding:"required"`
	Amount        float64     `json:"amount" binding:"required,gt=0"`
	PaymentMethod string      `json:"payment_method"`
}
