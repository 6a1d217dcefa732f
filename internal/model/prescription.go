package model

import (
	"github.com/google/uuid"
)

type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "pending"
	PrescriptionStatusApproved  PrescriptionStatus = "approved"
	PrescriptionStatusRejected  PrescriptionStatus = "rejected"
	PrescriptionStatusCompleted PrescriptionStatus = "completed"
	PrescriptionStatusPaid      PrescriptionStatus = "paid"
)

// Prescription is exactly one medication line. A clinical prescribe
// action with N items fans out into N independent rows.
type Prescription struct {
	Base
	ConsultationID uuid.UUID          `json:"consultation_id" db:"consultation_id"`
	PatientID      uuid.UUID          `json:"patient_id" db:"patient_id"`
	DoctorID       uuid.UUID          `json:"doctor_id" db:"doctor_id"`
	PharmacyID     *uuid.UUID         `json:"pharmacy_id,omitempty" db:"pharmacy_id"`
	Status         PrescriptionStatus `json:"status" db:"status"`
	MedicationID   uuid.UUID          `json:"medication_id" db:"medication_id"`
	Quantity       int                `json:"quantity" db:"quantity"`
	Dosage         string             `json:"dosage" db:"dosage"`
	UnitPrice      float64            `json:"unit_price" db:"unit_price"`
	TotalPrice     float64            `json:"total_price" db:"total_price"`
	Notes          string             `json:"notes" db:"notes"`
	SignatureData  *string            `json:"signature_data,omitempty" db:"signature_data"`
}

type PrescriptionDetail struct {
	Prescription
	PatientName    string  `json:"patient_name" db:"patient_name"`
	DoctorName     string  `json:"doctor_name" db:"doctor_name"`
	MedicationName string  `json:"medication_name" db:"medication_name"`
	PharmacyName   *string `json:"pharmacy_name,omitempty" db:"pharmacy_name"`
}

type PharmacyRequestStatus string

const (
	PharmacyRequestPending   PharmacyRequestStatus = "pending"
	PharmacyRequestApproved  PharmacyRequestStatus = "approved"
	PharmacyRequestRejected  PharmacyRequestStatus = "rejected"
	PharmacyRequestCompleted PharmacyRequestStatus = "completed"
)

// PharmacyRequest is created at most once per (prescription, pharmacy)
// pair when a prescription is dispatched.
type PharmacyRequest struct {
	Base
	PrescriptionID  uuid.UUID             `json:"prescription_id" db:"prescription_id"`
	PatientID       uuid.UUID             `json:"patient_id" db:"patient_id"`
	PharmacyID      uuid.UUID             `json:"pharmacy_id" db:"pharmacy_id"`
	Status          PharmacyRequestStatus `json:"status" db:"status"`
	RejectionReason *string               `json:"rejection_reason,omitempty" db:"rejection_reason"`
}

type PharmacyRequestDetail struct {
	PharmacyRequest
	PatientName    string `json:"patient_name" db:"patient_name"`
	PharmacyName   string `json:"pharmacy_name" db:"pharmacy_name"`
	MedicationName string `json:"medication_name" db:"medication_name"`
	Quantity       int    `json:"quantity" db:"quantity"`
	Dosage         string `json:"dosage" db:"dosage"`
}

// PrescriptionItem is one line of a prescribe batch. Validation runs
// over the whole batch before any row is written.
type PrescriptionItem struct {
	MedicationID uuid.UUID `json:"medication_id"`
	Quantity     int       `json:"quantity"`
	Dosage       string    `json:"dosage"`
	Notes        string    `json:"notes"`
}

type CreatePrescriptionBatchRequest struct {
	ConsultationID uuid.UUID          `json:"consultation_id" binding:"required"`
	Items          []PrescriptionItem `json:"items" binding:"required"`
	SignatureData  *string            `json:"signature_data"`
}

type PrescriptionBatchResponse struct {
	Message       string          `json:"message"`
	Count         int             `json:"count"`
	Prescriptions []*Prescription `json:"prescriptions"`
}

type UpdatePrescriptionRequest struct {
	PharmacyID *uuid.UUID          `json:"pharmacy_id"`
	Status     *PrescriptionStatus `json:"status" binding:"omitempty,oneof=pending approved rejected completed paid"`
	Notes      *string             `json:"notes"`
}

type DecidePharmacyRequestRequest struct {
	Status          PharmacyRequestStatus `json:"status" binding:"required,oneof=approved rejected completed"`
	RejectionReason string                `json:"rejection_reason"`
}
