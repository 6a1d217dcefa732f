package model

import (
	"time"

	"github.com/google/uuid"
)

type LabTestStatus string

const (
	LabTestStatusAwaitingPayment LabTestStatus = "awaiting_payment"
	LabTestStatusPending         LabTestStatus = "pending"
	LabTestStatusInProgress      LabTestStatus = "in_progress"
	LabTestStatusCompleted       LabTestStatus = "completed"
)

type LabResultStatus string

const (
	LabResultPositive     LabResultStatus = "positive"
	LabResultNegative     LabResultStatus = "negative"
	LabResultInconclusive LabResultStatus = "inconclusive"
)

type LabTestRequest struct {
	Base
	ConsultationID    uuid.UUID     `json:"consultation_id" db:"consultation_id"`
	PatientID         uuid.UUID     `json:"patient_id" db:"patient_id"`
	DoctorID          uuid.UUID     `json:"doctor_id" db:"doctor_id"`
	LabTestTemplateID uuid.UUID     `json:"lab_test_template_id" db:"lab_test_template_id"`
	HospitalID        *uuid.UUID    `json:"hospital_id,omitempty" db:"hospital_id"`
	Status            LabTestStatus `json:"status" db:"status"`
	TotalPrice        float64       `json:"total_price" db:"total_price"`
}

type LabTestRequestDetail struct {
	LabTestRequest
	PatientName  string `json:"patient_name" db:"patient_name"`
	DoctorName   string `json:"doctor_name" db:"doctor_name"`
	TestName     string `json:"test_name" db:"test_name"`
	TestCategory string `json:"test_category" db:"test_category"`
	HospitalName string `json:"hospital_name,omitempty" db:"hospital_name"`
}

// LabTestResult completes a request; creating one flips the parent
// request to completed within the same transaction.
type LabTestResult struct {
	Base
	LabTestRequestID uuid.UUID       `json:"lab_test_request_id" db:"lab_test_request_id"`
	TechnicianID     uuid.UUID       `json:"technician_id" db:"technician_id"`
	ResultStatus     LabResultStatus `json:"result_status" db:"result_status"`
	ResultData       string          `json:"result_data" db:"result_data"`
	Notes            string          `json:"notes" db:"notes"`
	CompletedAt      time.Time       `json:"completed_at" db:"completed_at"`
}

type CreateLabTestRequestRequest struct {
	ConsultationID    uuid.UUID      `json:"consultation_id" binding:"required"`
	LabTestTemplateID uuid.UUID      `json:"lab_test_template_id" binding:"required"`
	HospitalID        *uuid.UUID     `json:"hospital_id"`
	AppointmentID     *uuid.UUID     `json:"appointment_id"`
	Status            *LabTestStatus `json:"status" binding:"omitempty,oneof=awaiting_payment pending"`
}

type UpdateLabTestRequestRequest struct {
	Status LabTestStatus `json:"status" binding:"required,oneof=awaiting_payment pending in_progress completed"`
}

type CreateLabTestResultRequest struct {
	LabTestRequestID uuid.UUID       `json:"lab_test_request_id" binding:"required"`
	ResultStatus     LabResultStatus `json:"result_status" binding:"required,oneof=positive negative inconclusive"`
	ResultData       string          `json:"result_data" binding:"required"`
	Notes            string          `json:"notes"`
}
