package model

import (
	"time"

	"github.com/google/uuid"
)

// Consultation records the clinical outcome of an appointment. Exactly
// one consultation may exist per appointment; the patient and doctor
// references are copied from the appointment, never caller-supplied.
type Consultation struct {
	Base
	AppointmentID        uuid.UUID `json:"appointment_id" db:"appointment_id"`
	PatientID            uuid.UUID `json:"patient_id" db:"patient_id"`
	DoctorID             uuid.UUID `json:"doctor_id" db:"doctor_id"`
	Diagnosis            string    `json:"diagnosis" db:"diagnosis"`
	Notes                string    `json:"notes" db:"notes"`
	RequiresLabTest      bool      `json:"requires_lab_test" db:"requires_lab_test"`
	RequiresPrescription bool      `json:"requires_prescription" db:"requires_prescription"`
	ConsultationDate     time.Time `json:"consultation_date" db:"consultation_date"`
}

type ConsultationDetail struct {
	Consultation
	PatientName     string    `json:"patient_name" db:"patient_name"`
	DoctorName      string    `json:"doctor_name" db:"doctor_name"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string    `json:"appointment_time" db:"appointment_time"`
}

type CreateConsultationRequest struct {
	AppointmentID        uuid.UUID `json:"appointment_id" binding:"required"`
	Diagnosis            string    `json:"diagnosis" binding:"required"`
	Notes                string    `json:"notes"`
	RequiresLabTest      bool      `json:"requires_lab_test"`
	RequiresPrescription bool      `json:"requires_prescription"`
}
