package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment books a doctor for one 10-minute slot. The partial
// uniqueness constraint on (doctor_id, appointment_date,
// appointment_time) over pending/approved rows is the source of truth
// against double-booking.
type Appointment struct {
	Base
	PatientID       uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID        uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	HospitalID      uuid.UUID         `json:"hospital_id" db:"hospital_id"`
	DepartmentID    uuid.UUID         `json:"department_id" db:"department_id"`
	AppointmentDate time.Time         `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string            `json:"appointment_time" db:"appointment_time"`
	Status          AppointmentStatus `json:"status" db:"status"`
	Reason          string            `json:"reason" db:"reason"`
	RejectionReason *string           `json:"rejection_reason,omitempty" db:"rejection_reason"`
}

// AppointmentDetail expands the patient, doctor, hospital and
// department references inline.
type AppointmentDetail struct {
	Appointment
	PatientName    string `json:"patient_name" db:"patient_name"`
	PatientPhone   string `json:"patient_phone" db:"patient_phone"`
	DoctorName     string `json:"doctor_name" db:"doctor_name"`
	Specialization string `json:"specialization" db:"specialization"`
	HospitalName   string `json:"hospital_name" db:"hospital_name"`
	DepartmentName string `json:"department_name" db:"department_name"`
}

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentDate string    `json:"appointment_date" binding:"required"`
	AppointmentTime string    `json:"appointment_time" binding:"required,timeslot"`
	Reason          string    `json:"reason"`
}

type DecideAppointmentRequest struct {
	Status          AppointmentStatus `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string            `json:"rejection_reason"`
}

type AppointmentFilters struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *AppointmentStatus
	Date      *time.Time
}
