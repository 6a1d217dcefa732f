package model

import (
	"github.com/google/uuid"
)

// Doctor extends a Profile with clinical attributes. One doctor record
// per user, unique license number.
type Doctor struct {
	Base
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	HospitalID      uuid.UUID `json:"hospital_id" db:"hospital_id"`
	DepartmentID    uuid.UUID `json:"department_id" db:"department_id"`
	Specialization  string    `json:"specialization" db:"specialization"`
	LicenseNumber   string    `json:"license_number" db:"license_number"`
	ConsultationFee float64   `json:"consultation_fee" db:"consultation_fee"`
	SignatureData   *string   `json:"signature_data,omitempty" db:"signature_data"`
}

// DoctorDetail is the hydrated view returned by read endpoints.
type DoctorDetail struct {
	Doctor
	FullName       string `json:"full_name" db:"full_name"`
	Email          string `json:"email" db:"email"`
	HospitalName   string `json:"hospital_name" db:"hospital_name"`
	DepartmentName string `json:"department_name" db:"department_name"`
}

type Nurse struct {
	Base
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	LicenseNumber string    `json:"license_number" db:"license_number"`
}

type NurseDetail struct {
	Nurse
	FullName string `json:"full_name" db:"full_name"`
	Email    string `json:"email" db:"email"`
}

type CreateDoctorRequest struct {
	UserID          uuid.UUID `json:"user_id" binding:"required"`
	HospitalID      uuid.UUID `json:"hospital_id" binding:"required"`
	DepartmentID    uuid.UUID `json:"department_id" binding:"required"`
	Specialization  string    `json:"specialization" binding:"required"`
	LicenseNumber   string    `json:"license_number" binding:"required"`
	ConsultationFee float64   `json:"consultation_fee" binding:"min=0"`
	SignatureData   *string   `json:"signature_data"`
}

type UpdateDoctorRequest struct {
	HospitalID      *uuid.UUID `json:"hospital_id"`
	DepartmentID    *uuid.UUID `json:"department_id"`
	Specialization  *string    `json:"specialization"`
	ConsultationFee *float64   `json:"consultation_fee"`
	SignatureData   *string    `json:"signature_data"`
}

type CreateNurseRequest struct {
	UserID        uuid.UUID `json:"user_id" binding:"required"`
	LicenseNumber string    `json:"license_number" binding:"required"`
}
