package model

import (
	"github.com/google/uuid"
)

// Insurance defines a coverage plan; coverage percentage is bounded to
// [0,100] at the validation layer.
type Insurance struct {
	Base
	Name               string  `json:"name" db:"name"`
	CoveragePercentage float64 `json:"coverage_percentage" db:"coverage_percentage"`
	Description        string  `json:"description" db:"description"`
}

type Hospital struct {
	Base
	Name            string     `json:"name" db:"name"`
	Location        string     `json:"location" db:"location"`
	Phone           string     `json:"phone" db:"phone"`
	Email           string     `json:"email" db:"email"`
	Description     string     `json:"description" db:"description"`
	ConsultationFee float64    `json:"consultation_fee" db:"consultation_fee"`
	LabUserID       *uuid.UUID `json:"lab_user_id,omitempty" db:"lab_user_id"`
}

type Department struct {
	Base
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// HospitalDepartment binds a department to a hospital with the
// consultation fee charged for that pairing. The pair is unique.
type HospitalDepartment struct {
	Base
	HospitalID      uuid.UUID `json:"hospital_id" db:"hospital_id"`
	DepartmentID    uuid.UUID `json:"department_id" db:"department_id"`
	ConsultationFee float64   `json:"consultation_fee" db:"consultation_fee"`
}

type Medication struct {
	Base
	Name                 string  `json:"name" db:"name"`
	Description          string  `json:"description" db:"description"`
	Category             string  `json:"category" db:"category"`
	UnitPrice            float64 `json:"unit_price" db:"unit_price"`
	StockQuantity        int     `json:"stock_quantity" db:"stock_quantity"`
	RequiresPrescription bool    `json:"requires_prescription" db:"requires_prescription"`
}

type LabTestTemplate struct {
	Base
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Price       float64 `json:"price" db:"price"`
	Category    string  `json:"category" db:"category"`
}

type Pharmacy struct {
	Base
	Name         string     `json:"name" db:"name"`
	Location     string     `json:"location" db:"location"`
	Phone        string     `json:"phone" db:"phone"`
	Email        string     `json:"email" db:"email"`
	Latitude     float64    `json:"latitude" db:"latitude"`
	Longitude    float64    `json:"longitude" db:"longitude"`
	PharmacistID *uuid.UUID `json:"pharmacist_id,omitempty" db:"pharmacist_id"`
}

type CreateInsuranceRequest struct {
	Name               string  `json:"name" binding:"required"`
	CoveragePercentage float64 `json:"coverage_percentage" binding:"min=0,max=100"`
	Description        string  `json:"description"`
}

type CreateHospitalRequest struct {
	Name            string     `json:"name" binding:"required"`
	Location        string     `json:"location" binding:"required"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email" binding:"omitempty,email"`
	Description     string     `json:"description"`
	ConsultationFee float64    `json:"consultation_fee" binding:"min=0"`
	LabUserID       *uuid.UUID `json:"lab_user_id"`
}

type UpdateHospitalRequest struct {
	Name            *string    `json:"name"`
	Location        *string    `json:"location"`
	Phone           *string    `json:"phone"`
	Email           *string    `json:"email"`
	Description     *string    `json:"description"`
	ConsultationFee *float64   `json:"consultation_fee"`
	LabUserID       *uuid.UUID `json:"lab_user_id"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateHospitalDepartmentRequest struct {
	HospitalID      uuid.UUID `json:"hospital_id" binding:"required"`
	DepartmentID    uuid.UUID `json:"department_id" binding:"required"`
	ConsultationFee float64   `json:"consultation_fee" binding:"min=0"`
}

type CreateMedicationRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Description          string  `json:"description"`
	Category             string  `json:"category"`
	UnitPrice            float64 `json:"unit_price" binding:"min=0"`
	StockQuantity        int     `json:"stock_quantity" binding:"min=0"`
	RequiresPrescription bool    `json:"requires_prescription"`
}

type CreateLabTestTemplateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category"`
}

type CreatePharmacyRequest struct {
	Name         string     `json:"name" binding:"required"`
	Location     string     `json:"location" binding:"required"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email" binding:"omitempty,email"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	PharmacistID *uuid.UUID `json:"pharmacist_id"`
}
