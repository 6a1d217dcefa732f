package model

import (
	"github.com/google/uuid"
)

// Vital is one set of vital signs recorded by a nurse for a patient.
type Vital struct {
	Base
	PatientID     uuid.UUID `json:"patient_id" db:"patient_id"`
	NurseID       uuid.UUID `json:"nurse_id" db:"nurse_id"`
	BloodPressure string    `json:"blood_pressure" db:"blood_pressure"`
	HeartRate     int       `json:"heart_rate" db:"heart_rate"`
	Temperature   float64   `json:"temperature" db:"temperature"`
	Weight        float64   `json:"weight" db:"weight"`
	Height        float64   `json:"height" db:"height"`
	Notes         string    `json:"notes" db:"notes"`
}

type VitalDetail struct {
	Vital
	PatientName string `json:"patient_name" db:"patient_name"`
	NurseName   string `json:"nurse_name" db:"nurse_name"`
}

type CreateVitalRequest struct {
	PatientID     uuid.UUID `json:"patient_id" binding:"required"`
	BloodPressure string    `json:"blood_pressure"`
	HeartRate     int       `json:"heart_rate" binding:"omitempty,gt=0"`
	Temperature   float64   `json:"temperature"`
	Weight        float64   `json:"weight"`
	Height        float64   `json:"height"`
	Notes         string    `json:"notes"`
}

type UpdateVitalRequest struct {
	BloodPressure *string  `json:"blood_pressure"`
	HeartRate     *int     `json:"heart_rate"`
	Temperature   *float64 `json:"temperature"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Notes         *string  `json:"notes"`
}
