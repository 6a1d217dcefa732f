package model

import (
	"github.com/google/uuid"
)

type Role string

const (
	RolePatient       Role = "patient"
	RoleDoctor        Role = "doctor"
	RoleLabTechnician Role = "lab_technician"
	RolePharmacist    Role = "pharmacist"
	RoleAdmin         Role = "admin"
	RoleNurse         Role = "nurse"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleLabTechnician, RolePharmacist, RoleAdmin, RoleNurse:
		return true
	}
	return false
}

// Profile is the base account record carrying a role. Emails are
// stored lowercased and matched case-insensitively.
type Profile struct {
	Base
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Role         Role       `json:"role" db:"role"`
	Phone        string     `json:"phone" db:"phone"`
	NationalID   *string    `json:"national_id,omitempty" db:"national_id"`
	InsuranceID  *uuid.UUID `json:"insurance_id,omitempty" db:"insurance_id"`
}

// Viewer is the authenticated identity attached to every request after
// the auth middleware resolves the bearer token.
type Viewer struct {
	ProfileID uuid.UUID
	Role      Role
}

func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

type RegisterRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	FullName   string  `json:"full_name" binding:"required"`
	Phone      string  `json:"phone"`
	NationalID *string `json:"national_id"`
	Role       Role    `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName    *string    `json:"full_name"`
	Phone       *string    `json:"phone"`
	NationalID  *string    `json:"national_id"`
	InsuranceID *uuid.UUID `json:"insurance_id"`
}
