package model

import (
	"github.com/google/uuid"
)

// Filters below are built by the per-family visibility scope functions
// in the services; repositories turn them into query predicates so the
// role restriction happens in the query, not as a post-filter.

type ConsultationFilters struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

type LabTestRequestFilters struct {
	PatientID   *uuid.UUID
	DoctorID    *uuid.UUID
	HospitalIDs []uuid.UUID
	Status      *LabTestStatus
}

type PrescriptionFilters struct {
	PatientID      *uuid.UUID
	DoctorID       *uuid.UUID
	ConsultationID *uuid.UUID
}

type PharmacyRequestFilters struct {
	PatientID   *uuid.UUID
	PharmacyIDs []uuid.UUID
	Status      *PharmacyRequestStatus
}

type PaymentFilters struct {
	PatientID   *uuid.UUID
	PaymentType *PaymentType
}

type VitalFilters struct {
	PatientID *uuid.UUID
	NurseID   *uuid.UUID
}
