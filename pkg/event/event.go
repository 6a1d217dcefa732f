package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type identifies a domain event emitted by a workflow transition.
type Type string

const (
	TypeAppointmentCreated     Type = "appointment.created"
	TypeAppointmentDecided     Type = "appointment.decided"
	TypeLabResultRecorded      Type = "lab_result.recorded"
	TypePrescriptionDispatched Type = "prescription.dispatched"
)

// Event is a single domain event with its typed payload.
type Event struct {
	ID         uuid.UUID
	Type       Type
	OccurredAt time.Time
	Payload    interface{}
}

// AppointmentCreated is emitted once per new appointment; the doctor's
// user account receives the resulting notification.
type AppointmentCreated struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	DoctorUserID  uuid.UUID `json:"doctor_user_id"`
	PatientName   string    `json:"patient_name"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
}

// AppointmentDecided is emitted when an appointment is approved or
// rejected; the patient receives the resulting notification.
type AppointmentDecided struct {
	AppointmentID   uuid.UUID `json:"appointment_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
}

// LabResultRecorded is emitted when a technician records a result.
type LabResultRecorded struct {
	RequestID uuid.UUID `json:"lab_test_request_id"`
	ResultID  uuid.UUID `json:"lab_test_result_id"`
	PatientID uuid.UUID `json:"patient_id"`
	TestName  string    `json:"test_name"`
}

// PrescriptionDispatched is emitted when a prescription is assigned to
// a pharmacy and a pharmacy request is created.
type PrescriptionDispatched struct {
	PrescriptionID    uuid.UUID `json:"prescription_id"`
	PharmacyRequestID uuid.UUID `json:"pharmacy_request_id"`
	PatientID         uuid.UUID `json:"patient_id"`
	PharmacyID        uuid.UUID `json:"pharmacy_id"`
}

// Handler consumes dispatched events. Handler errors are logged by the
// dispatcher and never fail the emitting operation.
type Handler interface {
	Handle(ctx context.Context, evt Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt Event) error

func (f HandlerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Emitter is the side workflow services see: fire one event per
// tracked transition.
type Emitter interface {
	Emit(ctx context.Context, typ Type, payload interface{}) error
}
