package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) *appointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db)}
}

const appointmentColumns = `a.id, a.patient_id, a.doctor_id, a.hospital_id, a.department_id, a.appointment_date, a.appointment_time, a.status, a.reason, a.rejection_reason, a.created_at, a.updated_at`

const appointmentDetailQuery = `
	SELECT ` + appointmentColumns + `,
		   p.full_name AS patient_name, p.phone AS patient_phone,
		   dp.full_name AS doctor_name, d.specialization,
		   h.name AS hospital_name, dep.name AS department_name
	FROM appointments a
	JOIN profiles p ON p.id = a.patient_id
	JOIN doctors d ON d.id = a.doctor_id
	JOIN profiles dp ON dp.id = d.user_id
	JOIN hospitals h ON h.id = a.hospital_id
	JOIN departments dep ON dep.id = a.department_id
`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, hospital_id, department_id,
			appointment_date, appointment_time, status, reason,
			rejection_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID, appointment.PatientID, appointment.DoctorID,
		appointment.HospitalID, appointment.DepartmentID,
		appointment.AppointmentDate, appointment.AppointmentTime,
		appointment.Status, appointment.Reason, appointment.RejectionReason,
		appointment.CreatedAt, appointment.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "this time slot is already booked")
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	query := `SELECT ` + appointmentColumns + ` FROM appointments a WHERE a.id = $1`
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, notFoundOr(err, "appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error) {
	var detail model.AppointmentDetail
	query := appointmentDetailQuery + ` WHERE a.id = $1`
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, notFoundOr(err, "appointment")
	}
	return &detail, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, rejection_reason = $2, updated_at = $3
		WHERE id = $4
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Status, appointment.RejectionReason, appointment.UpdatedAt, appointment.ID,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "appointment")
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	query := appointmentDetailQuery + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND a.patient_id = $%d", argCount)
		args = append(args, *filters.PatientID)
		argCount++
	}
	if filters.DoctorID != nil {
		query += fmt.Sprintf(" AND a.doctor_id = $%d", argCount)
		args = append(args, *filters.DoctorID)
		argCount++
	}
	if filters.Status != nil {
		query += fmt.Sprintf(" AND a.status = $%d", argCount)
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Date != nil {
		query += fmt.Sprintf(" AND a.appointment_date = $%d", argCount)
		args = append(args, *filters.Date)
		argCount++
	}

	query += " ORDER BY a.appointment_date DESC, a.appointment_time DESC"

	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return appointments, nil
}

// ListBookedTimes returns the appointment_time values that block a
// slot for the doctor on the given date: only pending and approved
// bookings count.
func (r *appointmentRepository) ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	query := `
		SELECT appointment_time FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND status IN ('pending', 'approved')
	`
	var times []string
	if err := r.db.SelectContext(ctx, &times, query, doctorID, date); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return times, nil
}
