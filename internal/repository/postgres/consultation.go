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

type consultationRepository struct {
	BaseRepository
}

func NewConsultationRepository(db *sqlx.DB) *consultationRepository {
	return &consultationRepository{BaseRepository: NewBaseRepository(db)}
}

const consultationColumns = `c.id, c.appointment_id, c.patient_id, c.doctor_id, c.diagnosis, c.notes, c.requires_lab_test, c.requires_prescription, c.consultation_date, c.created_at, c.updated_at`

// Create inserts the consultation and marks the parent appointment
// completed. Both writes commit or roll back together.
func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	now := time.Now()
	consultation.CreatedAt = now
	consultation.UpdatedAt = now

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO consultations (
				id, appointment_id, patient_id, doctor_id, diagnosis, notes,
				requires_lab_test, requires_prescription, consultation_date,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		if _, err := tx.ExecContext(ctx, insert,
			consultation.ID, consultation.AppointmentID, consultation.PatientID,
			consultation.DoctorID, consultation.Diagnosis, consultation.Notes,
			consultation.RequiresLabTest, consultation.RequiresPrescription,
			consultation.ConsultationDate, consultation.CreatedAt, consultation.UpdatedAt,
		); err != nil {
			return err
		}

		complete := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`
		_, err := tx.ExecContext(ctx, complete, model.AppointmentStatusCompleted, now, consultation.AppointmentID)
		return err
	})
	if err != nil {
		return conflictOr(err, "a consultation already exists for this appointment")
	}
	return nil
}

func (r *consultationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error) {
	var consultation model.Consultation
	query := `SELECT ` + consultationColumns + ` FROM consultations c WHERE c.id = $1`
	if err := r.db.GetContext(ctx, &consultation, query, id); err != nil {
		return nil, notFoundOr(err, "consultation")
	}
	return &consultation, nil
}

func (r *consultationRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Consultation, error) {
	var consultation model.Consultation
	query := `SELECT ` + consultationColumns + ` FROM consultations c WHERE c.appointment_id = $1`
	if err := r.db.GetContext(ctx, &consultation, query, appointmentID); err != nil {
		return nil, notFoundOr(err, "consultation")
	}
	return &consultation, nil
}

const consultationDetailQuery = `
	SELECT ` + consultationColumns + `,
		   p.full_name AS patient_name, dp.full_name AS doctor_name,
		   a.appointment_date, a.appointment_time
	FROM consultations c
	JOIN profiles p ON p.id = c.patient_id
	JOIN doctors d ON d.id = c.doctor_id
	JOIN profiles dp ON dp.id = d.user_id
	JOIN appointments a ON a.id = c.appointment_id
`

func (r *consultationRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.ConsultationDetail, error) {
	var detail model.ConsultationDetail
	query := consultationDetailQuery + ` WHERE c.id = $1`
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, notFoundOr(err, "consultation")
	}
	return &detail, nil
}

func (r *consultationRepository) List(ctx context.Context, filters *model.ConsultationFilters) ([]*model.ConsultationDetail, error) {
	query := consultationDetailQuery + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND c.patient_id = $%d", argCount)
		args = append(args, *filters.PatientID)
		argCount++
	}
	if filters.DoctorID != nil {
		query += fmt.Sprintf(" AND c.doctor_id = $%d", argCount)
		args = append(args, *filters.DoctorID)
		argCount++
	}

	query += " ORDER BY c.consultation_date DESC"

	var consultations []*model.ConsultationDetail
	if err := r.db.SelectContext(ctx, &consultations, query, args...); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return consultations, nil
}
