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

type vitalRepository struct {
	BaseRepository
}

func NewVitalRepository(db *sqlx.DB) *vitalRepository {
	return &vitalRepository{BaseRepository: NewBaseRepository(db)}
}

const vitalColumns = `v.id, v.patient_id, v.nurse_id, v.blood_pressure, v.heart_rate, v.temperature, v.weight, v.height, v.notes, v.created_at, v.updated_at`

func (r *vitalRepository) Create(ctx context.Context, vital *model.Vital) error {
	query := `
		INSERT INTO vitals (
			id, patient_id, nurse_id, blood_pressure, heart_rate,
			temperature, weight, height, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	now := time.Now()
	vital.CreatedAt = now
	vital.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		vital.ID, vital.PatientID, vital.NurseID, vital.BloodPressure,
		vital.HeartRate, vital.Temperature, vital.Weight, vital.Height,
		vital.Notes, vital.CreatedAt, vital.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *vitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Vital, error) {
	var vital model.Vital
	query := `SELECT ` + vitalColumns + ` FROM vitals v WHERE v.id = $1`
	if err := r.db.GetContext(ctx, &vital, query, id); err != nil {
		return nil, notFoundOr(err, "vital")
	}
	return &vital, nil
}

func (r *vitalRepository) Update(ctx context.Context, vital *model.Vital) error {
	query := `
		UPDATE vitals
		SET blood_pressure = $1, heart_rate = $2, temperature = $3,
			weight = $4, height = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`
	vital.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		vital.BloodPressure, vital.HeartRate, vital.Temperature,
		vital.Weight, vital.Height, vital.Notes, vital.UpdatedAt, vital.ID,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "vital")
}

func (r *vitalRepository) List(ctx context.Context, filters *model.VitalFilters) ([]*model.VitalDetail, error) {
	query := `
		SELECT ` + vitalColumns + `,
			   p.full_name AS patient_name, np.full_name AS nurse_name
		FROM vitals v
		JOIN profiles p ON p.id = v.patient_id
		JOIN nurses n ON n.id = v.nurse_id
		JOIN profiles np ON np.id = n.user_id
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND v.patient_id = $%d", argCount)
		args = append(args, *filters.PatientID)
		argCount++
	}
	if filters.NurseID != nil {
		query += fmt.Sprintf(" AND v.nurse_id = $%d", argCount)
		args = append(args, *filters.NurseID)
		argCount++
	}

	query += " ORDER BY v.created_at DESC"

	var vitals []*model.VitalDetail
	if err := r.db.SelectContext(ctx, &vitals, query, args...); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return vitals, nil
}
