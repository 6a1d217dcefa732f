package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type hospitalRepository struct {
	BaseRepository
}

func NewHospitalRepository(db *sqlx.DB) *hospitalRepository {
	return &hospitalRepository{BaseRepository: NewBaseRepository(db)}
}

const hospitalColumns = `id, name, location, phone, email, description, consultation_fee, lab_user_id, created_at, updated_at`

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (
			id, name, location, phone, email, description,
			consultation_fee, lab_user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	hospital.CreatedAt = now
	hospital.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID, hospital.Name, hospital.Location, hospital.Phone,
		hospital.Email, hospital.Description, hospital.ConsultationFee,
		hospital.LabUserID, hospital.CreatedAt, hospital.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	var hospital model.Hospital
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE id = $1`
	if err := r.db.GetContext(ctx, &hospital, query, id); err != nil {
		return nil, notFoundOr(err, "hospital")
	}
	return &hospital, nil
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *model.Hospital) error {
	query := `
		UPDATE hospitals
		SET name = $1, location = $2, phone = $3, email = $4, description = $5,
			consultation_fee = $6, lab_user_id = $7, updated_at = $8
		WHERE id = $9
	`
	hospital.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		hospital.Name, hospital.Location, hospital.Phone, hospital.Email,
		hospital.Description, hospital.ConsultationFee, hospital.LabUserID,
		hospital.UpdatedAt, hospital.ID,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "hospital")
}

func (r *hospitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hospitals WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "hospital")
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	var hospitals []*model.Hospital
	query := `SELECT ` + hospitalColumns + ` FROM hospitals ORDER BY name`
	if err := r.db.SelectContext(ctx, &hospitals, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return hospitals, nil
}

func (r *hospitalRepository) ListByLabUser(ctx context.Context, labUserID uuid.UUID) ([]*model.Hospital, error) {
	var hospitals []*model.Hospital
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE lab_user_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &hospitals, query, labUserID); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return hospitals, nil
}

type hospitalDepartmentRepository struct {
	BaseRepository
}

func NewHospitalDepartmentRepository(db *sqlx.DB) *hospitalDepartmentRepository {
	return &hospitalDepartmentRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *hospitalDepartmentRepository) Create(ctx context.Context, hd *model.HospitalDepartment) error {
	query := `
		INSERT INTO hospital_departments (id, hospital_id, department_id, consultation_fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	now := time.Now()
	hd.CreatedAt = now
	hd.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		hd.ID, hd.HospitalID, hd.DepartmentID, hd.ConsultationFee, hd.CreatedAt, hd.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "this department is already assigned to the hospital")
	}
	return nil
}

func (r *hospitalDepartmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.HospitalDepartment, error) {
	var hd model.HospitalDepartment
	query := `SELECT id, hospital_id, department_id, consultation_fee, created_at, updated_at FROM hospital_departments WHERE id = $1`
	if err := r.db.GetContext(ctx, &hd, query, id); err != nil {
		return nil, notFoundOr(err, "hospital department")
	}
	return &hd, nil
}

func (r *hospitalDepartmentRepository) Update(ctx context.Context, hd *model.HospitalDepartment) error {
	query := `UPDATE hospital_departments SET consultation_fee = $1, updated_at = $2 WHERE id = $3`
	hd.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, hd.ConsultationFee, hd.UpdatedAt, hd.ID)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "hospital department")
}

func (r *hospitalDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hospital_departments WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "hospital department")
}

func (r *hospitalDepartmentRepository) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.HospitalDepartment, error) {
	var hds []*model.HospitalDepartment
	query := `SELECT id, hospital_id, department_id, consultation_fee, created_at, updated_at FROM hospital_departments WHERE hospital_id = $1`
	if err := r.db.SelectContext(ctx, &hds, query, hospitalID); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return hds, nil
}
