package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) *doctorRepository {
	return &doctorRepository{BaseRepository: NewBaseRepository(db)}
}

const doctorColumns = `d.id, d.user_id, d.hospital_id, d.department_id, d.specialization, d.license_number, d.consultation_fee, d.signature_data, d.created_at, d.updated_at`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, user_id, hospital_id, department_id, specialization,
			license_number, consultation_fee, signature_data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID, doctor.UserID, doctor.HospitalID, doctor.DepartmentID,
		doctor.Specialization, doctor.LicenseNumber, doctor.ConsultationFee,
		doctor.SignatureData, doctor.CreatedAt, doctor.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "a doctor with this user or license number already exists")
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	query := `SELECT ` + doctorColumns + ` FROM doctors d WHERE d.id = $1`
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, notFoundOr(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	query := `SELECT ` + doctorColumns + ` FROM doctors d WHERE d.user_id = $1`
	if err := r.db.GetContext(ctx, &doctor, query, userID); err != nil {
		return nil, notFoundOr(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.DoctorDetail, error) {
	query := `
		SELECT ` + doctorColumns + `,
			   p.full_name, p.email,
			   h.name AS hospital_name, dep.name AS department_name
		FROM doctors d
		JOIN profiles p ON p.id = d.user_id
		JOIN hospitals h ON h.id = d.hospital_id
		JOIN departments dep ON dep.id = d.department_id
		WHERE d.id = $1
	`
	var detail model.DoctorDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, notFoundOr(err, "doctor")
	}
	return &detail, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET hospital_id = $1, department_id = $2, specialization = $3,
			consultation_fee = $4, signature_data = $5, updated_at = $6
		WHERE id = $7
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.HospitalID, doctor.DepartmentID, doctor.Specialization,
		doctor.ConsultationFee, doctor.SignatureData, doctor.UpdatedAt, doctor.ID,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "doctor")
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "doctor")
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.DoctorDetail, error) {
	query := `
		SELECT ` + doctorColumns + `,
			   p.full_name, p.email,
			   h.name AS hospital_name, dep.name AS department_name
		FROM doctors d
		JOIN profiles p ON p.id = d.user_id
		JOIN hospitals h ON h.id = d.hospital_id
		JOIN departments dep ON dep.id = d.department_id
		ORDER BY p.full_name
	`
	var doctors []*model.DoctorDetail
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return doctors, nil
}

type nurseRepository struct {
	BaseRepository
}

func NewNurseRepository(db *sqlx.DB) *nurseRepository {
	return &nurseRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *nurseRepository) Create(ctx context.Context, nurse *model.Nurse) error {
	query := `
		INSERT INTO nurses (id, user_id, license_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	now := time.Now()
	nurse.CreatedAt = now
	nurse.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		nurse.ID, nurse.UserID, nurse.LicenseNumber, nurse.CreatedAt, nurse.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "a nurse with this user or license number already exists")
	}
	return nil
}

func (r *nurseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Nurse, error) {
	var nurse model.Nurse
	query := `SELECT id, user_id, license_number, created_at, updated_at FROM nurses WHERE id = $1`
	if err := r.db.GetContext(ctx, &nurse, query, id); err != nil {
		return nil, notFoundOr(err, "nurse")
	}
	return &nurse, nil
}

func (r *nurseRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Nurse, error) {
	var nurse model.Nurse
	query := `SELECT id, user_id, license_number, created_at, updated_at FROM nurses WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &nurse, query, userID); err != nil {
		return nil, notFoundOr(err, "nurse")
	}
	return &nurse, nil
}

func (r *nurseRepository) Update(ctx context.Context, nurse *model.Nurse) error {
	query := `UPDATE nurses SET license_number = $1, updated_at = $2 WHERE id = $3`
	nurse.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, nurse.LicenseNumber, nurse.UpdatedAt, nurse.ID)
	if err != nil {
		return conflictOr(err, "a nurse with this license number already exists")
	}
	return requireRow(result, "nurse")
}

func (r *nurseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM nurses WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "nurse")
}

func (r *nurseRepository) List(ctx context.Context) ([]*model.NurseDetail, error) {
	query := `
		SELECT n.id, n.user_id, n.license_number, n.created_at, n.updated_at,
			   p.full_name, p.email
		FROM nurses n
		JOIN profiles p ON p.id = n.user_id
		ORDER BY p.full_name
	`
	var nurses []*model.NurseDetail
	if err := r.db.SelectContext(ctx, &nurses, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return nurses, nil
}
