package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

// Lookup-entity repositories: insurances, departments, medications and
// lab test templates share the same simple CRUD shape.

type insuranceRepository struct {
	BaseRepository
}

func NewInsuranceRepository(db *sqlx.DB) *insuranceRepository {
	return &insuranceRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *insuranceRepository) Create(ctx context.Context, insurance *model.Insurance) error {
	query := `
		INSERT INTO insurances (id, name, coverage_percentage, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	now := time.Now()
	insurance.CreatedAt = now
	insurance.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		insurance.ID, insurance.Name, insurance.CoveragePercentage,
		insurance.Description, insurance.CreatedAt, insurance.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "an insurance with this name already exists")
	}
	return nil
}

func (r *insuranceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Insurance, error) {
	var insurance model.Insurance
	query := `SELECT id, name, coverage_percentage, description, created_at, updated_at FROM insurances WHERE id = $1`
	if err := r.db.GetContext(ctx, &insurance, query, id); err != nil {
		return nil, notFoundOr(err, "insurance")
	}
	return &insurance, nil
}

func (r *insuranceRepository) Update(ctx context.Context, insurance *model.Insurance) error {
	query := `
		UPDATE insurances SET name = $1, coverage_percentage = $2, description = $3, updated_at = $4
		WHERE id = $5
	`
	insurance.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		insurance.Name, insurance.CoveragePercentage, insurance.Description,
		insurance.UpdatedAt, insurance.ID,
	)
	if err != nil {
		return conflictOr(err, "an insurance with this name already exists")
	}
	return requireRow(result, "insurance")
}

func (r *insuranceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM insurances WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "insurance")
}

func (r *insuranceRepository) List(ctx context.Context) ([]*model.Insurance, error) {
	var insurances []*model.Insurance
	query := `SELECT id, name, coverage_percentage, description, created_at, updated_at FROM insurances ORDER BY name`
	if err := r.db.SelectContext(ctx, &insurances, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return insurances, nil
}

type departmentRepository struct {
	BaseRepository
}

func NewDepartmentRepository(db *sqlx.DB) *departmentRepository {
	return &departmentRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	query := `
		INSERT INTO departments (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	now := time.Now()
	department.CreatedAt = now
	department.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		department.ID, department.Name, department.Description,
		department.CreatedAt, department.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "a department with this name already exists")
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	var department model.Department
	query := `SELECT id, name, description, created_at, updated_at FROM departments WHERE id = $1`
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, notFoundOr(err, "department")
	}
	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	query := `UPDATE departments SET name = $1, description = $2, updated_at = $3 WHERE id = $4`
	department.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		department.Name, department.Description, department.UpdatedAt, department.ID,
	)
	if err != nil {
		return conflictOr(err, "a department with this name already exists")
	}
	return requireRow(result, "department")
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "department")
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	var departments []*model.Department
	query := `SELECT id, name, description, created_at, updated_at FROM departments ORDER BY name`
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return departments, nil
}

type medicationRepository struct {
	BaseRepository
}

func NewMedicationRepository(db *sqlx.DB) *medicationRepository {
	return &medicationRepository{BaseRepository: NewBaseRepository(db)}
}

const medicationColumns = `id, name, description, category, unit_price, stock_quantity, requires_prescription, created_at, updated_at`

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	query := `
		INSERT INTO medications (
			id, name, description, category, unit_price,
			stock_quantity, requires_prescription, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now()
	medication.CreatedAt = now
	medication.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		medication.ID, medication.Name, medication.Description, medication.Category,
		medication.UnitPrice, medication.StockQuantity, medication.RequiresPrescription,
		medication.CreatedAt, medication.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "a medication with this name already exists")
	}
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	var medication model.Medication
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE id = $1`
	if err := r.db.GetContext(ctx, &medication, query, id); err != nil {
		return nil, notFoundOr(err, "medication")
	}
	return &medication, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *model.Medication) error {
	query := `
		UPDATE medications
		SET name = $1, description = $2, category = $3, unit_price = $4,
			stock_quantity = $5, requires_prescription = $6, updated_at = $7
		WHERE id = $8
	`
	medication.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		medication.Name, medication.Description, medication.Category, medication.UnitPrice,
		medication.StockQuantity, medication.RequiresPrescription, medication.UpdatedAt, medication.ID,
	)
	if err != nil {
		return conflictOr(err, "a medication with this name already exists")
	}
	return requireRow(result, "medication")
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "medication")
}

func (r *medicationRepository) List(ctx context.Context) ([]*model.Medication, error) {
	var medications []*model.Medication
	query := `SELECT ` + medicationColumns + ` FROM medications ORDER BY name`
	if err := r.db.SelectContext(ctx, &medications, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return medications, nil
}

type labTestTemplateRepository struct {
	BaseRepository
}

func NewLabTestTemplateRepository(db *sqlx.DB) *labTestTemplateRepository {
	return &labTestTemplateRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *labTestTemplateRepository) Create(ctx context.Context, template *model.LabTestTemplate) error {
	query := `
		INSERT INTO lab_test_templates (id, name, description, price, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		template.ID, template.Name, template.Description, template.Price,
		template.Category, template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "a lab test template with this name already exists")
	}
	return nil
}

func (r *labTestTemplateRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabTestTemplate, error) {
	var template model.LabTestTemplate
	query := `SELECT id, name, description, price, category, created_at, updated_at FROM lab_test_templates WHERE id = $1`
	if err := r.db.GetContext(ctx, &template, query, id); err != nil {
		return nil, notFoundOr(err, "lab test template")
	}
	return &template, nil
}

func (r *labTestTemplateRepository) Update(ctx context.Context, template *model.LabTestTemplate) error {
	query := `
		UPDATE lab_test_templates SET name = $1, description = $2, price = $3, category = $4, updated_at = $5
		WHERE id = $6
	`
	template.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		template.Name, template.Description, template.Price, template.Category,
		template.UpdatedAt, template.ID,
	)
	if err != nil {
		return conflictOr(err, "a lab test template with this name already exists")
	}
	return requireRow(result, "lab test template")
}

func (r *labTestTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lab_test_templates WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "lab test template")
}

func (r *labTestTemplateRepository) List(ctx context.Context) ([]*model.LabTestTemplate, error) {
	var templates []*model.LabTestTemplate
	query := `SELECT id, name, description, price, category, created_at, updated_at FROM lab_test_templates ORDER BY name`
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return templates, nil
}
