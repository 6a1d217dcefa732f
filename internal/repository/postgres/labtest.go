package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type labTestRepository struct {
	BaseRepository
}

func NewLabTestRepository(db *sqlx.DB) *labTestRepository {
	return &labTestRepository{BaseRepository: NewBaseRepository(db)}
}

const labRequestColumns = `r.id, r.consultation_id, r.patient_id, r.doctor_id, r.lab_test_template_id, r.hospital_id, r.status, r.total_price, r.created_at, r.updated_at`

func (r *labTestRepository) CreateRequest(ctx context.Context, request *model.LabTestRequest) error {
	query := `
		INSERT INTO lab_test_requests (
			id, consultation_id, patient_id, doctor_id, lab_test_template_id,
			hospital_id, status, total_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.ConsultationID, request.PatientID, request.DoctorID,
		request.LabTestTemplateID, request.HospitalID, request.Status,
		request.TotalPrice, request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *labTestRepository) GetRequest(ctx context.Context, id uuid.UUID) (*model.LabTestRequest, error) {
	var request model.LabTestRequest
	query := `SELECT ` + labRequestColumns + ` FROM lab_test_requests r WHERE r.id = $1`
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, notFoundOr(err, "lab test request")
	}
	return &request, nil
}

const labRequestDetailQuery = `
	SELECT ` + labRequestColumns + `,
		   p.full_name AS patient_name, dp.full_name AS doctor_name,
		   t.name AS test_name, t.category AS test_category,
		   COALESCE(h.name, '') AS hospital_name
	FROM lab_test_requests r
	JOIN profiles p ON p.id = r.patient_id
	JOIN doctors d ON d.id = r.doctor_id
	JOIN profiles dp ON dp.id = d.user_id
	JOIN lab_test_templates t ON t.id = r.lab_test_template_id
	LEFT JOIN hospitals h ON h.id = r.hospital_id
`

func (r *labTestRepository) GetRequestDetail(ctx context.Context, id uuid.UUID) (*model.LabTestRequestDetail, error) {
	var detail model.LabTestRequestDetail
	query := labRequestDetailQuery + ` WHERE r.id = $1`
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, notFoundOr(err, "lab test request")
	}
	return &detail, nil
}

func (r *labTestRepository) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status model.LabTestStatus) error {
	query := `UPDATE lab_test_requests SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "lab test request")
}

func (r *labTestRepository) ListRequests(ctx context.Context, filters *model.LabTestRequestFilters) ([]*model.LabTestRequestDetail, error) {
	query := labRequestDetailQuery + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND r.patient_id = $%d", argCount)
		args = append(args, *filters.PatientID)
		argCount++
	}
	if filters.DoctorID != nil {
		query += fmt.Sprintf(" AND r.doctor_id = $%d", argCount)
		args = append(args, *filters.DoctorID)
		argCount++
	}
	if filters.HospitalIDs != nil {
		query += fmt.Sprintf(" AND r.hospital_id = ANY($%d)", argCount)
		args = append(args, pq.Array(filters.HospitalIDs))
		argCount++
	}
	if filters.Status != nil {
		query += fmt.Sprintf(" AND r.status = $%d", argCount)
		args = append(args, *filters.Status)
		argCount++
	}

	query += " ORDER BY r.created_at DESC"

	var requests []*model.LabTestRequestDetail
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return requests, nil
}

// CreateResult inserts the result row and flips the parent request to
// completed. Both writes commit or roll back together.
func (r *labTestRepository) CreateResult(ctx context.Context, result *model.LabTestResult) error {
	now := time.Now()
	result.CreatedAt = now
	result.UpdatedAt = now

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO lab_test_results (
				id, lab_test_request_id, technician_id, result_status,
				result_data, notes, completed_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.ExecContext(ctx, insert,
			result.ID, result.LabTestRequestID, result.TechnicianID,
			result.ResultStatus, result.ResultData, result.Notes,
			result.CompletedAt, result.CreatedAt, result.UpdatedAt,
		); err != nil {
			return err
		}

		complete := `UPDATE lab_test_requests SET status = $1, updated_at = $2 WHERE id = $3`
		_, err := tx.ExecContext(ctx, complete, model.LabTestStatusCompleted, now, result.LabTestRequestID)
		return err
	})
	if err != nil {
		return conflictOr(err, "a result already exists for this lab test request")
	}
	return nil
}

func (r *labTestRepository) GetResult(ctx context.Context, id uuid.UUID) (*model.LabTestResult, error) {
	var result model.LabTestResult
	query := `
		SELECT id, lab_test_request_id, technician_id, result_status,
			   result_data, notes, completed_at, created_at, updated_at
		FROM lab_test_results WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, notFoundOr(err, "lab test result")
	}
	return &result, nil
}

func (r *labTestRepository) GetResultByRequest(ctx context.Context, requestID uuid.UUID) (*model.LabTestResult, error) {
	var result model.LabTestResult
	query := `
		SELECT id, lab_test_request_id, technician_id, result_status,
			   result_data, notes, completed_at, created_at, updated_at
		FROM lab_test_results WHERE lab_test_request_id = $1
	`
	if err := r.db.GetContext(ctx, &result, query, requestID); err != nil {
		return nil, notFoundOr(err, "lab test result")
	}
	return &result, nil
}
