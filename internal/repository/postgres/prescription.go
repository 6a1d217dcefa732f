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

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(db *sqlx.DB) *prescriptionRepository {
	return &prescriptionRepository{BaseRepository: NewBaseRepository(db)}
}

const prescriptionColumns = `pr.id, pr.consultation_id, pr.patient_id, pr.doctor_id, pr.pharmacy_id, pr.status, pr.medication_id, pr.quantity, pr.dosage, pr.unit_price, pr.total_price, pr.notes, pr.signature_data, pr.created_at, pr.updated_at`

// CreateBatch writes every prescription row of one prescribe action in
// a single transaction; any failure rolls back the whole batch.
func (r *prescriptionRepository) CreateBatch(ctx context.Context, prescriptions []*model.Prescription) error {
	now := time.Now()

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO prescriptions (
				id, consultation_id, patient_id, doctor_id, pharmacy_id, status,
				medication_id, quantity, dosage, unit_price, total_price,
				notes, signature_data, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`
		for _, p := range prescriptions {
			p.CreatedAt = now
			p.UpdatedAt = now
			if _, err := tx.ExecContext(ctx, insert,
				p.ID, p.ConsultationID, p.PatientID, p.DoctorID, p.PharmacyID,
				p.Status, p.MedicationID, p.Quantity, p.Dosage, p.UnitPrice,
				p.TotalPrice, p.Notes, p.SignatureData, p.CreatedAt, p.UpdatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var prescription model.Prescription
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions pr WHERE pr.id = $1`
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		return nil, notFoundOr(err, "prescription")
	}
	return &prescription, nil
}

const prescriptionDetailQuery = `
	SELECT ` + prescriptionColumns + `,
		   p.full_name AS patient_name, dp.full_name AS doctor_name,
		   m.name AS medication_name, ph.name AS pharmacy_name
	FROM prescriptions pr
	JOIN profiles p ON p.id = pr.patient_id
	JOIN doctors d ON d.id = pr.doctor_id
	JOIN profiles dp ON dp.id = d.user_id
	JOIN medications m ON m.id = pr.medication_id
	LEFT JOIN pharmacies ph ON ph.id = pr.pharmacy_id
`

func (r *prescriptionRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.PrescriptionDetail, error) {
	var detail model.PrescriptionDetail
	query := prescriptionDetailQuery + ` WHERE pr.id = $1`
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, notFoundOr(err, "prescription")
	}
	return &detail, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET pharmacy_id = $1, status = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`
	prescription.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		prescription.PharmacyID, prescription.Status, prescription.Notes,
		prescription.UpdatedAt, prescription.ID,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "prescription")
}

func (r *prescriptionRepository) List(ctx context.Context, filters *model.PrescriptionFilters) ([]*model.PrescriptionDetail, error) {
	query := prescriptionDetailQuery + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND pr.patient_id = $%d", argCount)
		args = append(args, *filters.PatientID)
		argCount++
	}
	if filters.DoctorID != nil {
		query += fmt.Sprintf(" AND pr.doctor_id = $%d", argCount)
		args = append(args, *filters.DoctorID)
		argCount++
	}
	if filters.ConsultationID != nil {
		query += fmt.Sprintf(" AND pr.consultation_id = $%d", argCount)
		args = append(args, *filters.ConsultationID)
		argCount++
	}

	query += " ORDER BY pr.created_at DESC"

	var prescriptions []*model.PrescriptionDetail
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) CreatePharmacyRequest(ctx context.Context, request *model.PharmacyRequest) error {
	query := `
		INSERT INTO pharmacy_requests (
			id, prescription_id, patient_id, pharmacy_id, status,
			rejection_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.PrescriptionID, request.PatientID, request.PharmacyID,
		request.Status, request.RejectionReason, request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "a pharmacy request already exists for this prescription and pharmacy")
	}
	return nil
}

func (r *prescriptionRepository) GetPharmacyRequest(ctx context.Context, id uuid.UUID) (*model.PharmacyRequest, error) {
	var request model.PharmacyRequest
	query := `
		SELECT id, prescription_id, patient_id, pharmacy_id, status,
			   rejection_reason, created_at, updated_at
		FROM pharmacy_requests WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, notFoundOr(err, "pharmacy request")
	}
	return &request, nil
}

func (r *prescriptionRepository) GetPharmacyRequestByPair(ctx context.Context, prescriptionID, pharmacyID uuid.UUID) (*model.PharmacyRequest, error) {
	var request model.PharmacyRequest
	query := `
		SELECT id, prescription_id, patient_id, pharmacy_id, status,
			   rejection_reason, created_at, updated_at
		FROM pharmacy_requests WHERE prescription_id = $1 AND pharmacy_id = $2
	`
	if err := r.db.GetContext(ctx, &request, query, prescriptionID, pharmacyID); err != nil {
		return nil, notFoundOr(err, "pharmacy request")
	}
	return &request, nil
}

func (r *prescriptionRepository) UpdatePharmacyRequest(ctx context.Context, request *model.PharmacyRequest) error {
	query := `
		UPDATE pharmacy_requests
		SET status = $1, rejection_reason = $2, updated_at = $3
		WHERE id = $4
	`
	request.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		request.Status, request.RejectionReason, request.UpdatedAt, request.ID,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "pharmacy request")
}

func (r *prescriptionRepository) ListPharmacyRequests(ctx context.Context, filters *model.PharmacyRequestFilters) ([]*model.PharmacyRequestDetail, error) {
	query := `
		SELECT q.id, q.prescription_id, q.patient_id, q.pharmacy_id, q.status,
			   q.rejection_reason, q.created_at, q.updated_at,
			   p.full_name AS patient_name, ph.name AS pharmacy_name,
			   m.name AS medication_name, pr.quantity, pr.dosage
		FROM pharmacy_requests q
		JOIN profiles p ON p.id = q.patient_id
		JOIN pharmacies ph ON ph.id = q.pharmacy_id
		JOIN prescriptions pr ON pr.id = q.prescription_id
		JOIN medications m ON m.id = pr.medication_id
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND q.patient_id = $%d", argCount)
		args = append(args, *filters.PatientID)
		argCount++
	}
	if filters.PharmacyIDs != nil {
		query += fmt.Sprintf(" AND q.pharmacy_id = ANY($%d)", argCount)
		args = append(args, pq.Array(filters.PharmacyIDs))
		argCount++
	}
	if filters.Status != nil {
		query += fmt.Sprintf(" AND q.status = $%d", argCount)
		args = append(args, *filters.Status)
		argCount++
	}

	query += " ORDER BY q.created_at DESC"

	var requests []*model.PharmacyRequestDetail
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return requests, nil
}
