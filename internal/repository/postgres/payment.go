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

type paymentRepository struct {
	BaseRepository
}

func NewPaymentRepository(db *sqlx.DB) *paymentRepository {
	return &paymentRepository{BaseRepository: NewBaseRepository(db)}
}

const paymentColumns = `id, patient_id, payment_type, reference_id, amount, insurance_coverage, patient_pays, status, payment_method, transaction_id, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (
			id, patient_id, payment_type, reference_id, amount,
			insurance_coverage, patient_pays, status, payment_method,
			transaction_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.PatientID, payment.PaymentType, payment.ReferenceID,
		payment.Amount, payment.InsuranceCoverage, payment.PatientPays,
		payment.Status, payment.PaymentMethod, payment.TransactionID,
		payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, notFoundOr(err, "payment")
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filters *model.PaymentFilters) ([]*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, *filters.PatientID)
		argCount++
	}
	if filters.PaymentType != nil {
		query += fmt.Sprintf(" AND payment_type = $%d", argCount)
		args = append(args, *filters.PaymentType)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	var payments []*model.Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return payments, nil
}
