package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type pharmacyRepository struct {
	BaseRepository
}

func NewPharmacyRepository(db *sqlx.DB) *pharmacyRepository {
	return &pharmacyRepository{BaseRepository: NewBaseRepository(db)}
}

const pharmacyColumns = `id, name, location, phone, email, latitude, longitude, pharmacist_id, created_at, updated_at`

func (r *pharmacyRepository) Create(ctx context.Context, pharmacy *model.Pharmacy) error {
	query := `
		INSERT INTO pharmacies (
			id, name, location, phone, email, latitude, longitude,
			pharmacist_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	pharmacy.CreatedAt = now
	pharmacy.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		pharmacy.ID, pharmacy.Name, pharmacy.Location, pharmacy.Phone, pharmacy.Email,
		pharmacy.Latitude, pharmacy.Longitude, pharmacy.PharmacistID,
		pharmacy.CreatedAt, pharmacy.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *pharmacyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Pharmacy, error) {
	var pharmacy model.Pharmacy
	query := `SELECT ` + pharmacyColumns + ` FROM pharmacies WHERE id = $1`
	if err := r.db.GetContext(ctx, &pharmacy, query, id); err != nil {
		return nil, notFoundOr(err, "pharmacy")
	}
	return &pharmacy, nil
}

func (r *pharmacyRepository) Update(ctx context.Context, pharmacy *model.Pharmacy) error {
	query := `
		UPDATE pharmacies
		SET name = $1, location = $2, phone = $3, email = $4,
			latitude = $5, longitude = $6, pharmacist_id = $7, updated_at = $8
		WHERE id = $9
	`
	pharmacy.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		pharmacy.Name, pharmacy.Location, pharmacy.Phone, pharmacy.Email,
		pharmacy.Latitude, pharmacy.Longitude, pharmacy.PharmacistID,
		pharmacy.UpdatedAt, pharmacy.ID,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "pharmacy")
}

func (r *pharmacyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pharmacies WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "pharmacy")
}

func (r *pharmacyRepository) List(ctx context.Context) ([]*model.Pharmacy, error) {
	var pharmacies []*model.Pharmacy
	query := `SELECT ` + pharmacyColumns + ` FROM pharmacies ORDER BY name`
	if err := r.db.SelectContext(ctx, &pharmacies, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return pharmacies, nil
}

func (r *pharmacyRepository) ListByPharmacist(ctx context.Context, pharmacistID uuid.UUID) ([]*model.Pharmacy, error) {
	var pharmacies []*model.Pharmacy
	query := `SELECT ` + pharmacyColumns + ` FROM pharmacies WHERE pharmacist_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &pharmacies, query, pharmacistID); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return pharmacies, nil
}
