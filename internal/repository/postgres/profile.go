package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type profileRepository struct {
	BaseRepository
}

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{BaseRepository: NewBaseRepository(db)}
}

const profileColumns = `id, email, password_hash, full_name, role, phone, national_id, insurance_id, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, password_hash, full_name, role,
			phone, national_id, insurance_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.PasswordHash,
		profile.FullName,
		profile.Role,
		profile.Phone,
		profile.NationalID,
		profile.InsuranceID,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return conflictOr(err, "a profile with this email or national id already exists")
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, notFoundOr(err, "profile")
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = lower(trim($1))`

	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, email); err != nil {
		return nil, notFoundOr(err, "profile")
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, phone = $2, national_id = $3,
			insurance_id = $4, password_hash = $5, updated_at = $6
		WHERE id = $7
	`
	profile.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		profile.FullName,
		profile.Phone,
		profile.NationalID,
		profile.InsuranceID,
		profile.PasswordHash,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return conflictOr(err, "a profile with this national id already exists")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Unexpected(err)
	}
	if rows == 0 {
		return apperrors.NotFound("profile")
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unexpected(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Unexpected(err)
	}
	if rows == 0 {
		return apperrors.NotFound("profile")
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	var profiles []*model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return profiles, nil
}

func (r *profileRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles WHERE role = $1`, role); err != nil {
		return 0, apperrors.Unexpected(err)
	}
	return count, nil
}
