package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type tokenRepository struct {
	BaseRepository
}

func NewTokenRepository(db *sqlx.DB) *tokenRepository {
	return &tokenRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *tokenRepository) StoreResetToken(ctx context.Context, profileID uuid.UUID, token string, expiry time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (token, profile_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, token, profileID, expiry, time.Now()); err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *tokenRepository) ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	query := `
		SELECT profile_id FROM password_reset_tokens
		WHERE token = $1 AND expires_at > $2
	`
	var profileID uuid.UUID
	if err := r.db.GetContext(ctx, &profileID, query, token, time.Now()); err != nil {
		return uuid.Nil, notFoundOr(err, "reset token")
	}
	return profileID, nil
}

func (r *tokenRepository) InvalidateResetToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE token = $1`, token); err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}
