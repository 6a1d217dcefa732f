package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{BaseRepository: NewBaseRepository(db)}
}

const notificationColumns = `id, user_id, title, message, type, reference_id, is_read, created_at, updated_at`

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (
			id, user_id, title, message, type, reference_id, is_read, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.UserID, notification.Title, notification.Message,
		notification.Type, notification.ReferenceID, notification.IsRead,
		notification.CreatedAt, notification.UpdatedAt,
	)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	if err := r.db.GetContext(ctx, &notification, query, id); err != nil {
		return nil, notFoundOr(err, "notification")
	}
	return &notification, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	var notifications []*model.Notification
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, apperrors.Unexpected(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, apperrors.Unexpected(err)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, updated_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return apperrors.Unexpected(err)
	}
	return requireRow(result, "notification")
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, updated_at = $1 WHERE user_id = $2 AND is_read = false`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), userID); err != nil {
		return apperrors.Unexpected(err)
	}
	return nil
}
