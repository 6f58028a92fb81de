package repository

import (
	"context"

	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	coreEntity "github.com/EngStrategy/arenahub-backend-sub000/core/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/params"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// NotificationRepositoryInterface defines the repository contract
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByActorID(ctx context.Context, actorID uuid.UUID, qp *params.QueryParams) (*entity.PaginatedNotifications, error)
	MarkAsRead(ctx context.Context, actorID uuid.UUID, ids []uuid.UUID) error
	MarkAllAsRead(ctx context.Context, actorID uuid.UUID) error
	CountUnread(ctx context.Context, actorID uuid.UUID) (int, error)
}

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (actor_id, title, message, type, data, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.GetContext(ctx, notification, query,
		notification.ActorID, notification.Title, notification.Message,
		notification.Type, notification.Data, notification.IsRead)
	if err != nil {
		logger.Error("NotificationRepository:Create", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) GetByActorID(ctx context.Context, actorID uuid.UUID, qp *params.QueryParams) (*entity.PaginatedNotifications, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM notifications WHERE actor_id = $1`, actorID)
	if err != nil {
		logger.Error("NotificationRepository:GetByActorID:Count", "error", err)
		return nil, err
	}

	query := `
		SELECT id, actor_id, title, message, type, data, is_read, created_at, updated_at
		FROM notifications
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []entity.Notification
	err = r.db.SelectContext(ctx, &notifications, query, actorID, qp.Limit, qp.Offset())
	if err != nil {
		logger.Error("NotificationRepository:GetByActorID:Select", "error", err)
		return nil, err
	}

	return coreEntity.NewPagination(notifications, total, qp.Page, qp.Limit), nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, actorID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		`UPDATE notifications SET is_read = true, updated_at = NOW() WHERE actor_id = ? AND id IN (?)`,
		actorID, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("NotificationRepository:MarkAsRead", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, actorID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, updated_at = NOW() WHERE actor_id = $1`
	if err := r.db.ExecContext(ctx, query, actorID); err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, actorID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE actor_id = $1 AND is_read = false`
	if err := r.db.GetContext(ctx, &count, query, actorID); err != nil {
		logger.Error("NotificationRepository:CountUnread", "error", err)
		return 0, err
	}
	return count, nil
}
