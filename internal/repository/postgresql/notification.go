package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/notification"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, visibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := GetQuerier(ctx, r.db).QueryRow(ctx, query,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.Visibility,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, visibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	for _, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		err := GetQuerier(ctx, r.db).QueryRow(ctx, query,
			n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.Visibility,
		).Scan(&n.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create notification batch: %w", err)
		}
	}

	return nil
}

func (r *NotificationRepository) GetByRecipient(ctx context.Context, userID string, page, pageSize int) ([]*notification.Notification, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, recipient_id, sender_id, type, title, message, visibility, is_read, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	offset := (page - 1) * pageSize
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message,
			&n.Visibility, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, total, nil
}

func (r *NotificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`

	var count int
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
