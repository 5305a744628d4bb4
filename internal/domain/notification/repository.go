package notification

import "context"

// Repository defines the notification store interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByRecipient(ctx context.Context, userID string, page, pageSize int) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
}
