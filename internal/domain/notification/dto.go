package notification

import "time"

// NotifyRequest describes one fan-out: who (scope + targets, minus the
// excluded user) and what (type, title, message, visibility level).
type NotifyRequest struct {
	Scope         Scope
	TargetIDs     []string
	SenderID      *string
	Type          NotificationType
	Title         string
	Message       string
	Visibility    string
	ExcludeUserID *string
}

type NotificationResponse struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type ListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}
