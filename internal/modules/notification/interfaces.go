package notification

import (
	"context"

	"fixify/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
}

// Pusher delivers live events to connected users.
type Pusher interface {
	SendToUser(userID int64, event *Event)
}
