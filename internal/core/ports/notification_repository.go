package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// ListNotificationsFilter carries the query parameters for a user's inbox.
type ListNotificationsFilter struct {
	UserID     string
	UnreadOnly bool
	Skip       int
	Limit      int
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	// FindForUser retrieves a notification only if it belongs to userID, so a
	// foreign notification is indistinguishable from a missing one.
	FindForUser(ctx context.Context, id, userID string) (*domain.Notification, error)
	// List returns the user's notifications, newest first.
	List(ctx context.Context, filter ListNotificationsFilter) ([]*domain.Notification, error)
	Update(ctx context.Context, notification *domain.Notification) error
	// MarkAllRead marks every unread notification of userID as read and
	// reports how many rows changed.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
