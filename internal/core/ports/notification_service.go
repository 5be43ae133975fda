package ports

import (
	"context"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
)

// NotificationInput is the payload handed to the delivery pipeline when the
// system emits a notification.
type NotificationInput struct {
	UserID  string
	Title   string
	Message string
	Type    string
}

// ListNotificationsInput carries the caller-controlled inbox filters.
type ListNotificationsInput struct {
	UnreadOnly bool
	Skip       int
	Limit      int
}

// NotificationService defines inbox use cases plus the write path other
// services use to emit notifications.
type NotificationService interface {
	List(ctx context.Context, actor *domain.User, input ListNotificationsInput) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, actor *domain.User, id string) (*domain.Notification, error)
	// MarkAllRead reports the number of notifications flipped to read.
	MarkAllRead(ctx context.Context, actor *domain.User) (int64, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	// Deliver persists a system-emitted notification.
	Deliver(ctx context.Context, input NotificationInput) error
}

// NotificationDispatcher enqueues notifications for asynchronous delivery.
type NotificationDispatcher interface {
	Enqueue(input NotificationInput)
}
