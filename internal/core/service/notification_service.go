package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// NotificationService implements the per-user inbox. Users only read, flag
// and delete their own notifications; new entries are written by the system
// through Deliver.
type NotificationService struct {
	notifications ports.NotificationRepository
	logger        zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, logger zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

func (s *NotificationService) List(ctx context.Context, actor *domain.User, input ports.ListNotificationsInput) ([]*domain.Notification, error) {
	return s.notifications.List(ctx, ports.ListNotificationsFilter{
		UserID:     actor.ID,
		UnreadOnly: input.UnreadOnly,
		Skip:       input.Skip,
		Limit:      input.Limit,
	})
}

func (s *NotificationService) MarkRead(ctx context.Context, actor *domain.User, id string) (*domain.Notification, error) {
	notification, err := s.notifications.FindForUser(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	notification.Read = true
	notification.UpdatedAt = time.Now().UTC()

	if err := s.notifications.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actor *domain.User) (int64, error) {
	return s.notifications.MarkAllRead(ctx, actor.ID)
}

func (s *NotificationService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.notifications.FindForUser(ctx, id, actor.ID); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}

// Deliver persists a system-emitted notification. Unknown types fall back to
// info.
func (s *NotificationService) Deliver(ctx context.Context, input ports.NotificationInput) error {
	kind := domain.NotificationType(input.Type)
	switch kind {
	case domain.NotificationInfo, domain.NotificationSuccess, domain.NotificationWarning, domain.NotificationError:
	default:
		kind = domain.NotificationInfo
	}

	now := time.Now().UTC()
	notification := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to deliver notification")
		return err
	}

	s.logger.Info().Str("notification_id", notification.ID).Str("user_id", input.UserID).Msg("notification delivered")
	return nil
}
