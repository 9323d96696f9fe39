package notificationapp

import (
	"context"
	"fmt"

	"socialfeed/internal/core/errs"
	notificationEntity "socialfeed/internal/core/notification"
	notificationPort "socialfeed/internal/ports/notification"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type NotificationService struct {
	NotificationRepository notificationPort.NotificationRepository
	Logger                 *zap.Logger
}

func NewNotificationService(repo notificationPort.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		NotificationRepository: repo,
		Logger:                 logger,
	}
}

var _ notificationPort.Emitter = (*NotificationService)(nil)

// EmitLike ثبت دقیقاً یک اعلان از نوع like؛ لایک کردن پست خود هم اعلان دارد
func (s *NotificationService) EmitLike(ctx context.Context, ev notificationEntity.LikeEvent) (*notificationEntity.Notification, error) {
	from, err := uuid.FromString(ev.From)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from id", errs.ErrInvalidInput)
	}
	to, err := uuid.FromString(ev.To)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to id", errs.ErrInvalidInput)
	}

	n := &notificationEntity.Notification{
		ID:     uuid.Must(uuid.NewV4()),
		FromID: from,
		ToID:   to,
		PostID: ev.PostID,
		Type:   notificationEntity.TypeLike,
	}
	if err := s.NotificationRepository.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("save like notification: %w", err)
	}

	s.Logger.Info("🔔 Like notification created",
		zap.String("from", ev.From), zap.String("to", ev.To), zap.String("postID", ev.PostID))
	return n, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]*notificationEntity.Notification, error) {
	list, err := s.NotificationRepository.FindByRecipient(ctx, userID)
	if err != nil {
		s.Logger.Error("❌ Error fetching notifications", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: list notifications", errs.ErrInternal)
	}
	if list == nil {
		list = []*notificationEntity.Notification{}
	}
	return list, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.NotificationRepository.MarkAllRead(ctx, userID); err != nil {
		s.Logger.Error("❌ Error marking notifications read", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("%w: mark notifications read", errs.ErrInternal)
	}
	return nil
}
