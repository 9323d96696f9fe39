package notification

import (
	"context"
	"socialfeed/internal/core/notification"
)

// NotificationRepository پورت ذخیره‌سازی اعلان‌ها
type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
	FindByRecipient(ctx context.Context, userID string) ([]*notification.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// Emitter records the notification side effect of a like transition.
type Emitter interface {
	EmitLike(ctx context.Context, ev notification.LikeEvent) (*notification.Notification, error)
}
