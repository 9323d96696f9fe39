package database

import (
	"context"
	"socialfeed/internal/core/notification"

	"gorm.io/gorm"
)

type NotificationRepositoryDatabase struct {
	DB *gorm.DB
}

func NewNotificationRepositoryDatabase(db *gorm.DB) *NotificationRepositoryDatabase {
	return &NotificationRepositoryDatabase{DB: db}
}

func (repo *NotificationRepositoryDatabase) Create(ctx context.Context, n *notification.Notification) error {
	return repo.DB.WithContext(ctx).Create(n).Error
}

// FindByRecipient اعلان‌های یک کاربر از جدید به قدیم
func (repo *NotificationRepositoryDatabase) FindByRecipient(ctx context.Context, userID string) ([]*notification.Notification, error) {
	var list []*notification.Notification
	if err := repo.DB.WithContext(ctx).
		Where("to_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (repo *NotificationRepositoryDatabase) MarkAllRead(ctx context.Context, userID string) error {
	return repo.DB.WithContext(ctx).Model(&notification.Notification{}).
		Where("to_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
