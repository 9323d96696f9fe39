package database

import (
	"context"
	"socialfeed/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikedPostRepositoryDatabase mirror سمت کاربر برای لایک‌ها
type LikedPostRepositoryDatabase struct {
	DB *gorm.DB
}

func NewLikedPostRepositoryDatabase(db *gorm.DB) *LikedPostRepositoryDatabase {
	return &LikedPostRepositoryDatabase{DB: db}
}

func (repo *LikedPostRepositoryDatabase) Add(ctx context.Context, userID, postID string) error {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return err
	}
	row := &user.LikedPost{UserID: uid, PostID: postID}
	return repo.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func (repo *LikedPostRepositoryDatabase) Remove(ctx context.Context, userID, postID string) error {
	return repo.DB.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&user.LikedPost{}).Error
}

func (repo *LikedPostRepositoryDatabase) PostIDsByUser(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	if err := repo.DB.WithContext(ctx).Model(&user.LikedPost{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *LikedPostRepositoryDatabase) All(ctx context.Context) ([]*user.LikedPost, error) {
	rows := []*user.LikedPost{}
	if err := repo.DB.WithContext(ctx).Order("user_id, post_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
