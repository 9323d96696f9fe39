package database

import (
	"context"
	"socialfeed/internal/core/follower"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase پیاده‌سازی FollowerRepository برای دیتابیس
type FollowerRepositoryDatabase struct {
	DB *gorm.DB
}

// NewFollowerRepositoryDatabase سازنده FollowerRepositoryDatabase
func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{DB: db}
}

// FollowUser is idempotent: following twice keeps a single row.
func (repo *FollowerRepositoryDatabase) FollowUser(ctx context.Context, f *follower.Follower) (*follower.Follower, error) {
	if err := repo.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (repo *FollowerRepositoryDatabase) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	return repo.DB.WithContext(ctx).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Delete(&follower.Follower{}).Error
}

func (repo *FollowerRepositoryDatabase) GetFollowersByUserID(ctx context.Context, userID string) ([]*follower.Follower, error) {
	var followers []*follower.Follower
	if err := repo.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&followers).Error; err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowingByUserID(ctx context.Context, followerID string) ([]*follower.Follower, error) {
	var following []*follower.Follower
	if err := repo.DB.WithContext(ctx).Where("follower_id = ?", followerID).Find(&following).Error; err != nil {
		return nil, err
	}
	return following, nil
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	if err := repo.DB.WithContext(ctx).Model(&follower.Follower{}).
		Where("follower_id = ? AND user_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
