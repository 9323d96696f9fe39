package followerapp

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/core/errs"
	followerEntity "socialfeed/internal/core/follower"
	followerPort "socialfeed/internal/ports/follower"
	userPort "socialfeed/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	Logger             *zap.Logger
}

func NewFollowerService(repo followerPort.FollowerRepository, userRepo userPort.UserRepository, logger *zap.Logger) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		Logger:             logger,
	}
}

func (s *FollowerService) FollowUser(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		s.Logger.Warn("⚠️ Cannot follow yourself", zap.String("userID", followerID))
		return fmt.Errorf("%w: cannot follow yourself", errs.ErrInvalidInput)
	}
	followee, err := uuid.FromString(followeeID)
	if err != nil {
		return fmt.Errorf("%w: invalid followed_id", errs.ErrInvalidInput)
	}
	if _, err := s.UserRepository.FindByID(ctx, followeeID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("%w: user to follow does not exist", errs.ErrNotFound)
		}
		return s.internal("find followee", err)
	}

	f := &followerEntity.Follower{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     followee,
		FollowerID: uuid.FromStringOrNil(followerID),
	}
	if _, err := s.FollowerRepository.FollowUser(ctx, f); err != nil {
		return s.internal("follow user", err)
	}
	return nil
}

func (s *FollowerService) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	if err := s.FollowerRepository.UnfollowUser(ctx, followerID, followeeID); err != nil {
		return s.internal("unfollow user", err)
	}
	return nil
}

func (s *FollowerService) GetFollowersByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	followers, err := s.FollowerRepository.GetFollowersByUserID(ctx, userID)
	if err != nil {
		return nil, s.internal("list followers", err)
	}
	return toDTOs(followers), nil
}

func (s *FollowerService) GetFollowingByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	following, err := s.FollowerRepository.GetFollowingByUserID(ctx, userID)
	if err != nil {
		return nil, s.internal("list following", err)
	}
	return toDTOs(following), nil
}

func (s *FollowerService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	ok, err := s.FollowerRepository.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return false, s.internal("check following", err)
	}
	return ok, nil
}

func (s *FollowerService) internal(op string, err error) error {
	s.Logger.Error("❌ "+op+" failed", zap.Error(err))
	return fmt.Errorf("%w: %s", errs.ErrInternal, op)
}

// اگر slice خالی بود، آرایه‌ی خالی برمی‌گردد نه nil
func toDTOs(list []*followerEntity.Follower) []*followerPort.FollowerDTO {
	dtos := make([]*followerPort.FollowerDTO, 0, len(list))
	for _, f := range list {
		dtos = append(dtos, &followerPort.FollowerDTO{
			ID:         f.ID.String(),
			UserID:     f.UserID.String(),
			FollowerID: f.FollowerID.String(),
		})
	}
	return dtos
}
