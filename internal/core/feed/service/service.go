package feedapp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"socialfeed/internal/core/errs"
	postEntity "socialfeed/internal/core/post"
	userEntity "socialfeed/internal/core/user"
	followerPort "socialfeed/internal/ports/follower"
	postPort "socialfeed/internal/ports/post"
	userPort "socialfeed/internal/ports/user"

	"go.uber.org/zap"
)

// FeedService builds the read-only feed views. Every author and comment
// author in its output goes through userPort.UserDTO, which has no
// credential fields.
type FeedService struct {
	PostRepository      postPort.PostRepository
	UserRepository      userPort.UserRepository
	FollowerRepository  followerPort.FollowerRepository
	LikedPostRepository userPort.LikedPostRepository
	ProfileCache        userPort.ProfileCache // اختیاری؛ nil یعنی بدون کش
	Logger              *zap.Logger
}

func NewFeedService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
	likedRepo userPort.LikedPostRepository,
	cache userPort.ProfileCache,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		PostRepository:      postRepo,
		UserRepository:      userRepo,
		FollowerRepository:  followerRepo,
		LikedPostRepository: likedRepo,
		ProfileCache:        cache,
		Logger:              logger,
	}
}

// GlobalFeed همه‌ی پست‌ها از جدید به قدیم
func (s *FeedService) GlobalFeed(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.FindAll(ctx)
	if err != nil {
		return nil, s.internal("list posts", err)
	}
	return s.compose(ctx, posts)
}

// FollowingFeed returns posts authored by the users userID follows.
func (s *FeedService) FollowingFeed(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	following, err := s.FollowerRepository.GetFollowingByUserID(ctx, userID)
	if err != nil {
		return nil, s.internal("list following", err, zap.String("userID", userID))
	}
	if len(following) == 0 {
		return []*postPort.PostDTO{}, nil
	}

	authorIDs := make([]string, 0, len(following))
	for _, f := range following {
		authorIDs = append(authorIDs, f.UserID.String())
	}

	posts, err := s.PostRepository.FindByUserIDs(ctx, authorIDs)
	if err != nil {
		return nil, s.internal("list following posts", err, zap.String("userID", userID))
	}
	return s.compose(ctx, posts)
}

func (s *FeedService) UserFeed(ctx context.Context, username string) ([]*postPort.PostDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", errs.ErrNotFound)
		}
		return nil, s.internal("find user by username", err, zap.String("username", username))
	}

	posts, err := s.PostRepository.FindByUserIDs(ctx, []string{u.ID.String()})
	if err != nil {
		return nil, s.internal("list user posts", err, zap.String("username", username))
	}
	return s.compose(ctx, posts)
}

// LikedFeed reads the user-side mirror, so drift shows here until the next
// toggle or mirror repair pass fixes it.
func (s *FeedService) LikedFeed(ctx context.Context, userID string) ([]*postPort.PostDTO, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.LikedPostRepository.PostIDsByUser(ctx, userID)
	if err != nil {
		return nil, s.internal("list liked post ids", err, zap.String("userID", userID))
	}
	if len(ids) == 0 {
		return []*postPort.PostDTO{}, nil
	}

	posts, err := s.PostRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, s.internal("list liked posts", err, zap.String("userID", userID))
	}
	return s.compose(ctx, posts)
}

func (s *FeedService) findUser(ctx context.Context, userID string) (*userEntity.User, error) {
	u, err := s.UserRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", errs.ErrNotFound)
		}
		return nil, s.internal("find user", err, zap.String("userID", userID))
	}
	return u, nil
}

// compose مرتب‌سازی بر اساس زمان ایجاد و join با پروفایل نویسنده‌ها
func (s *FeedService) compose(ctx context.Context, posts []*postEntity.Post) ([]*postPort.PostDTO, error) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	ids := authorIDs(posts)
	profiles, err := s.profiles(ctx, ids)
	if err != nil {
		return nil, s.internal("load author profiles", err, zap.Int("authors", len(ids)))
	}

	out := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		comments := make([]postPort.CommentDTO, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, postPort.CommentDTO{
				ID:        c.ID,
				Text:      c.Text,
				UserID:    c.UserID,
				User:      profiles[c.UserID],
				CreatedAt: c.CreatedAt.Format(time.RFC3339Nano),
			})
		}
		likes := p.Likes
		if likes == nil {
			likes = []string{}
		}
		out = append(out, &postPort.PostDTO{
			ID:        p.ID,
			Text:      p.Text,
			Img:       p.Image,
			UserID:    p.UserID,
			User:      profiles[p.UserID],
			Comments:  comments,
			Likes:     likes,
			CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	return out, nil
}

// profiles resolves redacted projections, cache first. Cache failures are
// logged and fall through to the user directory.
func (s *FeedService) profiles(ctx context.Context, ids []string) (map[string]*userPort.UserDTO, error) {
	found := make(map[string]*userPort.UserDTO, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	if s.ProfileCache != nil {
		cached, err := s.ProfileCache.GetMany(ctx, ids)
		if err != nil {
			s.Logger.Warn("⚠️ Profile cache read failed", zap.Error(err))
		}
		for id, p := range cached {
			found[id] = p
		}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	users, err := s.UserRepository.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	fresh := make([]*userPort.UserDTO, 0, len(users))
	for _, u := range users {
		dto := userPort.ToDTO(u)
		found[dto.ID] = dto
		fresh = append(fresh, dto)
	}

	if s.ProfileCache != nil && len(fresh) > 0 {
		if err := s.ProfileCache.SetMany(ctx, fresh); err != nil {
			s.Logger.Warn("⚠️ Profile cache write failed", zap.Error(err))
		}
	}
	return found, nil
}

func (s *FeedService) internal(op string, err error, fields ...zap.Field) error {
	s.Logger.Error("❌ "+op+" failed", append(fields, zap.Error(err))...)
	return fmt.Errorf("%w: %s", errs.ErrInternal, op)
}

// authorIDs شناسه‌ی یکتای نویسنده‌ی پست‌ها و کامنت‌ها
func authorIDs(posts []*postEntity.Post) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, p := range posts {
		add(p.UserID)
		for _, c := range p.Comments {
			add(c.UserID)
		}
	}
	return ids
}
