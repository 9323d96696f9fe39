package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"socialfeed/internal/core/errs"
	notificationEntity "socialfeed/internal/core/notification"
	postEntity "socialfeed/internal/core/post"
	attachmentPort "socialfeed/internal/ports/attachment"
	notificationPort "socialfeed/internal/ports/notification"
	postPort "socialfeed/internal/ports/post"
	userPort "socialfeed/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository      postPort.PostRepository
	UserRepository      userPort.UserRepository
	LikedPostRepository userPort.LikedPostRepository // mirror سمت کاربر
	Attachments         attachmentPort.Lifecycle
	Notifier            notificationPort.Emitter
	Logger              *zap.Logger

	now func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	likedRepo userPort.LikedPostRepository,
	attachments attachmentPort.Lifecycle,
	notifier notificationPort.Emitter,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:      postRepo,
		UserRepository:      userRepo,
		LikedPostRepository: likedRepo,
		Attachments:         attachments,
		Notifier:            notifier,
		Logger:              logger,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost ایجاد یک پست جدید؛ یا همه‌چیز ذخیره می‌شود یا هیچ‌چیز
func (s *PostService) CreatePost(ctx context.Context, userID, text, img string) (*postEntity.Post, error) {
	if _, err := s.UserRepository.FindByID(ctx, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", errs.ErrNotFound)
		}
		return nil, s.internal("find author", err, zap.String("userID", userID))
	}
	if strings.TrimSpace(text) == "" && strings.TrimSpace(img) == "" {
		return nil, fmt.Errorf("%w: post must have text or image", errs.ErrInvalidInput)
	}

	var imageURL string
	if strings.TrimSpace(img) != "" {
		u, err := s.Attachments.Store(ctx, img)
		if err != nil {
			return nil, err
		}
		imageURL = u
	}

	now := s.now()
	post := &postEntity.Post{
		ID:        uuid.Must(uuid.NewV4()).String(),
		UserID:    userID,
		Text:      text,
		Image:     imageURL,
		Comments:  []postEntity.Comment{},
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.PostRepository.Create(ctx, post)
	if err != nil {
		if imageURL != "" {
			// پست ذخیره نشد؛ فایل آپلودشده نباید یتیم بماند
			s.Attachments.Destroy(ctx, imageURL)
		}
		return nil, s.internal("create post", err, zap.String("userID", userID))
	}

	s.Logger.Info("✅ Created post", zap.String("postID", created.ID), zap.String("userID", userID))
	return created, nil
}

// DeletePost only the author may delete. The attachment is released first,
// best-effort; the record deletion is what the caller observes.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return fmt.Errorf("%w: you are not authorized to delete this post", errs.ErrUnauthorized)
	}

	if post.Image != "" {
		s.Attachments.Destroy(ctx, post.Image)
	}

	if err := s.PostRepository.Delete(ctx, postID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("%w: post not found", errs.ErrNotFound)
		}
		return s.internal("delete post", err, zap.String("postID", postID))
	}

	s.Logger.Info("🗑 Deleted post", zap.String("postID", postID))
	return nil
}

// AddComment does not verify that authorID belongs to an existing user.
func (s *PostService) AddComment(ctx context.Context, postID, authorID, text string) (*postEntity.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text field is required", errs.ErrInvalidInput)
	}

	comment := postEntity.Comment{
		ID:        uuid.Must(uuid.NewV4()).String(),
		UserID:    authorID,
		Text:      text,
		CreatedAt: s.now(),
	}
	updated, err := s.PostRepository.AppendComment(ctx, postID, comment)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: post not found", errs.ErrNotFound)
		}
		return nil, s.internal("append comment", err, zap.String("postID", postID))
	}
	return updated, nil
}

// ToggleLike لایک یا آنلایک؛ سمت پست مرجع اصلی است و نتیجه‌ی آن برگردانده می‌شود
//
// The user-side mirror write and the notification run after the post-side
// write and never fail the toggle. Mirror writes are idempotent, so a later
// toggle repairs drift left by a failed one.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) ([]string, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(userID) {
		updated, changed, err := s.PostRepository.RemoveLike(ctx, postID, userID)
		if err != nil {
			return nil, s.likeWriteError(err, postID)
		}
		if changed {
			if err := s.LikedPostRepository.Remove(ctx, userID, postID); err != nil {
				s.Logger.Warn("⚠️ Could not remove liked post mirror",
					zap.String("userID", userID), zap.String("postID", postID), zap.Error(err))
			}
		}
		return likers(updated), nil
	}

	updated, changed, err := s.PostRepository.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, s.likeWriteError(err, postID)
	}
	if !changed {
		// یک درخواست همزمان همین انتقال را انجام داده است
		return likers(updated), nil
	}

	if err := s.LikedPostRepository.Add(ctx, userID, postID); err != nil {
		s.Logger.Warn("⚠️ Could not add liked post mirror",
			zap.String("userID", userID), zap.String("postID", postID), zap.Error(err))
	}

	ev := notificationEntity.LikeEvent{From: userID, To: updated.UserID, PostID: postID}
	if _, err := s.Notifier.EmitLike(ctx, ev); err != nil {
		s.Logger.Warn("⚠️ Could not emit like notification",
			zap.String("from", userID), zap.String("to", updated.UserID), zap.Error(err))
	}

	return likers(updated), nil
}

func (s *PostService) findPost(ctx context.Context, postID string) (*postEntity.Post, error) {
	post, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: post not found", errs.ErrNotFound)
		}
		return nil, s.internal("find post", err, zap.String("postID", postID))
	}
	return post, nil
}

func (s *PostService) likeWriteError(err error, postID string) error {
	if errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("%w: post not found", errs.ErrNotFound)
	}
	return s.internal("toggle like", err, zap.String("postID", postID))
}

// internal logs the full cause and hands the caller a generic error.
func (s *PostService) internal(op string, err error, fields ...zap.Field) error {
	s.Logger.Error("❌ "+op+" failed", append(fields, zap.Error(err))...)
	return fmt.Errorf("%w: %s", errs.ErrInternal, op)
}

func likers(p *postEntity.Post) []string {
	if p == nil || p.Likes == nil {
		return []string{}
	}
	return p.Likes
}
