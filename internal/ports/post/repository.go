package post

import (
	"context"
	"socialfeed/internal/core/post"
	userPort "socialfeed/internal/ports/user"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
//
// Every method is atomic on a single post document. Missing posts are
// reported as errs.ErrNotFound. List methods return newest first.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	Delete(ctx context.Context, id string) error
	AppendComment(ctx context.Context, postID string, comment post.Comment) (*post.Post, error)
	// AddLike adds userID to the likers set only if absent. changed is false
	// when the user was already a liker.
	AddLike(ctx context.Context, postID, userID string) (updated *post.Post, changed bool, err error)
	// RemoveLike removes userID from the likers set only if present.
	RemoveLike(ctx context.Context, postID, userID string) (updated *post.Post, changed bool, err error)
	FindAll(ctx context.Context) ([]*post.Post, error)
	FindByUserIDs(ctx context.Context, userIDs []string) ([]*post.Post, error)
	FindByIDs(ctx context.Context, ids []string) ([]*post.Post, error)
	// FindPage returns up to limit posts whose id sorts after afterID, in id
	// order. Only ID, UserID and Likes are populated.
	FindPage(ctx context.Context, afterID string, limit int64) ([]*post.Post, error)
}

// DTOها برای UseCase
type CommentDTO struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	UserID    string            `json:"userId"`
	User      *userPort.UserDTO `json:"user,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

type PostDTO struct {
	ID        string            `json:"id"`
	Text      string            `json:"text,omitempty"`
	Img       string            `json:"img,omitempty"`
	UserID    string            `json:"userId"`
	User      *userPort.UserDTO `json:"user,omitempty"`
	Comments  []CommentDTO      `json:"comments"`
	Likes     []string          `json:"likes"`
	CreatedAt string            `json:"createdAt"`
}
