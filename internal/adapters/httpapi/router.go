package httpapi

import (
	"context"

	"socialfeed/internal/adapters/httpapi/middleware"
	notificationEntity "socialfeed/internal/core/notification"
	postEntity "socialfeed/internal/core/post"
	followerPort "socialfeed/internal/ports/follower"
	postPort "socialfeed/internal/ports/post"
	userPort "socialfeed/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, family, username, mobile, password string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID, text, img string) (*postEntity.Post, error)
	DeletePost(ctx context.Context, postID, requesterID string) error
	AddComment(ctx context.Context, postID, authorID, text string) (*postEntity.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) ([]string, error)
}

type FeedUseCase interface {
	GlobalFeed(ctx context.Context) ([]*postPort.PostDTO, error)
	FollowingFeed(ctx context.Context, userID string) ([]*postPort.PostDTO, error)
	UserFeed(ctx context.Context, username string) ([]*postPort.PostDTO, error)
	LikedFeed(ctx context.Context, userID string) ([]*postPort.PostDTO, error)
}

type FollowerUseCase interface {
	FollowUser(ctx context.Context, followerID, followeeID string) error
	UnfollowUser(ctx context.Context, followerID, followeeID string) error
	GetFollowersByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
	GetFollowingByUserID(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

type NotificationUseCase interface {
	ListForUser(ctx context.Context, userID string) ([]*notificationEntity.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type UseCases struct {
	User         UserUseCase
	Post         PostUseCase
	Feed         FeedUseCase
	Follower     FollowerUseCase
	Notification NotificationUseCase
}

type RouterOptions struct {
	JWTSecret []byte
	// MediaDir، اگر خالی نباشد، زیر MediaPath به صورت static سرو می‌شود
	MediaDir  string
	MediaPath string
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(uc UseCases, opts RouterOptions) *gin.Engine {
	r := gin.Default()
	userCtl := NewUserController(uc.User)
	postCtl := NewPostController(uc.Post)
	feedCtl := NewFeedController(uc.Feed)
	followerCtl := NewFollowerController(uc.Follower)
	notificationCtl := NewNotificationController(uc.Notification)

	if opts.MediaDir != "" && opts.MediaPath != "" {
		r.Static(opts.MediaPath, opts.MediaDir)
	}

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	r.POST("/register", userCtl.RegisterUser)
	r.POST("/login", userCtl.LoginUser)

	auth := r.Group("/", middleware.JWTAuthMiddleware(opts.JWTSecret))

	posts := auth.Group("/posts")
	posts.POST("", postCtl.CreatePost)
	posts.DELETE("/:id", postCtl.DeletePost)
	posts.POST("/:id/comments", postCtl.AddComment)
	posts.POST("/:id/like", postCtl.ToggleLike)
	posts.GET("/all", feedCtl.GlobalFeed)
	posts.GET("/following", feedCtl.FollowingFeed)
	posts.GET("/user/:username", feedCtl.UserFeed)
	posts.GET("/likes/:id", feedCtl.LikedFeed)

	// مسیرهای دنبال کردن و دریافت دنبال‌کنندگان
	auth.POST("/follow", followerCtl.FollowUser)
	auth.POST("/unfollow", followerCtl.UnfollowUser)
	auth.GET("/followers", followerCtl.GetFollowersByUserID)
	auth.GET("/following", followerCtl.GetFollowingByUserID)

	auth.GET("/notifications", notificationCtl.List)
	auth.POST("/notifications/read", notificationCtl.MarkAllRead)
	return r
}
