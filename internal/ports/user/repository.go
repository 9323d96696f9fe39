package user

import (
	"context"
	"socialfeed/internal/core/user"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*user.User, error)
	FindByUsernameOrMobile(ctx context.Context, username, mobile string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// LikedPostRepository stores the user-side mirror of the like relation.
// Add and Remove are idempotent.
type LikedPostRepository interface {
	Add(ctx context.Context, userID, postID string) error
	Remove(ctx context.Context, userID, postID string) error
	PostIDsByUser(ctx context.Context, userID string) ([]string, error)
	All(ctx context.Context) ([]*user.LikedPost, error)
}

// ProfileCache holds redacted author projections in front of UserRepository.
type ProfileCache interface {
	GetMany(ctx context.Context, ids []string) (map[string]*UserDTO, error)
	SetMany(ctx context.Context, profiles []*UserDTO) error
}

// DTOها برای UseCase
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// UserDTO is the public projection of a user. It never carries the password
// hash or the mobile number.
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Family   string `json:"family"`
}

// ToDTO projects u with credential fields dropped.
func ToDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Family:   u.Family,
	}
}
