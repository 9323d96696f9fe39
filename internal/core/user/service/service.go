package userapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialfeed/internal/core/errs"
	userEntity "socialfeed/internal/core/user"
	userPort "socialfeed/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer = "socialfeed"
	tokenTTL    = 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		jwtKey:         jwtKey,
	}
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, username string, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.Logger.Error("❌ Error finding user", zap.String("username", username), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	// مقایسه پسورد هش‌شده
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.Logger.Info("invalid password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		s.Logger.Error("❌ Error generating JWT", zap.Error(err))
		return nil, fmt.Errorf("%w: could not generate token", errs.ErrInternal)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// generateJWT subject توکن همان شناسه‌ی کاربر است
func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, name, family, username, mobile, password string) (*userPort.UserDTO, error) {
	existingUser, err := s.UserRepository.FindByUsernameOrMobile(ctx, username, mobile)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("%w: username or mobile already taken", errs.ErrInvalidInput)
	}
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		s.Logger.Error("❌ Error checking existing user", zap.Error(err))
		return nil, fmt.Errorf("%w: register user", errs.ErrInternal)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password", errs.ErrInternal)
	}

	user := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Family:   family,
		Username: username,
		Mobile:   mobile,
		Password: string(hashedPassword),
	}

	u, err := s.UserRepository.Create(ctx, user)
	if err != nil {
		s.Logger.Error("❌ Error creating user", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("%w: register user", errs.ErrInternal)
	}

	return userPort.ToDTO(u), nil
}
