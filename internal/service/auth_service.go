// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"total_recall/internal/config"
	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Login はユーザー名とパスワードを検証し、アクセストークンを発行します。
// ユーザーが存在しない場合も認証失敗として同じエラーを返します (存在の秘匿)。
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByUsername(ctx, s.db, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INVALID_CREDENTIALS", "ユーザー名またはパスワードが正しくありません。", "", model.ErrUnauthorized)
		}
		return nil, mapServiceError(ctx, "Login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Warn("Password mismatch on login", "username", req.Username)
		return nil, model.NewAppError("INVALID_CREDENTIALS", "ユーザー名またはパスワードが正しくありません。", "", model.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign access token", "error", err)
		return nil, model.ErrInternalServer
	}

	return &model.LoginResponse{AccessToken: signed}, nil
}
