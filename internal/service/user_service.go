// internal/service/user_service.go
package service

import (
	"context"
	"errors"

	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(ctx context.Context, req *model.NewUserRequest) (*model.User, error)
	CreateUsers(ctx context.Context, reqs []model.NewUserRequest) ([]*model.User, error)
	UpdatePassword(ctx context.Context, callerID *uint, userID uint, req *model.PatchUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, callerID *uint, userID uint) (int64, error)
}

type userService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{
		db:       db,
		userRepo: userRepo,
	}
}

// CreateUser は新規ユーザーを登録します。認可チェックはありません (誰でも登録可能)。
func (s *userService) CreateUser(ctx context.Context, req *model.NewUserRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var createdUser *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.ErrInternalServer
		}

		time := nowMillis()
		user := &model.User{
			Username:  req.Username,
			Password:  string(hashed),
			CreatedAt: time, // 作成時は created_at と updated_at が等しい
			UpdatedAt: time,
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_USERNAME", "そのユーザー名は既に使用されています。", "username", model.ErrConflict)
			}
			return err
		}

		// 同一トランザクション内で再読み込みして返す
		createdUser, err = s.userRepo.FindByID(ctx, tx, user.ID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateUser", err)
	}
	return createdUser, nil
}

// CreateUsers は複数ユーザーをひとつのトランザクションで登録します。
// パスワードは1件ずつ独立にハッシュ化されます。
func (s *userService) CreateUsers(ctx context.Context, reqs []model.NewUserRequest) ([]*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var createdUsers []*model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		time := nowMillis()
		users := make([]*model.User, 0, len(reqs))
		for _, req := range reqs {
			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				logger.Error("Failed to hash password", "error", err)
				return model.ErrInternalServer
			}
			users = append(users, &model.User{
				Username:  req.Username,
				Password:  string(hashed),
				CreatedAt: time, // バッチ内の全行が同じタイムスタンプを共有する
				UpdatedAt: time,
			})
		}

		if err := s.userRepo.CreateBatch(ctx, tx, users); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_USERNAME", "既に使用されているユーザー名が含まれています。", "users", model.ErrConflict)
			}
			return err
		}

		for _, user := range users {
			reread, err := s.userRepo.FindByID(ctx, tx, user.ID)
			if err != nil {
				return err
			}
			createdUsers = append(createdUsers, reread)
		}
		return nil
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateUsers", err)
	}
	return createdUsers, nil
}

// UpdatePassword は本人のみ許可されるパスワード変更です。updated_at も更新されます。
func (s *userService) UpdatePassword(ctx context.Context, callerID *uint, userID uint, req *model.PatchUserRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var updatedUser *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := Authorize(callerID, target.ID); err != nil {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.ErrInternalServer
		}

		if err := s.userRepo.UpdatePassword(ctx, tx, userID, string(hashed), nowMillis()); err != nil {
			return err
		}

		updatedUser, err = s.userRepo.FindByID(ctx, tx, userID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "UpdatePassword", err)
	}
	return updatedUser, nil
}

// DeleteUser は本人のみ許可されるアカウント削除です。削除行数 (0または1) を返します。
func (s *userService) DeleteUser(ctx context.Context, callerID *uint, userID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := s.userRepo.FindByID(ctx, tx, userID)
		if errors.Is(err, model.ErrNotFound) {
			// 既に存在しない行の削除は成功扱いで0件を返す (匿名は拒否する)
			if err := Authorize(callerID); err != nil {
				return err
			}
			count = 0
			return nil
		}
		if err != nil {
			return err
		}
		if err := Authorize(callerID, target.ID); err != nil {
			return err
		}

		count, err = s.userRepo.Delete(ctx, tx, userID)
		return err
	})

	if err != nil {
		return 0, mapServiceError(ctx, "DeleteUser", err)
	}
	return count, nil
}
