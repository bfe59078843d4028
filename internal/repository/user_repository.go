//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"total_recall/internal/middleware"
	"total_recall/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	CreateBatch(ctx context.Context, tx *gorm.DB, users []*model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uint) (*model.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, tx *gorm.DB, userID uint, passwordHash string, updatedAt int64) error
	Delete(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

// isUniqueViolation はPostgresの一意制約違反 (23505) を判定します
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *gormUserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate username on create user", "username", user.Username)
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB",
			"error", result.Error,
			"username", user.Username,
		)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) CreateBatch(ctx context.Context, tx *gorm.DB, users []*model.User) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(users)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error creating users in DB",
			"error", result.Error,
			"count", len(users),
		)
		return fmt.Errorf("gormUserRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uint) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by username in DB",
			"error", result.Error,
			"username", username,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByUsername: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) UpdatePassword(ctx context.Context, tx *gorm.DB, userID uint, passwordHash string, updatedAt int64) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		logger.Error("Error updating user password in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return fmt.Errorf("gormUserRepository.UpdatePassword: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) Delete(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.User{}, userID)
	if result.Error != nil {
		logger.Error("Error deleting user in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return 0, fmt.Errorf("gormUserRepository.Delete: %w", result.Error)
	}
	return result.RowsAffected, nil
}
