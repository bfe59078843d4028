//go:generate mockery --name SetRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"total_recall/internal/middleware"
	"total_recall/internal/model"

	"gorm.io/gorm"
)

type SetRepository interface {
	Create(ctx context.Context, tx *gorm.DB, set *model.Set) error
	CreateBatch(ctx context.Context, tx *gorm.DB, sets []*model.Set) error
	AddCards(ctx context.Context, tx *gorm.DB, setID uint, cardIDs []uint) error
	FindByID(ctx context.Context, db *gorm.DB, setID uint) (*model.Set, error)
	FindOwner(ctx context.Context, db *gorm.DB, setID uint) (uint, error)
	UpdateName(ctx context.Context, tx *gorm.DB, setID uint, name string) error
	Delete(ctx context.Context, tx *gorm.DB, setID uint) (int64, error)
}

type gormSetRepository struct{}

func NewGormSetRepository() SetRepository {
	return &gormSetRepository{}
}

func (r *gormSetRepository) Create(ctx context.Context, tx *gorm.DB, set *model.Set) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(set)
	if result.Error != nil {
		logger.Error("Error creating set in DB",
			"error", result.Error,
			"owner", set.Owner,
			"name", set.Name,
		)
		return fmt.Errorf("gormSetRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSetRepository) CreateBatch(ctx context.Context, tx *gorm.DB, sets []*model.Set) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(sets)
	if result.Error != nil {
		logger.Error("Error creating sets in DB",
			"error", result.Error,
			"count", len(sets),
		)
		return fmt.Errorf("gormSetRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

// AddCards はセットのメンバーカードの結合行をまとめて挿入します。
func (r *gormSetRepository) AddCards(ctx context.Context, tx *gorm.DB, setID uint, cardIDs []uint) error {
	if len(cardIDs) == 0 {
		return nil
	}
	logger := middleware.GetLogger(ctx)
	joins := make([]*model.SetCard, 0, len(cardIDs))
	for _, cardID := range cardIDs {
		joins = append(joins, &model.SetCard{CardID: cardID, SetID: setID})
	}
	result := tx.WithContext(ctx).Create(joins)
	if result.Error != nil {
		logger.Error("Error creating set_cards in DB",
			"error", result.Error,
			"set_id", setID,
			"count", len(cardIDs),
		)
		return fmt.Errorf("gormSetRepository.AddCards: %w", result.Error)
	}
	return nil
}

func (r *gormSetRepository) FindByID(ctx context.Context, db *gorm.DB, setID uint) (*model.Set, error) {
	logger := middleware.GetLogger(ctx)
	var set model.Set
	result := db.WithContext(ctx).First(&set, setID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding set by ID in DB",
			"error", result.Error,
			"set_id", setID,
		)
		return nil, fmt.Errorf("gormSetRepository.FindByID: %w", result.Error)
	}
	return &set, nil
}

// FindOwner はセット自身の owner 列で所有者を解決します (メンバーカードの所有者ではない)。
func (r *gormSetRepository) FindOwner(ctx context.Context, db *gorm.DB, setID uint) (uint, error) {
	set, err := r.FindByID(ctx, db, setID)
	if err != nil {
		return 0, err
	}
	return set.Owner, nil
}

func (r *gormSetRepository) UpdateName(ctx context.Context, tx *gorm.DB, setID uint, name string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Set{}).
		Where("id = ?", setID).
		Update("name", name)
	if result.Error != nil {
		logger.Error("Error updating set name in DB",
			"error", result.Error,
			"set_id", setID,
		)
		return fmt.Errorf("gormSetRepository.UpdateName: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete はセットと結合行を同一トランザクションで削除します。
func (r *gormSetRepository) Delete(ctx context.Context, tx *gorm.DB, setID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	tx = tx.WithContext(ctx)

	if err := tx.Where("set_id = ?", setID).Delete(&model.SetCard{}).Error; err != nil {
		logger.Error("Error deleting set_cards in DB", "error", err, "set_id", setID)
		return 0, fmt.Errorf("gormSetRepository.Delete: set_cards: %w", err)
	}

	result := tx.Delete(&model.Set{}, setID)
	if result.Error != nil {
		logger.Error("Error deleting set in DB",
			"error", result.Error,
			"set_id", setID,
		)
		return 0, fmt.Errorf("gormSetRepository.Delete: %w", result.Error)
	}
	return result.RowsAffected, nil
}
