//go:generate mockery --name ScoreRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"total_recall/internal/middleware"
	"total_recall/internal/model"

	"gorm.io/gorm"
)

type ScoreRepository interface {
	Create(ctx context.Context, tx *gorm.DB, score *model.Score) error
	CreateBatch(ctx context.Context, tx *gorm.DB, scores []*model.Score) error
	FindByID(ctx context.Context, db *gorm.DB, scoreID uint) (*model.Score, error)
	FindOwner(ctx context.Context, db *gorm.DB, scoreID uint) (uint, error)
	UpdateValue(ctx context.Context, tx *gorm.DB, scoreID uint, value int16) error
}

type gormScoreRepository struct{}

func NewGormScoreRepository() ScoreRepository {
	return &gormScoreRepository{}
}

func (r *gormScoreRepository) Create(ctx context.Context, tx *gorm.DB, score *model.Score) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(score)
	if result.Error != nil {
		logger.Error("Error creating score in DB",
			"error", result.Error,
			"card_id", score.CardID,
		)
		return fmt.Errorf("gormScoreRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormScoreRepository) CreateBatch(ctx context.Context, tx *gorm.DB, scores []*model.Score) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(scores)
	if result.Error != nil {
		logger.Error("Error creating scores in DB",
			"error", result.Error,
			"count", len(scores),
		)
		return fmt.Errorf("gormScoreRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormScoreRepository) FindByID(ctx context.Context, db *gorm.DB, scoreID uint) (*model.Score, error) {
	logger := middleware.GetLogger(ctx)
	var score model.Score
	result := db.WithContext(ctx).First(&score, scoreID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding score by ID in DB",
			"error", result.Error,
			"score_id", scoreID,
		)
		return nil, fmt.Errorf("gormScoreRepository.FindByID: %w", result.Error)
	}
	return &score, nil
}

// FindOwner はスコア→カード→デッキの連鎖を辿って所有者を解決します。
func (r *gormScoreRepository) FindOwner(ctx context.Context, db *gorm.DB, scoreID uint) (uint, error) {
	logger := middleware.GetLogger(ctx)
	var owner uint
	result := db.WithContext(ctx).Model(&model.Score{}).
		Select("decks.owner").
		Joins("JOIN cards ON cards.id = scores.card").
		Joins("JOIN decks ON decks.id = cards.deck").
		Where("scores.id = ?", scoreID).
		Scan(&owner)
	if result.Error != nil {
		logger.Error("Error resolving score owner in DB",
			"error", result.Error,
			"score_id", scoreID,
		)
		return 0, fmt.Errorf("gormScoreRepository.FindOwner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, model.ErrNotFound
	}
	return owner, nil
}

func (r *gormScoreRepository) UpdateValue(ctx context.Context, tx *gorm.DB, scoreID uint, value int16) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Score{}).
		Where("id = ?", scoreID).
		Update("value", value)
	if result.Error != nil {
		logger.Error("Error updating score value in DB",
			"error", result.Error,
			"score_id", scoreID,
		)
		return fmt.Errorf("gormScoreRepository.UpdateValue: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
