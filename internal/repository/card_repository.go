//go:generate mockery --name CardRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"total_recall/internal/middleware"
	"total_recall/internal/model"

	"gorm.io/gorm"
)

type CardRepository interface {
	CreateBack(ctx context.Context, tx *gorm.DB, back *model.Back) error
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, cardID uint) (*model.Card, error)
	FindOwner(ctx context.Context, db *gorm.DB, cardID uint) (uint, error)
	FindOwners(ctx context.Context, db *gorm.DB, cardIDs []uint) (map[uint]uint, error)
	UpdateLink(ctx context.Context, tx *gorm.DB, cardID uint, link *string) error
	Delete(ctx context.Context, tx *gorm.DB, cardID uint) (int64, error)
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) CreateBack(ctx context.Context, tx *gorm.DB, back *model.Back) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(back)
	if result.Error != nil {
		logger.Error("Error creating back in DB",
			"error", result.Error,
			"text", back.Text,
		)
		return fmt.Errorf("gormCardRepository.CreateBack: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		logger.Error("Error creating card in DB",
			"error", result.Error,
			"deck_id", card.DeckID,
			"front", card.Front,
		)
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, cardID uint) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := db.WithContext(ctx).Preload("Back").First(&card, cardID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB",
			"error", result.Error,
			"card_id", cardID,
		)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

// FindOwner はカード→デッキの連鎖を辿って所有者のユーザーIDを解決します。
func (r *gormCardRepository) FindOwner(ctx context.Context, db *gorm.DB, cardID uint) (uint, error) {
	logger := middleware.GetLogger(ctx)
	var owner uint
	result := db.WithContext(ctx).Model(&model.Card{}).
		Select("decks.owner").
		Joins("JOIN decks ON decks.id = cards.deck").
		Where("cards.id = ?", cardID).
		Scan(&owner)
	if result.Error != nil {
		logger.Error("Error resolving card owner in DB",
			"error", result.Error,
			"card_id", cardID,
		)
		return 0, fmt.Errorf("gormCardRepository.FindOwner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, model.ErrNotFound
	}
	return owner, nil
}

// FindOwners はバッチ操作用に複数カードの所有者をまとめて解決します。
// 見つからなかったカードIDはマップに含まれません。
func (r *gormCardRepository) FindOwners(ctx context.Context, db *gorm.DB, cardIDs []uint) (map[uint]uint, error) {
	logger := middleware.GetLogger(ctx)
	var rows []struct {
		CardID uint
		Owner  uint
	}
	result := db.WithContext(ctx).Model(&model.Card{}).
		Select("cards.id AS card_id", "decks.owner AS owner").
		Joins("JOIN decks ON decks.id = cards.deck").
		Where("cards.id IN ?", cardIDs).
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error resolving card owners in DB",
			"error", result.Error,
			"card_ids", cardIDs,
		)
		return nil, fmt.Errorf("gormCardRepository.FindOwners: %w", result.Error)
	}

	owners := make(map[uint]uint, len(rows))
	for _, row := range rows {
		owners[row.CardID] = row.Owner
	}
	return owners, nil
}

func (r *gormCardRepository) UpdateLink(ctx context.Context, tx *gorm.DB, cardID uint, link *string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", cardID).
		Update("link", link)
	if result.Error != nil {
		logger.Error("Error updating card link in DB",
			"error", result.Error,
			"card_id", cardID,
		)
		return fmt.Errorf("gormCardRepository.UpdateLink: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete はカードとその裏面・スコア・結合行を同一トランザクションで削除します。
func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, cardID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	tx = tx.WithContext(ctx)

	var card model.Card
	if err := tx.First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // 削除対象なし
		}
		logger.Error("Error finding card for delete in DB", "error", err, "card_id", cardID)
		return 0, fmt.Errorf("gormCardRepository.Delete: %w", err)
	}

	if err := tx.Where("card = ?", cardID).Delete(&model.Score{}).Error; err != nil {
		logger.Error("Error deleting card scores in DB", "error", err, "card_id", cardID)
		return 0, fmt.Errorf("gormCardRepository.Delete: scores: %w", err)
	}
	if err := tx.Where("card_id = ?", cardID).Delete(&model.SetCard{}).Error; err != nil {
		logger.Error("Error deleting card set memberships in DB", "error", err, "card_id", cardID)
		return 0, fmt.Errorf("gormCardRepository.Delete: set_cards: %w", err)
	}

	result := tx.Delete(&model.Card{}, cardID)
	if result.Error != nil {
		logger.Error("Error deleting card in DB", "error", result.Error, "card_id", cardID)
		return 0, fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}

	// 裏面はカードと所有関係にあるため一緒に破棄する
	if err := tx.Delete(&model.Back{}, card.BackID).Error; err != nil {
		logger.Error("Error deleting card back in DB", "error", err, "card_id", cardID, "back_id", card.BackID)
		return 0, fmt.Errorf("gormCardRepository.Delete: back: %w", err)
	}

	return result.RowsAffected, nil
}
