//go:generate mockery --name DeckRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"total_recall/internal/middleware"
	"total_recall/internal/model"

	"gorm.io/gorm"
)

type DeckRepository interface {
	Create(ctx context.Context, tx *gorm.DB, deck *model.Deck) error
	CreateBatch(ctx context.Context, tx *gorm.DB, decks []*model.Deck) error
	FindByID(ctx context.Context, db *gorm.DB, deckID uint) (*model.Deck, error)
	FindOwner(ctx context.Context, db *gorm.DB, deckID uint) (uint, error)
	FindOwnership(ctx context.Context, db *gorm.DB, deckID uint) (*model.DeckOwnership, error)
	FindOwnerships(ctx context.Context, db *gorm.DB, deckIDs []uint) (map[uint]model.DeckOwnership, error)
	UpdateName(ctx context.Context, tx *gorm.DB, deckID uint, name string) error
	Delete(ctx context.Context, tx *gorm.DB, deckID uint) (int64, error)
}

type gormDeckRepository struct{}

func NewGormDeckRepository() DeckRepository {
	return &gormDeckRepository{}
}

func (r *gormDeckRepository) Create(ctx context.Context, tx *gorm.DB, deck *model.Deck) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(deck)
	if result.Error != nil {
		logger.Error("Error creating deck in DB",
			"error", result.Error,
			"owner", deck.Owner,
			"name", deck.Name,
		)
		return fmt.Errorf("gormDeckRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormDeckRepository) CreateBatch(ctx context.Context, tx *gorm.DB, decks []*model.Deck) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(decks)
	if result.Error != nil {
		logger.Error("Error creating decks in DB",
			"error", result.Error,
			"count", len(decks),
		)
		return fmt.Errorf("gormDeckRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormDeckRepository) FindByID(ctx context.Context, db *gorm.DB, deckID uint) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var deck model.Deck
	result := db.WithContext(ctx).First(&deck, deckID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding deck by ID in DB",
			"error", result.Error,
			"deck_id", deckID,
		)
		return nil, fmt.Errorf("gormDeckRepository.FindByID: %w", result.Error)
	}
	return &deck, nil
}

func (r *gormDeckRepository) FindOwner(ctx context.Context, db *gorm.DB, deckID uint) (uint, error) {
	deck, err := r.FindByID(ctx, db, deckID)
	if err != nil {
		return 0, err
	}
	return deck.Owner, nil
}

// FindOwnership はデッキの所有者と言語 (略称込み) を1クエリで解決します。
// カード作成時の認可チェックとアセット解決の両方がこの結果に依存します。
func (r *gormDeckRepository) FindOwnership(ctx context.Context, db *gorm.DB, deckID uint) (*model.DeckOwnership, error) {
	logger := middleware.GetLogger(ctx)
	var row model.DeckOwnership
	result := db.WithContext(ctx).Model(&model.Deck{}).
		Select("decks.owner AS owner", "decks.language AS language", "languages.abbreviation AS abbreviation").
		Joins("JOIN languages ON languages.id = decks.language").
		Where("decks.id = ?", deckID).
		Scan(&row)
	if result.Error != nil {
		logger.Error("Error resolving deck ownership in DB",
			"error", result.Error,
			"deck_id", deckID,
		)
		return nil, fmt.Errorf("gormDeckRepository.FindOwnership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return &row, nil
}

// FindOwnerships はバッチ作成用に複数デッキの所有情報をまとめて解決します。
// 見つからなかったデッキIDはマップに含まれません (呼び出し側で検出する)。
func (r *gormDeckRepository) FindOwnerships(ctx context.Context, db *gorm.DB, deckIDs []uint) (map[uint]model.DeckOwnership, error) {
	logger := middleware.GetLogger(ctx)
	var rows []struct {
		DeckID uint
		model.DeckOwnership
	}
	result := db.WithContext(ctx).Model(&model.Deck{}).
		Select("decks.id AS deck_id", "decks.owner AS owner", "decks.language AS language", "languages.abbreviation AS abbreviation").
		Joins("JOIN languages ON languages.id = decks.language").
		Where("decks.id IN ?", deckIDs).
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error resolving deck ownerships in DB",
			"error", result.Error,
			"deck_ids", deckIDs,
		)
		return nil, fmt.Errorf("gormDeckRepository.FindOwnerships: %w", result.Error)
	}

	ownerships := make(map[uint]model.DeckOwnership, len(rows))
	for _, row := range rows {
		ownerships[row.DeckID] = row.DeckOwnership
	}
	return ownerships, nil
}

func (r *gormDeckRepository) UpdateName(ctx context.Context, tx *gorm.DB, deckID uint, name string) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Deck{}).
		Where("id = ?", deckID).
		Update("name", name)
	if result.Error != nil {
		logger.Error("Error updating deck name in DB",
			"error", result.Error,
			"deck_id", deckID,
		)
		return fmt.Errorf("gormDeckRepository.UpdateName: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete はデッキとその配下 (カード・裏面・スコア・セット・結合行) を同一トランザクションで
// 明示的に削除します。依存行を残したままデッキだけ消すことはしません。
func (r *gormDeckRepository) Delete(ctx context.Context, tx *gorm.DB, deckID uint) (int64, error) {
	logger := middleware.GetLogger(ctx)
	tx = tx.WithContext(ctx)

	steps := []struct {
		desc string
		sql  string
	}{
		{"delete set_cards of deck's sets", "DELETE FROM set_cards WHERE set_id IN (SELECT id FROM sets WHERE deck = ?)"},
		{"delete set_cards of deck's cards", "DELETE FROM set_cards WHERE card_id IN (SELECT id FROM cards WHERE deck = ?)"},
		{"delete sets", "DELETE FROM sets WHERE deck = ?"},
		{"delete scores", "DELETE FROM scores WHERE card IN (SELECT id FROM cards WHERE deck = ?)"},
	}
	for _, step := range steps {
		if err := tx.Exec(step.sql, deckID).Error; err != nil {
			logger.Error("Error cascading deck delete in DB",
				"error", err,
				"step", step.desc,
				"deck_id", deckID,
			)
			return 0, fmt.Errorf("gormDeckRepository.Delete: %s: %w", step.desc, err)
		}
	}

	// カード行が裏面への参照を握っているので、裏面IDを控えてからカード→裏面の順で消す
	var backIDs []uint
	if err := tx.Model(&model.Card{}).Where("deck = ?", deckID).Pluck("back", &backIDs).Error; err != nil {
		logger.Error("Error collecting back ids for deck delete", "error", err, "deck_id", deckID)
		return 0, fmt.Errorf("gormDeckRepository.Delete: backs lookup: %w", err)
	}
	if err := tx.Exec("DELETE FROM cards WHERE deck = ?", deckID).Error; err != nil {
		logger.Error("Error deleting deck cards in DB", "error", err, "deck_id", deckID)
		return 0, fmt.Errorf("gormDeckRepository.Delete: cards: %w", err)
	}
	if len(backIDs) > 0 {
		if err := tx.Where("id IN ?", backIDs).Delete(&model.Back{}).Error; err != nil {
			logger.Error("Error deleting card backs in DB", "error", err, "deck_id", deckID)
			return 0, fmt.Errorf("gormDeckRepository.Delete: backs: %w", err)
		}
	}

	result := tx.Delete(&model.Deck{}, deckID)
	if result.Error != nil {
		logger.Error("Error deleting deck in DB",
			"error", result.Error,
			"deck_id", deckID,
		)
		return 0, fmt.Errorf("gormDeckRepository.Delete: %w", result.Error)
	}
	return result.RowsAffected, nil
}
