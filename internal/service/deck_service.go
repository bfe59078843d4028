// internal/service/deck_service.go
package service

import (
	"context"
	"errors"

	"total_recall/internal/model"
	"total_recall/internal/repository"

	"gorm.io/gorm"
)

type DeckService interface {
	CreateDeck(ctx context.Context, callerID *uint, req *model.NewDeckRequest) (*model.Deck, error)
	CreateDecks(ctx context.Context, callerID *uint, reqs []model.NewDeckRequest) ([]*model.Deck, error)
	UpdateDeck(ctx context.Context, callerID *uint, deckID uint, req *model.PatchDeckRequest) (*model.Deck, error)
	DeleteDeck(ctx context.Context, callerID *uint, deckID uint) (int64, error)
}

type deckService struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
}

func NewDeckService(db *gorm.DB, deckRepo repository.DeckRepository) DeckService {
	return &deckService{
		db:       db,
		deckRepo: deckRepo,
	}
}

// CreateDeck は呼び出し元を所有者とする新しいデッキを作成します。
// 所有者は強制的に呼び出し元のIDになります (他人のためのデッキは作れない)。
func (s *deckService) CreateDeck(ctx context.Context, callerID *uint, req *model.NewDeckRequest) (*model.Deck, error) {
	var createdDeck *model.Deck

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Authorize(callerID); err != nil {
			return err
		}

		deck := &model.Deck{
			Name:     req.Name,
			Owner:    *callerID,
			Language: req.Language,
		}
		if err := s.deckRepo.Create(ctx, tx, deck); err != nil {
			return err
		}

		var err error
		createdDeck, err = s.deckRepo.FindByID(ctx, tx, deck.ID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateDeck", err)
	}
	return createdDeck, nil
}

// CreateDecks は複数デッキをひとつのトランザクション・ひとつの挿入で作成します。
func (s *deckService) CreateDecks(ctx context.Context, callerID *uint, reqs []model.NewDeckRequest) ([]*model.Deck, error) {
	var createdDecks []*model.Deck

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Authorize(callerID); err != nil {
			return err
		}

		decks := make([]*model.Deck, 0, len(reqs))
		for _, req := range reqs {
			decks = append(decks, &model.Deck{
				Name:     req.Name,
				Owner:    *callerID,
				Language: req.Language,
			})
		}
		if err := s.deckRepo.CreateBatch(ctx, tx, decks); err != nil {
			return err
		}

		for _, deck := range decks {
			reread, err := s.deckRepo.FindByID(ctx, tx, deck.ID)
			if err != nil {
				return err
			}
			createdDecks = append(createdDecks, reread)
		}
		return nil
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateDecks", err)
	}
	return createdDecks, nil
}

// UpdateDeck は name のみ変更可能です。直接の所有者チェックを伴います。
func (s *deckService) UpdateDeck(ctx context.Context, callerID *uint, deckID uint, req *model.PatchDeckRequest) (*model.Deck, error) {
	var updatedDeck *model.Deck

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := s.deckRepo.FindOwner(ctx, tx, deckID)
		if err != nil {
			return err
		}
		if err := Authorize(callerID, ownerID); err != nil {
			return err
		}

		if err := s.deckRepo.UpdateName(ctx, tx, deckID, req.Name); err != nil {
			return err
		}

		updatedDeck, err = s.deckRepo.FindByID(ctx, tx, deckID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "UpdateDeck", err)
	}
	return updatedDeck, nil
}

// DeleteDeck はデッキと配下のカード・スコア・セットを同一トランザクションで削除します。
func (s *deckService) DeleteDeck(ctx context.Context, callerID *uint, deckID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := s.deckRepo.FindOwner(ctx, tx, deckID)
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
		if err := Authorize(callerID, ownerID); err != nil {
			return err
		}

		count, err = s.deckRepo.Delete(ctx, tx, deckID)
		return err
	})

	if err != nil {
		return 0, mapServiceError(ctx, "DeleteDeck", err)
	}
	return count, nil
}
