// internal/service/card_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"total_recall/internal/model"
	"total_recall/internal/repository"

	"gorm.io/gorm"
)

// AssetResolver は (言語略称, 単語) をキャッシュ済みアセットの相対パスへ解決します。
// カード作成トランザクションは、行を書く前にこの解決が成功することを要求します。
type AssetResolver interface {
	ResolveAudio(ctx context.Context, languageAbbr, word string) (string, error)
	ResolveImage(ctx context.Context, languageAbbr, word string) (string, error)
}

type CardService interface {
	CreateCard(ctx context.Context, callerID *uint, req *model.NewCardRequest) (*model.Card, error)
	CreateCards(ctx context.Context, callerID *uint, reqs []model.NewCardRequest) ([]*model.Card, error)
	UpdateCard(ctx context.Context, callerID *uint, cardID uint, req *model.PatchCardRequest) (*model.Card, error)
	DeleteCard(ctx context.Context, callerID *uint, cardID uint) (int64, error)
}

type cardService struct {
	db       *gorm.DB
	cardRepo repository.CardRepository
	deckRepo repository.DeckRepository
	assets   AssetResolver
}

func NewCardService(db *gorm.DB, cardRepo repository.CardRepository, deckRepo repository.DeckRepository, assets AssetResolver) CardService {
	return &cardService{
		db:       db,
		cardRepo: cardRepo,
		deckRepo: deckRepo,
		assets:   assets,
	}
}

// CreateCard は裏面テキストのアセット (音声+画像) を解決してから、
// Back行とCard行を同一トランザクションで挿入します。
// アセット解決が失敗した場合は一切の行を書きません。
func (s *cardService) CreateCard(ctx context.Context, callerID *uint, req *model.NewCardRequest) (*model.Card, error) {
	var createdCard *model.Card

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// デッキの所有者と言語をまとめて解決し、認可を先に済ませる
		ownership, err := s.deckRepo.FindOwnership(ctx, tx, req.Deck)
		if err != nil {
			return err
		}
		if err := Authorize(callerID, ownership.Owner); err != nil {
			return err
		}

		time := nowMillis()

		// 行を書く前にアセットを解決する。失敗したらこのトランザクションは何も残さない
		audio, err := s.assets.ResolveAudio(ctx, ownership.Abbreviation, req.Back)
		if err != nil {
			return err
		}
		image, err := s.assets.ResolveImage(ctx, ownership.Abbreviation, req.Back)
		if err != nil {
			return err
		}

		back := &model.Back{
			Text:     req.Back,
			Language: ownership.Language,
			Audio:    &audio,
			Image:    &image,
		}
		if err := s.cardRepo.CreateBack(ctx, tx, back); err != nil {
			return err
		}

		card := &model.Card{
			CreatedAt: time,
			Front:     req.Front,
			BackID:    back.ID,
			DeckID:    req.Deck,
			Link:      req.Link,
		}
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			return err
		}

		createdCard, err = s.cardRepo.FindByID(ctx, tx, card.ID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateCard", err)
	}
	return createdCard, nil
}

// CreateCards はバッチ作成です。行を書く前に、参照される全デッキの所有者を
// まとめて検証します。どれか1枚でもアセット解決に失敗すればバッチ全体が破棄されます。
func (s *cardService) CreateCards(ctx context.Context, callerID *uint, reqs []model.NewCardRequest) ([]*model.Card, error) {
	var createdCards []*model.Card

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deckIDs := make([]uint, 0, len(reqs))
		for _, req := range reqs {
			deckIDs = append(deckIDs, req.Deck)
		}

		ownerships, err := s.deckRepo.FindOwnerships(ctx, tx, deckIDs)
		if err != nil {
			return err
		}

		// 全対象の所有者を前もって解決し、1件の不一致でバッチ全体を拒否する
		for i, req := range reqs {
			ownership, ok := ownerships[req.Deck]
			if !ok {
				return model.NewAppError("NOT_FOUND", "参照されたデッキが見つかりません。", fmt.Sprintf("cards[%d]", i), model.ErrNotFound)
			}
			if err := Authorize(callerID, ownership.Owner); err != nil {
				return annotateBatchItem(err, fmt.Sprintf("cards[%d]", i))
			}
		}

		time := nowMillis()

		cardIDs := make([]uint, 0, len(reqs))
		for i, req := range reqs {
			ownership := ownerships[req.Deck]

			audio, err := s.assets.ResolveAudio(ctx, ownership.Abbreviation, req.Back)
			if err != nil {
				return annotateBatchItem(err, fmt.Sprintf("cards[%d]", i))
			}
			image, err := s.assets.ResolveImage(ctx, ownership.Abbreviation, req.Back)
			if err != nil {
				return annotateBatchItem(err, fmt.Sprintf("cards[%d]", i))
			}

			back := &model.Back{
				Text:     req.Back,
				Language: ownership.Language,
				Audio:    &audio,
				Image:    &image,
			}
			if err := s.cardRepo.CreateBack(ctx, tx, back); err != nil {
				return err
			}

			card := &model.Card{
				CreatedAt: time, // バッチ内の全カードが同じタイムスタンプを共有する
				Front:     req.Front,
				BackID:    back.ID,
				DeckID:    req.Deck,
				Link:      req.Link,
			}
			if err := s.cardRepo.Create(ctx, tx, card); err != nil {
				return err
			}
			cardIDs = append(cardIDs, card.ID)
		}

		for _, cardID := range cardIDs {
			reread, err := s.cardRepo.FindByID(ctx, tx, cardID)
			if err != nil {
				return err
			}
			createdCards = append(createdCards, reread)
		}
		return nil
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateCards", err)
	}
	return createdCards, nil
}

// UpdateCard は link のみ変更可能です。リクエストで link が省略されていれば
// 現在値を維持し、明示的な null はクリアとして扱います。
func (s *cardService) UpdateCard(ctx context.Context, callerID *uint, cardID uint, req *model.PatchCardRequest) (*model.Card, error) {
	var updatedCard *model.Card

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := s.cardRepo.FindOwner(ctx, tx, cardID)
		if err != nil {
			return err
		}
		if err := Authorize(callerID, ownerID); err != nil {
			return err
		}

		if req.Link.Set {
			if err := s.cardRepo.UpdateLink(ctx, tx, cardID, req.Link.Value); err != nil {
				return err
			}
		}

		updatedCard, err = s.cardRepo.FindByID(ctx, tx, cardID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "UpdateCard", err)
	}
	return updatedCard, nil
}

// DeleteCard はカードと所有されている裏面・スコア・結合行を削除します。
func (s *cardService) DeleteCard(ctx context.Context, callerID *uint, cardID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := s.cardRepo.FindOwner(ctx, tx, cardID)
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

		count, err = s.cardRepo.Delete(ctx, tx, cardID)
		return err
	})

	if err != nil {
		return 0, mapServiceError(ctx, "DeleteCard", err)
	}
	return count, nil
}
