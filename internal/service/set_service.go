// internal/service/set_service.go
package service

import (
	"context"
	"errors"

	"total_recall/internal/model"
	"total_recall/internal/repository"

	"gorm.io/gorm"
)

type SetService interface {
	CreateSet(ctx context.Context, callerID *uint, req *model.NewSetRequest) (*model.Set, error)
	CreateSets(ctx context.Context, callerID *uint, reqs []model.NewSetRequest) ([]*model.Set, error)
	UpdateSet(ctx context.Context, callerID *uint, setID uint, req *model.PatchSetRequest) (*model.Set, error)
	DeleteSet(ctx context.Context, callerID *uint, setID uint) (int64, error)
}

type setService struct {
	db      *gorm.DB
	setRepo repository.SetRepository
}

func NewSetService(db *gorm.DB, setRepo repository.SetRepository) SetService {
	return &setService{
		db:      db,
		setRepo: setRepo,
	}
}

// CreateSet は学習セッションのセットを作成し、メンバーカードの結合行を
// 同一トランザクションで挿入します。所有者は強制的に呼び出し元になります。
func (s *setService) CreateSet(ctx context.Context, callerID *uint, req *model.NewSetRequest) (*model.Set, error) {
	var createdSet *model.Set

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Authorize(callerID); err != nil {
			return err
		}

		set := &model.Set{
			CreatedAt: nowMillis(),
			Name:      req.Name,
			DeckID:    req.Deck,
			Owner:     *callerID,
		}
		if err := s.setRepo.Create(ctx, tx, set); err != nil {
			return err
		}
		if err := s.setRepo.AddCards(ctx, tx, set.ID, req.Cards); err != nil {
			return err
		}

		var err error
		createdSet, err = s.setRepo.FindByID(ctx, tx, set.ID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateSet", err)
	}
	return createdSet, nil
}

// CreateSets はまず全セット行を挿入し、その後で各セットの結合行を
// リクエスト順に対応付けて挿入します。
func (s *setService) CreateSets(ctx context.Context, callerID *uint, reqs []model.NewSetRequest) ([]*model.Set, error) {
	var createdSets []*model.Set

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Authorize(callerID); err != nil {
			return err
		}

		time := nowMillis()
		sets := make([]*model.Set, 0, len(reqs))
		for _, req := range reqs {
			sets = append(sets, &model.Set{
				CreatedAt: time, // バッチ内の全行が同じタイムスタンプを共有する
				Name:      req.Name,
				DeckID:    req.Deck,
				Owner:     *callerID,
			})
		}
		if err := s.setRepo.CreateBatch(ctx, tx, sets); err != nil {
			return err
		}

		for i, set := range sets {
			if err := s.setRepo.AddCards(ctx, tx, set.ID, reqs[i].Cards); err != nil {
				return err
			}
		}

		for _, set := range sets {
			reread, err := s.setRepo.FindByID(ctx, tx, set.ID)
			if err != nil {
				return err
			}
			createdSets = append(createdSets, reread)
		}
		return nil
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateSets", err)
	}
	return createdSets, nil
}

// UpdateSet は name のみ変更可能です。
func (s *setService) UpdateSet(ctx context.Context, callerID *uint, setID uint, req *model.PatchSetRequest) (*model.Set, error) {
	var updatedSet *model.Set

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := s.setRepo.FindOwner(ctx, tx, setID)
		if err != nil {
			return err
		}
		if err := Authorize(callerID, ownerID); err != nil {
			return err
		}

		if err := s.setRepo.UpdateName(ctx, tx, setID, req.Name); err != nil {
			return err
		}

		updatedSet, err = s.setRepo.FindByID(ctx, tx, setID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "UpdateSet", err)
	}
	return updatedSet, nil
}

// DeleteSet はセットと結合行を削除します。カード自体は削除されません。
func (s *setService) DeleteSet(ctx context.Context, callerID *uint, setID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := s.setRepo.FindOwner(ctx, tx, setID)
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

		count, err = s.setRepo.Delete(ctx, tx, setID)
		return err
	})

	if err != nil {
		return 0, mapServiceError(ctx, "DeleteSet", err)
	}
	return count, nil
}
