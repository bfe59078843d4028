// internal/service/score_service.go
package service

import (
	"context"
	"fmt"

	"total_recall/internal/model"
	"total_recall/internal/repository"

	"gorm.io/gorm"
)

type ScoreService interface {
	CreateScore(ctx context.Context, callerID *uint, req *model.NewScoreRequest) (*model.Score, error)
	CreateScores(ctx context.Context, callerID *uint, reqs []model.NewScoreRequest) ([]*model.Score, error)
	UpdateScore(ctx context.Context, callerID *uint, scoreID uint, req *model.PatchScoreRequest) (*model.Score, error)
}

type scoreService struct {
	db        *gorm.DB
	scoreRepo repository.ScoreRepository
	cardRepo  repository.CardRepository
}

func NewScoreService(db *gorm.DB, scoreRepo repository.ScoreRepository, cardRepo repository.CardRepository) ScoreService {
	return &scoreService{
		db:        db,
		scoreRepo: scoreRepo,
		cardRepo:  cardRepo,
	}
}

// checkScoreValue はバリデータ層と二重にレンジを守る最後の砦です。
func checkScoreValue(value int16) error {
	if value < model.ScoreMin || value > model.ScoreMax {
		return model.NewAppError("INVALID_SCORE", "スコアは0から5の範囲で指定してください。", "value", model.ErrInvalidInput)
	}
	return nil
}

// CreateScore は対象カードの所有者を確認してから復習スコアを記録します。
func (s *scoreService) CreateScore(ctx context.Context, callerID *uint, req *model.NewScoreRequest) (*model.Score, error) {
	var createdScore *model.Score

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkScoreValue(req.Value); err != nil {
			return err
		}

		ownerID, err := s.cardRepo.FindOwner(ctx, tx, req.Card)
		if err != nil {
			return err
		}
		if err := Authorize(callerID, ownerID); err != nil {
			return err
		}

		score := &model.Score{
			CreatedAt: nowMillis(),
			CardID:    req.Card,
			Value:     req.Value,
		}
		if err := s.scoreRepo.Create(ctx, tx, score); err != nil {
			return err
		}

		createdScore, err = s.scoreRepo.FindByID(ctx, tx, score.ID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateScore", err)
	}
	return createdScore, nil
}

// CreateScores は参照される全カードの所有者を1クエリで引き、
// 全件の認可が通った場合にのみまとめて挿入します。
func (s *scoreService) CreateScores(ctx context.Context, callerID *uint, reqs []model.NewScoreRequest) ([]*model.Score, error) {
	var createdScores []*model.Score

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, req := range reqs {
			if err := checkScoreValue(req.Value); err != nil {
				return annotateBatchItem(err, fmt.Sprintf("scores[%d]", i))
			}
		}

		cardIDs := make([]uint, 0, len(reqs))
		for _, req := range reqs {
			cardIDs = append(cardIDs, req.Card)
		}

		owners, err := s.cardRepo.FindOwners(ctx, tx, cardIDs)
		if err != nil {
			return err
		}
		for i, req := range reqs {
			ownerID, ok := owners[req.Card]
			if !ok {
				return model.NewAppError("NOT_FOUND", "参照されたカードが見つかりません。", fmt.Sprintf("scores[%d]", i), model.ErrNotFound)
			}
			if err := Authorize(callerID, ownerID); err != nil {
				return annotateBatchItem(err, fmt.Sprintf("scores[%d]", i))
			}
		}

		time := nowMillis()
		scores := make([]*model.Score, 0, len(reqs))
		for _, req := range reqs {
			scores = append(scores, &model.Score{
				CreatedAt: time, // バッチ内の全行が同じタイムスタンプを共有する
				CardID:    req.Card,
				Value:     req.Value,
			})
		}
		if err := s.scoreRepo.CreateBatch(ctx, tx, scores); err != nil {
			return err
		}

		for _, score := range scores {
			reread, err := s.scoreRepo.FindByID(ctx, tx, score.ID)
			if err != nil {
				return err
			}
			createdScores = append(createdScores, reread)
		}
		return nil
	})

	if err != nil {
		return nil, mapServiceError(ctx, "CreateScores", err)
	}
	return createdScores, nil
}

// UpdateScore は value のみ変更可能です。スコアに削除操作はありません。
func (s *scoreService) UpdateScore(ctx context.Context, callerID *uint, scoreID uint, req *model.PatchScoreRequest) (*model.Score, error) {
	var updatedScore *model.Score

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkScoreValue(req.Value); err != nil {
			return err
		}

		ownerID, err := s.scoreRepo.FindOwner(ctx, tx, scoreID)
		if err != nil {
			return err
		}
		if err := Authorize(callerID, ownerID); err != nil {
			return err
		}

		if err := s.scoreRepo.UpdateValue(ctx, tx, scoreID, req.Value); err != nil {
			return err
		}

		updatedScore, err = s.scoreRepo.FindByID(ctx, tx, scoreID)
		return err
	})

	if err != nil {
		return nil, mapServiceError(ctx, "UpdateScore", err)
	}
	return updatedScore, nil
}
