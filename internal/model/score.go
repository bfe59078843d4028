// internal/model/score.go
package model

// スコア値は 0〜5 の閉区間のみ許可されます
const (
	ScoreMin = 0
	ScoreMax = 5
)

// Score は1回の学習結果を表します。
type Score struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	CreatedAt int64 `gorm:"not null" json:"created_at"`
	CardID    uint  `gorm:"column:card;not null;index" json:"card"`
	Value     int16 `gorm:"not null" json:"value"`
}

func (Score) TableName() string {
	return "scores"
}

// スコア登録リクエストDTO
type NewScoreRequest struct {
	Card  uint  `json:"card" validate:"required"`
	Value int16 `json:"value" validate:"min=0,max=5"`
}

// 複数スコア登録リクエストDTO
type NewScoresRequest struct {
	Scores []NewScoreRequest `json:"scores" validate:"required,min=1,dive"`
}

// スコア更新リクエストDTO (valueのみ変更可)
type PatchScoreRequest struct {
	Value int16 `json:"value" validate:"min=0,max=5"`
}
