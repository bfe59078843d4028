// internal/model/set.go
package model

// Set はカードのグループを表します。カードとは SetCard を介した多対多です。
type Set struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`
	Name      string `gorm:"not null" json:"name"`
	DeckID    uint   `gorm:"column:deck;not null" json:"deck"`
	Owner     uint   `gorm:"column:owner;not null;index" json:"owner"`
}

func (Set) TableName() string {
	return "sets"
}

// SetCard は Set と Card の結合行です。
type SetCard struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	CardID uint `gorm:"not null;index" json:"card_id"`
	SetID  uint `gorm:"not null;index" json:"set_id"`
}

func (SetCard) TableName() string {
	return "set_cards"
}

// セット作成リクエストDTO (ownerは呼び出し元のIDが強制される)
type NewSetRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Deck  uint   `json:"deck" validate:"required"`
	Cards []uint `json:"cards" validate:"required"`
}

// 複数セット作成リクエストDTO
type NewSetsRequest struct {
	Sets []NewSetRequest `json:"sets" validate:"required,min=1,dive"`
}

// セット更新リクエストDTO (nameのみ変更可)
type PatchSetRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}
