// internal/model/deck.go
package model

// Deck はカードの束を表します。Owner がこのデッキ配下の全リソースの所有者です。
type Deck struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Owner    uint   `gorm:"column:owner;not null;index" json:"owner"`
	Language uint   `gorm:"column:language;not null" json:"language"`
}

func (Deck) TableName() string {
	return "decks"
}

// DeckOwnership はカード作成時の所有者チェックと言語解決に使う読み取り専用の結果行です
type DeckOwnership struct {
	Owner        uint
	Language     uint
	Abbreviation string
}

// デッキ作成リクエストDTO (ownerは呼び出し元のIDが強制されるため受け取らない)
type NewDeckRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Language uint   `json:"language" validate:"required"`
}

// 複数デッキ作成リクエストDTO
type NewDecksRequest struct {
	Decks []NewDeckRequest `json:"decks" validate:"required,min=1,dive"`
}

// デッキ更新リクエストDTO (nameのみ変更可)
type PatchDeckRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// DeletedCount は削除系オペレーションの結果
type DeletedCount struct {
	Count int64 `json:"count"`
}
