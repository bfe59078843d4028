// internal/model/card.go
package model

import (
	"bytes"
	"encoding/json"
)

// Back はカードの裏面 (訳語テキスト + 取得済みアセットのパス) を表します。
// Card と同時に作成・破棄される所有関係で、単独では作成されません。
type Back struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Text     string  `gorm:"not null" json:"text"`
	Language uint    `gorm:"column:language;not null" json:"language"`
	Audio    *string `json:"audio"`
	Image    *string `json:"image"`
}

func (Back) TableName() string {
	return "backs"
}

// Card は単語カードを表します。
type Card struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CreatedAt int64   `gorm:"not null" json:"created_at"`
	Front     string  `gorm:"not null" json:"front"`
	BackID    uint    `gorm:"column:back;not null" json:"-"`
	DeckID    uint    `gorm:"column:deck;not null;index" json:"deck"`
	Link      *string `json:"link"`

	// 再読み込み時のPreload用
	Back *Back `gorm:"foreignKey:BackID" json:"back,omitempty"`
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO。Back はテキストで受け取り、アセット解決後に行が作られます。
type NewCardRequest struct {
	Front string  `json:"front" validate:"required,min=1"`
	Back  string  `json:"back" validate:"required,min=1"`
	Deck  uint    `json:"deck" validate:"required"`
	Link  *string `json:"link,omitempty" validate:"omitempty,url"`
}

// 複数カード作成リクエストDTO
type NewCardsRequest struct {
	Cards []NewCardRequest `json:"cards" validate:"required,min=1,dive"`
}

// NullableString はJSONの「フィールド省略」と「明示的なnull」を区別します。
// 省略 → 現在値を維持、null → クリア、文字列 → 置き換え。
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// カード更新リクエストDTO (linkのみ変更可)
type PatchCardRequest struct {
	Link NullableString `json:"link"`
}
