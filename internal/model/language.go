// internal/model/language.go
package model

// Language は学習対象の言語を表します。
// Abbreviation はアセットキャッシュのディレクトリ名と外部TTSの言語コードに使われます。
type Language struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Abbreviation string `gorm:"not null" json:"abbreviation"`
}

func (Language) TableName() string {
	return "languages"
}
