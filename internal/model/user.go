// internal/model/user.go
package model

// User はアカウントの基本情報を表します。
// created_at / updated_at はエポックミリ秒で保持します (1リクエスト内で共有される値)。
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Password  string `gorm:"not null" json:"-"` // bcryptハッシュ
	CreatedAt int64  `gorm:"not null" json:"created_at"`
	UpdatedAt int64  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ユーザー登録リクエストDTO
type NewUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// 複数ユーザー登録リクエストDTO
type NewUsersRequest struct {
	Users []NewUserRequest `json:"users" validate:"required,min=1,dive"`
}

// パスワード変更リクエストDTO (パスワード以外は変更不可)
type PatchUserRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}
