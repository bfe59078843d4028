// internal/model/auth.go
package model

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type ContextKey string

const (
	// UserIDKey はリクエストコンテキストに格納される呼び出し元のユーザーIDのキー。
	// 匿名リクエストでは格納されません。
	UserIDKey ContextKey = "userID"
)
