// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("resource conflict") // 重複エラー用
	ErrAssetResolution = errors.New("asset resolution failed")
	ErrInternalServer  = errors.New("internal server error")
)

// AppError はクライアントに返すエラーの詳細を保持するカスタムエラー型です。
// ラップされたセンチネルエラーでHTTPステータスを決定します。
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	err     error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		err:     err,
	}
}

func (e *AppError) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// ErrorDetail はAPIエラーレスポンスのボディ部です
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
