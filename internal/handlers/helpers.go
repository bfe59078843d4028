// internal/handlers/helpers.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"total_recall/internal/model"
	"total_recall/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// validateStruct は共有バリデータで構造体を検証し、最初のエラーを
// 日本語メッセージ付きの AppError に変換して返します。
func validateStruct(req any) error {
	err := webutil.Validator.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		// 最初のエラーを代表としてクライアントに返す
		firstErr := validationErrors[0]
		translatedMsg := firstErr.Translate(webutil.Trans)
		return model.NewAppError(
			"VALIDATION_ERROR",
			translatedMsg,
			firstErr.Field(), // エラーが発生したフィールド (jsonタグ名)
			model.ErrInvalidInput,
		)
	}
	return err
}

// parseIDParam はURLパスの数値IDを取り出します。
func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, model.NewAppError("INVALID_URL_PARAM", name+"の形式が正しくありません。", name, model.ErrInvalidInput)
	}
	return uint(id), nil
}
