// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"total_recall/internal/model"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
// これがアプリケーションのエラーハンドリングの中心となります。
// 生のドライバエラーはクライアントへ転送せず、ログにのみ出力します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError

	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{
			Error: model.ErrorDetail{
				Code:    appErr.Code,
				Message: appErr.Message,
				Field:   appErr.Field,
			},
		}
	} else if detail, ok := sentinelErrorDetail(err); ok {
		// リポジトリから素のセンチネルが届いても種別タグを保つ。
		// 想定内のエラーなのでここではログを出さない (ハンドラ側が出す)
		errResp = model.APIErrorResponse{Error: detail}
	} else {
		// AppError でもセンチネルでもない予期せぬエラー。詳細はログのみ
		logger.Error("Unhandled error", slog.Any("error", err))
		errResp = model.APIErrorResponse{
			Error: model.ErrorDetail{
				Code:    "INTERNAL_SERVER_ERROR",
				Message: "サーバー内部でエラーが発生しました。",
			},
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// sentinelErrorDetail はラップされていないセンチネルエラーを
// レスポンスボディ用のコードとメッセージに変換します。
func sentinelErrorDetail(err error) (model.ErrorDetail, bool) {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return model.ErrorDetail{Code: "UNAUTHORIZED", Message: "この操作を行う権限がありません。"}, true
	case errors.Is(err, model.ErrNotFound):
		return model.ErrorDetail{Code: "NOT_FOUND", Message: "対象のリソースが見つかりません。"}, true
	case errors.Is(err, model.ErrInvalidInput):
		return model.ErrorDetail{Code: "INVALID_INPUT", Message: "入力内容が正しくありません。"}, true
	case errors.Is(err, model.ErrConflict):
		return model.ErrorDetail{Code: "CONFLICT", Message: "リソースが競合しています。"}, true
	case errors.Is(err, model.ErrAssetResolution):
		return model.ErrorDetail{Code: "ASSET_RESOLUTION_FAILED", Message: "外部アセットの取得に失敗しました。"}, true
	}
	return model.ErrorDetail{}, false
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	// AppErrorの場合は、ラップされたエラーで判定する
	if errors.As(err, &appErr) {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrAssetResolution):
		return http.StatusBadGateway // 外部プロバイダ起因の失敗
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"レスポンス生成中にエラーが発生しました。"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
