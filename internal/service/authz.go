// internal/service/authz.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"total_recall/internal/middleware"
	"total_recall/internal/model"
)

// Authorize は呼び出し元の識別子と対象リソースの所有者一覧を突き合わせる認可ゲートです。
// 匿名 (callerID == nil) はあらゆる書き込みで拒否。所有者が1人でも一致しなければ
// バッチ全体を拒否し、何番目の対象で不一致が起きたかを Field で報告します。
// 副作用はありません。所有者の解決は呼び出し側が開いているトランザクション内で行います。
func Authorize(callerID *uint, targetOwnerIDs ...uint) error {
	if callerID == nil {
		return model.NewAppError("UNAUTHORIZED", "この操作にはログインが必要です。", "", model.ErrUnauthorized)
	}
	for i, ownerID := range targetOwnerIDs {
		if *callerID != ownerID {
			field := ""
			if len(targetOwnerIDs) > 1 {
				field = fmt.Sprintf("items[%d]", i)
			}
			return model.NewAppError("UNAUTHORIZED", "他のユーザーのリソースは操作できません。", field, model.ErrUnauthorized)
		}
	}
	return nil
}

// nowMillis は1リクエストにつき1回だけ取得されるエポックミリ秒のタイムスタンプです。
// バッチで挿入される全行はこの同じ値を共有します。
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// annotateBatchItem は分類済みのエラーに、失敗したバッチ要素の位置を付与します。
// 既にフィールド情報を持つ場合は上書きしません。
func annotateBatchItem(err error, field string) error {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		if appErr.Field != "" {
			return err
		}
		return model.NewAppError(appErr.Code, appErr.Message, field, err)
	}
	if errors.Is(err, model.ErrAssetResolution) {
		return model.NewAppError("ASSET_RESOLUTION_FAILED", "外部アセットの取得に失敗しました。", field, err)
	}
	return err
}

// mapServiceError は分類済みのエラーをそのまま通し、それ以外を内部エラーへ丸めます。
// 生のドライバエラーがこの層より外に漏れることはありません。
func mapServiceError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrConflict),
		errors.Is(err, model.ErrAssetResolution):
		return err
	}
	middleware.GetLogger(ctx).Error("Transaction failed", "op", op, "error", err)
	return model.ErrInternalServer
}
