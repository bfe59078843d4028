// internal/assets/error.go
package assets

import (
	"fmt"

	"total_recall/internal/model"
)

// ErrorKind はアセット解決の失敗種別です
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"    // 外部プロバイダへの通信失敗
	KindParse      ErrorKind = "parse"      // 検索結果HTMLの解析失敗
	KindNoResult   ErrorKind = "no_result"  // セレクタが何もマッチしなかった
	KindFilesystem ErrorKind = "filesystem" // ディレクトリ作成・ファイル書き込み失敗
)

// Error はアセット解決の失敗を種別付きで表します。
// model.ErrAssetResolution にアンラップされ、HTTP層で 502 に対応付けられます。
type Error struct {
	Kind ErrorKind
	Op   string // "audio" または "image"
	Word string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("asset %s resolution failed (%s) for %q: %v", e.Op, e.Kind, e.Word, e.Err)
	}
	return fmt.Sprintf("asset %s resolution failed (%s) for %q", e.Op, e.Kind, e.Word)
}

func (e *Error) Unwrap() error {
	return model.ErrAssetResolution
}

func newError(kind ErrorKind, op, word string, err error) *Error {
	return &Error{Kind: kind, Op: op, Word: word, Err: err}
}
