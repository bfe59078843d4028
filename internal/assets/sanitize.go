// internal/assets/sanitize.go
package assets

import (
	"strings"
	"unicode"
)

// sanitizeWord は単語をファイル名として安全なトークンに変換します。
// 同じ入力は常に同じトークンになるため、キャッシュパスは入力の決定的関数です。
func sanitizeWord(word string) string {
	var b strings.Builder
	for _, r := range word {
		switch {
		case r == '/' || r == '\\' || r == '?' || r == '%' || r == '*' ||
			r == ':' || r == '|' || r == '"' || r == '<' || r == '>':
			// パス区切りと予約文字は落とす
		case unicode.IsControl(r):
			// 制御文字も落とす
		default:
			b.WriteRune(r)
		}
	}

	// 先頭・末尾のドットと空白はファイル名として危険なので剥がす
	s := strings.Trim(b.String(), ". ")
	if s == "" {
		return "_"
	}
	return s
}
