// internal/assets/assets.go
//
// (言語, 単語) の組をローカルにキャッシュされた音声・画像ファイルへ解決する
// キャッシュアサイド層。パスは入力から決定的に計算され、既存ファイルは
// 決して上書きされないため、同じ語彙の再解決はネットワークに触れません。
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"total_recall/internal/config"
	"total_recall/internal/middleware"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/singleflight"
)

const (
	kindAudio = "audio"
	kindImage = "images"

	extAudio = ".mp3"
	extImage = ".jpg"
)

// Cache はアセット解決キャッシュの実体です。
type Cache struct {
	root      string
	searchURL string
	ttsURL    string
	client    *http.Client

	// 同じ未キャッシュキーへの同時解決を1回のフェッチにまとめる
	group singleflight.Group
}

func NewCache(cfg *config.Config) *Cache {
	return &Cache{
		root:      cfg.Assets.Root,
		searchURL: cfg.Assets.ImageSearchURL,
		ttsURL:    cfg.Assets.TTSURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.Assets.TimeoutSeconds) * time.Second,
		},
	}
}

// ResolveAudio は単語の発音音声を解決し、アセットルートからの相対パスを返します。
func (c *Cache) ResolveAudio(ctx context.Context, languageAbbr, word string) (string, error) {
	sanitized := sanitizeWord(word)
	rel := path.Join(kindAudio, languageAbbr, sanitized+extAudio)

	return c.resolve(ctx, rel, func() error {
		ttsURL := c.buildTTSURL(languageAbbr, word)
		body, err := c.fetch(ctx, ttsURL)
		if err != nil {
			return newError(KindNetwork, "audio", word, err)
		}
		defer body.Close()

		if err := c.writeFile(rel, body); err != nil {
			return newError(KindFilesystem, "audio", word, err)
		}
		return nil
	})
}

// ResolveImage は単語のイメージ画像を解決し、アセットルートからの相対パスを返します。
func (c *Cache) ResolveImage(ctx context.Context, languageAbbr, word string) (string, error) {
	sanitized := sanitizeWord(word)
	rel := path.Join(kindImage, languageAbbr, sanitized+extImage)

	return c.resolve(ctx, rel, func() error {
		imageURL, err := c.searchFirstImage(ctx, word)
		if err != nil {
			return err
		}

		body, err := c.fetch(ctx, imageURL)
		if err != nil {
			return newError(KindNetwork, "image", word, err)
		}
		defer body.Close()

		if err := c.writeFile(rel, body); err != nil {
			return newError(KindFilesystem, "image", word, err)
		}
		return nil
	})
}

// resolve はキャッシュヒット判定と singleflight による重複排除を共通化します。
func (c *Cache) resolve(ctx context.Context, rel string, fetch func() error) (string, error) {
	abs := filepath.Join(c.root, filepath.FromSlash(rel))

	// キャッシュヒット: ネットワークには一切触れない
	if _, err := os.Stat(abs); err == nil {
		return rel, nil
	}

	logger := middleware.GetLogger(ctx)
	_, err, shared := c.group.Do(rel, func() (interface{}, error) {
		// 待っている間に他のリクエストが書き終えている可能性がある
		if _, err := os.Stat(abs); err == nil {
			return nil, nil
		}
		return nil, fetch()
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("Asset fetch deduplicated", "path", rel)
	}
	return rel, nil
}

// buildTTSURL は (単語, 言語略称) から外部TTSのリクエストURLを決定的に構築します。
func (c *Cache) buildTTSURL(languageAbbr, word string) string {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", languageAbbr)
	params.Set("q", word)
	return c.ttsURL + "?" + params.Encode()
}

// searchFirstImage は画像検索プロバイダに問い合わせ、最初の画像結果のURLを返します。
func (c *Cache) searchFirstImage(ctx context.Context, word string) (string, error) {
	params := url.Values{}
	params.Set("q", word)
	params.Set("tbm", "isch")    // 画像検索
	params.Set("tbs", "ift:jpg") // jpgのみ
	searchURL := c.searchURL + "?" + params.Encode()

	body, err := c.fetch(ctx, searchURL)
	if err != nil {
		return "", newError(KindNetwork, "image", word, err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", newError(KindParse, "image", word, err)
	}

	// alt属性が空のimg要素が検索結果のサムネイル
	var imageURL string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		alt, hasAlt := s.Attr("alt")
		src, hasSrc := s.Attr("src")
		if !hasAlt || alt != "" || !hasSrc || src == "" {
			return true
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		if !strings.HasPrefix(src, "http") {
			return true // data URIなどは飛ばす
		}
		imageURL = src
		return false
	})
	if imageURL == "" {
		return "", newError(KindNoResult, "image", word, fmt.Errorf("no image result in document"))
	}
	return imageURL, nil
}

func (c *Cache) fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// writeFile は一時ファイルに書き切ってからリネームします。失敗時に不完全な
// キャッシュファイルが残らず、既存ファイルを上書きすることもありません。
func (c *Cache) writeFile(rel string, body io.Reader) error {
	abs := filepath.Join(c.root, filepath.FromSlash(rel))
	dir := filepath.Dir(abs)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	// 競合した書き込みが先に完了していたら、そちらを正とする
	if _, err := os.Stat(abs); err == nil {
		os.Remove(tmpName)
		return nil
	}

	return os.Rename(tmpName, abs)
}
