// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "total-recall"
	AppVersion = "0.2.0"
)

// デフォルト設定値
const (
	DefaultServerPort          = ":8080"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "json"
	DefaultJWTExpiryHours      = 24
	DefaultAssetsRoot          = "./static"
	DefaultAssetTimeoutSeconds = 15
)

// 外部プロバイダのエンドポイント
const (
	DefaultImageSearchURL = "https://www.google.com/search"
	DefaultTTSURL         = "https://translate.google.com/translate_tts"
)
