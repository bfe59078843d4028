// internal/config/config.go
package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey   string `mapstructure:"secret_key"`
		ExpiryHours int    `mapstructure:"expiry_hours"`
	} `mapstructure:"jwt"`
	Assets struct {
		Root           string `mapstructure:"root"`             // キャッシュファイルの置き場所 (例: ./static)
		ImageSearchURL string `mapstructure:"image_search_url"` // 画像検索プロバイダのエンドポイント
		TTSURL         string `mapstructure:"tts_url"`          // 音声合成プロバイダのエンドポイント
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"assets"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数での上書きを許可 (例: APP_JWT_SECRET_KEY)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.JWT.ExpiryHours <= 0 {
		Cfg.JWT.ExpiryHours = DefaultJWTExpiryHours
	}
	if Cfg.Assets.Root == "" {
		Cfg.Assets.Root = DefaultAssetsRoot
	}
	if Cfg.Assets.ImageSearchURL == "" {
		Cfg.Assets.ImageSearchURL = DefaultImageSearchURL
	}
	if Cfg.Assets.TTSURL == "" {
		Cfg.Assets.TTSURL = DefaultTTSURL
	}
	if Cfg.Assets.TimeoutSeconds <= 0 {
		Cfg.Assets.TimeoutSeconds = DefaultAssetTimeoutSeconds
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	// 署名キーはグローバル定数ではなく設定からの注入のみ。未設定なら起動を止める
	if Cfg.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is not configured")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Assets Root: %s", Cfg.Assets.Root)

	return nil
}
