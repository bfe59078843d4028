// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"total_recall/internal/assets"
	"total_recall/internal/config"
	"total_recall/internal/handlers"
	"total_recall/internal/middleware"
	"total_recall/internal/repository"
	"total_recall/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// データベース接続 (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Dependency Injection
	userRepo := repository.NewGormUserRepository()
	deckRepo := repository.NewGormDeckRepository()
	cardRepo := repository.NewGormCardRepository()
	scoreRepo := repository.NewGormScoreRepository()
	setRepo := repository.NewGormSetRepository()

	assetCache := assets.NewCache(&config.Cfg)

	userService := service.NewUserService(db, userRepo)
	authService := service.NewAuthService(db, userRepo, &config.Cfg)
	deckService := service.NewDeckService(db, deckRepo)
	cardService := service.NewCardService(db, cardRepo, deckRepo, assetCache)
	scoreService := service.NewScoreService(db, scoreRepo, cardRepo)
	setService := service.NewSetService(db, setRepo)

	userHandler := handlers.NewUserHandler(userService, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)
	deckHandler := handlers.NewDeckHandler(deckService, logger)
	cardHandler := handlers.NewCardHandler(cardService, logger)
	scoreHandler := handlers.NewScoreHandler(scoreService, logger)
	setHandler := handlers.NewSetHandler(setService, logger)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api", func(r chi.Router) {
		// トークンがあれば呼び出し元を特定し、なければ匿名として通す。
		// 書き込みの認可はサービス層のゲートが行う
		r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

		r.Post("/login", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.PostUser) // 登録は認証不要
			r.Post("/batch", userHandler.PostUsers)
			r.Patch("/{id}", userHandler.PatchUser)
			r.Delete("/{id}", userHandler.DeleteUser)
		})

		r.Route("/decks", func(r chi.Router) {
			r.Post("/", deckHandler.PostDeck)
			r.Post("/batch", deckHandler.PostDecks)
			r.Patch("/{id}", deckHandler.PatchDeck)
			r.Delete("/{id}", deckHandler.DeleteDeck)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cardHandler.PostCard)
			r.Post("/batch", cardHandler.PostCards)
			r.Patch("/{id}", cardHandler.PatchCard)
			r.Delete("/{id}", cardHandler.DeleteCard)
		})

		r.Route("/scores", func(r chi.Router) {
			r.Post("/", scoreHandler.PostScore)
			r.Post("/batch", scoreHandler.PostScores)
			r.Patch("/{id}", scoreHandler.PatchScore)
			// スコアに削除操作はない
		})

		r.Route("/sets", func(r chi.Router) {
			r.Post("/", setHandler.PostSet)
			r.Post("/batch", setHandler.PostSets)
			r.Patch("/{id}", setHandler.PatchSet)
			r.Delete("/{id}", setHandler.DeleteSet)
		})
	})

	// キャッシュ済みアセット (音声mp3 / 画像jpg) の配信
	fileServer := http.FileServer(http.Dir(config.Cfg.Assets.Root))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
