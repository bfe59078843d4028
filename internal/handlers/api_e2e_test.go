// internal/handlers/api_e2e_test.go
//
// ルータからDBまでを実際に通すAPIテスト。外部のアセットプロバイダだけを
// httptest のフェイクに差し替えています。
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"total_recall/internal/assets"
	"total_recall/internal/config"
	"total_recall/internal/handlers"
	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/repository"
	"total_recall/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testApp struct {
	router *chi.Mux
	db     *gorm.DB
	cfg    *config.Config
}

// setupTestApp はSQLiteと本物のサービス層でAPI全体を組み立てます。
// "nores" という単語だけは画像検索が0件になるように仕込んであります。
func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api_test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	require.NoError(t, db.Create(&model.Language{ID: 1, Name: "Spanish", Abbreviation: "es"}).Error)

	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpg-bytes"))
	}))
	t.Cleanup(imageServer.Close)

	searchServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "nores" {
			w.Write([]byte(`<html><body><p>no results</p></body></html>`))
			return
		}
		w.Write([]byte(`<html><body><img alt="" src="` + imageServer.URL + `/thumb.jpg"></body></html>`))
	}))
	t.Cleanup(searchServer.Close)

	ttsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp3-bytes"))
	}))
	t.Cleanup(ttsServer.Close)

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "e2e-test-secret"
	cfg.JWT.ExpiryHours = 1
	cfg.Assets.Root = t.TempDir()
	cfg.Assets.ImageSearchURL = searchServer.URL
	cfg.Assets.TTSURL = ttsServer.URL
	cfg.Assets.TimeoutSeconds = 5

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repository.NewGormUserRepository()
	deckRepo := repository.NewGormDeckRepository()
	cardRepo := repository.NewGormCardRepository()
	scoreRepo := repository.NewGormScoreRepository()
	setRepo := repository.NewGormSetRepository()

	assetCache := assets.NewCache(cfg)

	userHandler := handlers.NewUserHandler(service.NewUserService(db, userRepo), logger)
	authHandler := handlers.NewAuthHandler(service.NewAuthService(db, userRepo, cfg), logger)
	deckHandler := handlers.NewDeckHandler(service.NewDeckService(db, deckRepo), logger)
	cardHandler := handlers.NewCardHandler(service.NewCardService(db, cardRepo, deckRepo, assetCache), logger)
	scoreHandler := handlers.NewScoreHandler(service.NewScoreService(db, scoreRepo, cardRepo), logger)
	setHandler := handlers.NewSetHandler(service.NewSetService(db, setRepo), logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JWTAuthMiddleware(cfg))

		r.Post("/login", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.PostUser)
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
		})
		r.Route("/sets", func(r chi.Router) {
			r.Post("/", setHandler.PostSet)
			r.Post("/batch", setHandler.PostSets)
			r.Patch("/{id}", setHandler.PatchSet)
			r.Delete("/{id}", setHandler.DeleteSet)
		})
	})

	fileServer := http.FileServer(http.Dir(cfg.Assets.Root))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	return &testApp{router: r, db: db, cfg: cfg}
}

func (app *testApp) do(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		if raw, ok := payload.(string); ok {
			body = strings.NewReader(raw)
		} else {
			buf, err := json.Marshal(payload)
			require.NoError(t, err)
			body = bytes.NewReader(buf)
		}
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

// registerAndLogin はユーザーを作成してアクセストークンを返します。
func (app *testApp) registerAndLogin(t *testing.T, username string) (uint, string) {
	t.Helper()
	code, body := app.do(t, "POST", "/api/users", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var user model.User
	require.NoError(t, json.Unmarshal(body, &user))

	code, body = app.do(t, "POST", "/api/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, code, string(body))
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.AccessToken)
	return user.ID, resp.AccessToken
}

func (app *testApp) createDeck(t *testing.T, token, name string) model.Deck {
	t.Helper()
	code, body := app.do(t, "POST", "/api/decks", token, map[string]any{
		"name":     name,
		"language": 1,
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var deck model.Deck
	require.NoError(t, json.Unmarshal(body, &deck))
	return deck
}

func TestAPI_UserLifecycle(t *testing.T) {
	app := setupTestApp(t)

	t.Run("登録時は created_at と updated_at が等しい", func(t *testing.T) {
		code, body := app.do(t, "POST", "/api/users", "", map[string]string{
			"username": "alice",
			"password": "password123",
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		var user model.User
		require.NoError(t, json.Unmarshal(body, &user))
		assert.NotZero(t, user.ID)
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
		// パスワードはレスポンスに含まれない
		assert.NotContains(t, string(body), "password")
	})

	t.Run("短すぎるパスワードは400", func(t *testing.T) {
		code, _ := app.do(t, "POST", "/api/users", "", map[string]string{
			"username": "bob",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("誤ったパスワードでのログインは401", func(t *testing.T) {
		code, _ := app.do(t, "POST", "/api/login", "", map[string]string{
			"username": "alice",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("パスワード変更は本人のみで updated_at が進む", func(t *testing.T) {
		userID, token := app.registerAndLogin(t, "carol")

		var before model.User
		require.NoError(t, app.db.First(&before, userID).Error)

		time.Sleep(2 * time.Millisecond)
		code, body := app.do(t, "PATCH", "/api/users/"+itoa(userID), token, map[string]string{
			"password": "newpassword456",
		})
		require.Equal(t, http.StatusOK, code, string(body))

		var after model.User
		require.NoError(t, app.db.First(&after, userID).Error)
		assert.Greater(t, after.UpdatedAt, before.UpdatedAt)
		assert.Equal(t, before.CreatedAt, after.CreatedAt)

		// 旧パスワードではもうログインできない
		code, _ = app.do(t, "POST", "/api/login", "", map[string]string{
			"username": "carol",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("他人のアカウントは削除できない", func(t *testing.T) {
		daveID, _ := app.registerAndLogin(t, "dave")
		_, eveToken := app.registerAndLogin(t, "eve")

		code, _ := app.do(t, "DELETE", "/api/users/"+itoa(daveID), eveToken, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("本人の削除は削除行数を返し再削除は0件", func(t *testing.T) {
		frankID, token := app.registerAndLogin(t, "frank")

		code, body := app.do(t, "DELETE", "/api/users/"+itoa(frankID), token, nil)
		require.Equal(t, http.StatusOK, code, string(body))
		var deleted model.DeletedCount
		require.NoError(t, json.Unmarshal(body, &deleted))
		assert.Equal(t, int64(1), deleted.Count)

		code, body = app.do(t, "DELETE", "/api/users/"+itoa(frankID), token, nil)
		require.Equal(t, http.StatusOK, code, string(body))
		require.NoError(t, json.Unmarshal(body, &deleted))
		assert.Equal(t, int64(0), deleted.Count)
	})
}

func TestAPI_DeckAuthorization(t *testing.T) {
	app := setupTestApp(t)
	_, aliceToken := app.registerAndLogin(t, "alice")
	_, bobToken := app.registerAndLogin(t, "bob")

	t.Run("匿名はデッキを作れない", func(t *testing.T) {
		code, _ := app.do(t, "POST", "/api/decks", "", map[string]any{"name": "x", "language": 1})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("所有者は常に呼び出し元になる", func(t *testing.T) {
		deck := app.createDeck(t, aliceToken, "Spanish A1")
		var stored model.Deck
		require.NoError(t, app.db.First(&stored, deck.ID).Error)
		assert.Equal(t, deck.Owner, stored.Owner)
		assert.NotZero(t, stored.Owner)
	})

	t.Run("他人のデッキは変更も削除もできない", func(t *testing.T) {
		deck := app.createDeck(t, aliceToken, "Spanish A2")

		code, _ := app.do(t, "PATCH", "/api/decks/"+itoa(deck.ID), bobToken, map[string]string{"name": "stolen"})
		assert.Equal(t, http.StatusUnauthorized, code)

		code, _ = app.do(t, "DELETE", "/api/decks/"+itoa(deck.ID), bobToken, nil)
		assert.Equal(t, http.StatusUnauthorized, code)

		// 名前は変わっていない
		var stored model.Deck
		require.NoError(t, app.db.First(&stored, deck.ID).Error)
		assert.Equal(t, "Spanish A2", stored.Name)
	})

	t.Run("改ざんされたトークンは401", func(t *testing.T) {
		code, _ := app.do(t, "POST", "/api/decks", aliceToken+"x", map[string]any{"name": "x", "language": 1})
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestAPI_CardCreationWithAssets(t *testing.T) {
	app := setupTestApp(t)
	_, token := app.registerAndLogin(t, "alice")
	deck := app.createDeck(t, token, "Spanish")

	t.Run("作成されたカードの裏面はキャッシュ済みアセットを指す", func(t *testing.T) {
		code, body := app.do(t, "POST", "/api/cards", token, map[string]any{
			"front": "the dog",
			"back":  "perro",
			"deck":  deck.ID,
		})
		require.Equal(t, http.StatusCreated, code, string(body))

		var card model.Card
		require.NoError(t, json.Unmarshal(body, &card))
		require.NotNil(t, card.Back)
		require.NotNil(t, card.Back.Audio)
		require.NotNil(t, card.Back.Image)
		assert.Equal(t, "audio/es/perro.mp3", *card.Back.Audio)
		assert.Equal(t, "images/es/perro.jpg", *card.Back.Image)

		// ファイルが実際に置かれ、静的配信で取得できる
		audioPath := filepath.Join(app.cfg.Assets.Root, "audio", "es", "perro.mp3")
		_, err := os.Stat(audioPath)
		require.NoError(t, err)

		getCode, getBody := app.do(t, "GET", "/static/audio/es/perro.mp3", "", nil)
		require.Equal(t, http.StatusOK, getCode)
		assert.Equal(t, "mp3-bytes", string(getBody))
	})

	t.Run("アセット解決に失敗したらカードも裏面も作られない", func(t *testing.T) {
		var cardsBefore, backsBefore int64
		app.db.Model(&model.Card{}).Count(&cardsBefore)
		app.db.Model(&model.Back{}).Count(&backsBefore)

		code, _ := app.do(t, "POST", "/api/cards", token, map[string]any{
			"front": "nothing",
			"back":  "nores",
			"deck":  deck.ID,
		})
		assert.Equal(t, http.StatusBadGateway, code)

		var cardsAfter, backsAfter int64
		app.db.Model(&model.Card{}).Count(&cardsAfter)
		app.db.Model(&model.Back{}).Count(&backsAfter)
		assert.Equal(t, cardsBefore, cardsAfter)
		assert.Equal(t, backsBefore, backsAfter)
	})

	t.Run("バッチは1件の失敗で全体がロールバックされる", func(t *testing.T) {
		var cardsBefore int64
		app.db.Model(&model.Card{}).Count(&cardsBefore)

		code, body := app.do(t, "POST", "/api/cards/batch", token, map[string]any{
			"cards": []map[string]any{
				{"front": "the cat", "back": "gato", "deck": deck.ID},
				{"front": "nothing", "back": "nores", "deck": deck.ID},
			},
		})
		assert.Equal(t, http.StatusBadGateway, code, string(body))

		var cardsAfter int64
		app.db.Model(&model.Card{}).Count(&cardsAfter)
		assert.Equal(t, cardsBefore, cardsAfter)
	})

	t.Run("同じ裏面テキストの2枚目はキャッシュに当たる", func(t *testing.T) {
		code, body := app.do(t, "POST", "/api/cards", token, map[string]any{
			"front": "dog (noun)",
			"back":  "perro",
			"deck":  deck.ID,
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		var card model.Card
		require.NoError(t, json.Unmarshal(body, &card))
		require.NotNil(t, card.Back)
		require.NotNil(t, card.Back.Audio)
		assert.Equal(t, "audio/es/perro.mp3", *card.Back.Audio)
	})
}

func TestAPI_CardLinkPatch(t *testing.T) {
	app := setupTestApp(t)
	_, token := app.registerAndLogin(t, "alice")
	deck := app.createDeck(t, token, "Spanish")

	code, body := app.do(t, "POST", "/api/cards", token, map[string]any{
		"front": "the dog",
		"back":  "perro",
		"deck":  deck.ID,
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var card model.Card
	require.NoError(t, json.Unmarshal(body, &card))

	t.Run("URL形式でない link は400", func(t *testing.T) {
		code, _ := app.do(t, "PATCH", "/api/cards/"+itoa(card.ID), token,
			`{"link": "not a url"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("link の設定", func(t *testing.T) {
		code, body := app.do(t, "PATCH", "/api/cards/"+itoa(card.ID), token,
			`{"link": "https://example.com/perro"}`)
		require.Equal(t, http.StatusOK, code, string(body))
		var updated model.Card
		require.NoError(t, json.Unmarshal(body, &updated))
		require.NotNil(t, updated.Link)
		assert.Equal(t, "https://example.com/perro", *updated.Link)
	})

	t.Run("link 省略時は現在値を維持する", func(t *testing.T) {
		code, body := app.do(t, "PATCH", "/api/cards/"+itoa(card.ID), token, `{}`)
		require.Equal(t, http.StatusOK, code, string(body))
		var updated model.Card
		require.NoError(t, json.Unmarshal(body, &updated))
		require.NotNil(t, updated.Link)
		assert.Equal(t, "https://example.com/perro", *updated.Link)
	})

	t.Run("明示的な null で link をクリアする", func(t *testing.T) {
		code, body := app.do(t, "PATCH", "/api/cards/"+itoa(card.ID), token, `{"link": null}`)
		require.Equal(t, http.StatusOK, code, string(body))
		var updated model.Card
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.Nil(t, updated.Link)
	})
}

func TestAPI_ScoresAndSets(t *testing.T) {
	app := setupTestApp(t)
	_, token := app.registerAndLogin(t, "alice")
	_, bobToken := app.registerAndLogin(t, "bob")
	deck := app.createDeck(t, token, "Spanish")

	createCard := func(back string) model.Card {
		code, body := app.do(t, "POST", "/api/cards", token, map[string]any{
			"front": "front of " + back,
			"back":  back,
			"deck":  deck.ID,
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		var card model.Card
		require.NoError(t, json.Unmarshal(body, &card))
		return card
	}
	cardA := createCard("perro")
	cardB := createCard("gato")

	t.Run("スコアは0〜5のみ", func(t *testing.T) {
		code, _ := app.do(t, "POST", "/api/scores", token, map[string]any{"card": cardA.ID, "value": 6})
		assert.Equal(t, http.StatusBadRequest, code)

		code, body := app.do(t, "POST", "/api/scores", token, map[string]any{"card": cardA.ID, "value": 0})
		require.Equal(t, http.StatusCreated, code, string(body))
		var score model.Score
		require.NoError(t, json.Unmarshal(body, &score))
		assert.Equal(t, int16(0), score.Value)
	})

	t.Run("他人のカードにはスコアを付けられない", func(t *testing.T) {
		code, _ := app.do(t, "POST", "/api/scores", bobToken, map[string]any{"card": cardA.ID, "value": 3})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("スコアのバッチは同じタイムスタンプを共有する", func(t *testing.T) {
		code, body := app.do(t, "POST", "/api/scores/batch", token, map[string]any{
			"scores": []map[string]any{
				{"card": cardA.ID, "value": 3},
				{"card": cardB.ID, "value": 5},
			},
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		var scores []model.Score
		require.NoError(t, json.Unmarshal(body, &scores))
		require.Len(t, scores, 2)
		assert.Equal(t, scores[0].CreatedAt, scores[1].CreatedAt)
	})

	t.Run("セット作成は結合行も作る", func(t *testing.T) {
		code, body := app.do(t, "POST", "/api/sets", token, map[string]any{
			"name":  "review",
			"deck":  deck.ID,
			"cards": []uint{cardA.ID, cardB.ID},
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		var set model.Set
		require.NoError(t, json.Unmarshal(body, &set))

		var joinCount int64
		app.db.Model(&model.SetCard{}).Where("set_id = ?", set.ID).Count(&joinCount)
		assert.Equal(t, int64(2), joinCount)

		// セット削除で結合行も消えるがカードは残る
		code, body = app.do(t, "DELETE", "/api/sets/"+itoa(set.ID), token, nil)
		require.Equal(t, http.StatusOK, code, string(body))
		var deleted model.DeletedCount
		require.NoError(t, json.Unmarshal(body, &deleted))
		assert.Equal(t, int64(1), deleted.Count)

		// 同じIDへの再削除は成功して0件を返す
		code, body = app.do(t, "DELETE", "/api/sets/"+itoa(set.ID), token, nil)
		require.Equal(t, http.StatusOK, code, string(body))
		require.NoError(t, json.Unmarshal(body, &deleted))
		assert.Equal(t, int64(0), deleted.Count)

		app.db.Model(&model.SetCard{}).Where("set_id = ?", set.ID).Count(&joinCount)
		assert.Zero(t, joinCount)
		var cardCount int64
		app.db.Model(&model.Card{}).Count(&cardCount)
		assert.NotZero(t, cardCount)
	})
}

func TestAPI_DeckDeleteCascades(t *testing.T) {
	app := setupTestApp(t)
	_, token := app.registerAndLogin(t, "alice")
	deck := app.createDeck(t, token, "Spanish")

	code, body := app.do(t, "POST", "/api/cards", token, map[string]any{
		"front": "the dog", "back": "perro", "deck": deck.ID,
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var card model.Card
	require.NoError(t, json.Unmarshal(body, &card))

	code, _ = app.do(t, "POST", "/api/scores", token, map[string]any{"card": card.ID, "value": 4})
	require.Equal(t, http.StatusCreated, code)

	code, _ = app.do(t, "POST", "/api/sets", token, map[string]any{
		"name": "review", "deck": deck.ID, "cards": []uint{card.ID},
	})
	require.Equal(t, http.StatusCreated, code)

	code, body = app.do(t, "DELETE", "/api/decks/"+itoa(deck.ID), token, nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var deleted model.DeletedCount
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, int64(1), deleted.Count)

	code, body = app.do(t, "DELETE", "/api/decks/"+itoa(deck.ID), token, nil)
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, int64(0), deleted.Count)

	// 配下のリソースがすべて消えている
	for name, m := range map[string]any{
		"decks":     &model.Deck{},
		"cards":     &model.Card{},
		"backs":     &model.Back{},
		"scores":    &model.Score{},
		"sets":      &model.Set{},
		"set_cards": &model.SetCard{},
	} {
		var count int64
		app.db.Model(m).Count(&count)
		assert.Zero(t, count, "table %s should be empty", name)
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
