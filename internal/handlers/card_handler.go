// internal/handlers/card_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/service"
	"total_recall/internal/webutil"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard はカードを作成するためのハンドラ。裏面の音声と画像は
// 行が書かれる前に解決・キャッシュされます。
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := validateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	card, err := h.service.CreateCard(r.Context(), callerID, &req)
	if err != nil {
		logger.Error("Error creating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.Uint64("card_id", uint64(card.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// PostCards は複数カードを一括作成するためのハンドラ。1件でも失敗すれば
// バッチ全体がロールバックされます。
func (h *CardHandler) PostCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCards"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewCardsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := validateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	cards, err := h.service.CreateCards(r.Context(), callerID, req.Cards)
	if err != nil {
		logger.Error("Error creating cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Cards created successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusCreated, cards, logger)
}

// PatchCard はカードの link を変更するためのハンドラ (所有者のみ)。
// link が省略された場合は現在値を維持し、null はクリアします。
func (h *CardHandler) PatchCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCard"))
	callerID := middleware.GetUserID(r.Context())

	cardID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid card ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("card_id", uint64(cardID)))

	var req model.PatchCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	// link は作成時と同じURL制約に従う (nullによるクリアは常に許可)
	if req.Link.Set && req.Link.Value != nil {
		if err := webutil.Validator.Var(*req.Link.Value, "url"); err != nil {
			logger.Warn("Validation failed", slog.String("error", err.Error()))
			appErr := model.NewAppError("VALIDATION_ERROR", "linkはURL形式で入力してください。", "link", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
	}

	card, err := h.service.UpdateCard(r.Context(), callerID, cardID, &req)
	if err != nil {
		logger.Error("Error updating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// DeleteCard はカードと裏面・スコア・結合行を削除するためのハンドラ (所有者のみ)
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))
	callerID := middleware.GetUserID(r.Context())

	cardID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid card ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("card_id", uint64(cardID)))

	count, err := h.service.DeleteCard(r.Context(), callerID, cardID)
	if err != nil {
		logger.Error("Error deleting card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted successfully", slog.Int64("count", count))
	webutil.RespondWithJSON(w, http.StatusOK, model.DeletedCount{Count: count}, logger)
}
