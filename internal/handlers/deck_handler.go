// internal/handlers/deck_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/service"
	"total_recall/internal/webutil"
)

type DeckHandler struct {
	service service.DeckService
	logger  *slog.Logger
}

func NewDeckHandler(s service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		service: s,
		logger:  logger,
	}
}

// PostDeck は呼び出し元を所有者とするデッキを作成するためのハンドラ
func (h *DeckHandler) PostDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostDeck"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewDeckRequest
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

	deck, err := h.service.CreateDeck(r.Context(), callerID, &req)
	if err != nil {
		logger.Error("Error creating deck in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck created successfully", slog.Uint64("deck_id", uint64(deck.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, deck, logger)
}

// PostDecks は複数デッキを一括作成するためのハンドラ
func (h *DeckHandler) PostDecks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostDecks"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewDecksRequest
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

	decks, err := h.service.CreateDecks(r.Context(), callerID, req.Decks)
	if err != nil {
		logger.Error("Error creating decks in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Decks created successfully", slog.Int("count", len(decks)))
	webutil.RespondWithJSON(w, http.StatusCreated, decks, logger)
}

// PatchDeck はデッキ名を変更するためのハンドラ (所有者のみ)
func (h *DeckHandler) PatchDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchDeck"))
	callerID := middleware.GetUserID(r.Context())

	deckID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid deck ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("deck_id", uint64(deckID)))

	var req model.PatchDeckRequest
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

	deck, err := h.service.UpdateDeck(r.Context(), callerID, deckID, &req)
	if err != nil {
		logger.Error("Error updating deck in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, deck, logger)
}

// DeleteDeck はデッキと配下のリソースを削除するためのハンドラ (所有者のみ)
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDeck"))
	callerID := middleware.GetUserID(r.Context())

	deckID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid deck ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("deck_id", uint64(deckID)))

	count, err := h.service.DeleteDeck(r.Context(), callerID, deckID)
	if err != nil {
		logger.Error("Error deleting deck in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck deleted successfully", slog.Int64("count", count))
	webutil.RespondWithJSON(w, http.StatusOK, model.DeletedCount{Count: count}, logger)
}
