// internal/handlers/score_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/service"
	"total_recall/internal/webutil"
)

type ScoreHandler struct {
	service service.ScoreService
	logger  *slog.Logger
}

func NewScoreHandler(s service.ScoreService, logger *slog.Logger) *ScoreHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreHandler{
		service: s,
		logger:  logger,
	}
}

// PostScore は復習スコアを記録するためのハンドラ (カード所有者のみ)
func (h *ScoreHandler) PostScore(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostScore"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewScoreRequest
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

	score, err := h.service.CreateScore(r.Context(), callerID, &req)
	if err != nil {
		logger.Error("Error creating score in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Score created successfully", slog.Uint64("score_id", uint64(score.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, score, logger)
}

// PostScores は複数スコアを一括記録するためのハンドラ
func (h *ScoreHandler) PostScores(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostScores"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewScoresRequest
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

	scores, err := h.service.CreateScores(r.Context(), callerID, req.Scores)
	if err != nil {
		logger.Error("Error creating scores in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Scores created successfully", slog.Int("count", len(scores)))
	webutil.RespondWithJSON(w, http.StatusCreated, scores, logger)
}

// PatchScore はスコアの value を変更するためのハンドラ (カード所有者のみ)
func (h *ScoreHandler) PatchScore(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchScore"))
	callerID := middleware.GetUserID(r.Context())

	scoreID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid score ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("score_id", uint64(scoreID)))

	var req model.PatchScoreRequest
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

	score, err := h.service.UpdateScore(r.Context(), callerID, scoreID, &req)
	if err != nil {
		logger.Error("Error updating score in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Score updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, score, logger)
}
