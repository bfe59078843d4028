// internal/handlers/set_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/service"
	"total_recall/internal/webutil"
)

type SetHandler struct {
	service service.SetService
	logger  *slog.Logger
}

func NewSetHandler(s service.SetService, logger *slog.Logger) *SetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SetHandler{
		service: s,
		logger:  logger,
	}
}

// PostSet は学習セットを作成するためのハンドラ
func (h *SetHandler) PostSet(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSet"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewSetRequest
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

	set, err := h.service.CreateSet(r.Context(), callerID, &req)
	if err != nil {
		logger.Error("Error creating set in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Set created successfully", slog.Uint64("set_id", uint64(set.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, set, logger)
}

// PostSets は複数セットを一括作成するためのハンドラ
func (h *SetHandler) PostSets(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSets"))
	callerID := middleware.GetUserID(r.Context())

	var req model.NewSetsRequest
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

	sets, err := h.service.CreateSets(r.Context(), callerID, req.Sets)
	if err != nil {
		logger.Error("Error creating sets in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Sets created successfully", slog.Int("count", len(sets)))
	webutil.RespondWithJSON(w, http.StatusCreated, sets, logger)
}

// PatchSet はセット名を変更するためのハンドラ (所有者のみ)
func (h *SetHandler) PatchSet(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchSet"))
	callerID := middleware.GetUserID(r.Context())

	setID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid set ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("set_id", uint64(setID)))

	var req model.PatchSetRequest
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

	set, err := h.service.UpdateSet(r.Context(), callerID, setID, &req)
	if err != nil {
		logger.Error("Error updating set in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Set updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, set, logger)
}

// DeleteSet はセットと結合行を削除するためのハンドラ (所有者のみ)
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteSet"))
	callerID := middleware.GetUserID(r.Context())

	setID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid set ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("set_id", uint64(setID)))

	count, err := h.service.DeleteSet(r.Context(), callerID, setID)
	if err != nil {
		logger.Error("Error deleting set in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Set deleted successfully", slog.Int64("count", count))
	webutil.RespondWithJSON(w, http.StatusOK, model.DeletedCount{Count: count}, logger)
}
