// internal/handlers/user_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"total_recall/internal/middleware"
	"total_recall/internal/model"
	"total_recall/internal/service"
	"total_recall/internal/webutil"
)

type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		service: s,
		logger:  logger,
	}
}

// PostUser は新規ユーザーを登録するためのハンドラ (認証不要)
func (h *UserHandler) PostUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostUser"))

	var req model.NewUserRequest
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

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating user in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User created successfully", slog.Uint64("user_id", uint64(user.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, user, logger)
}

// PostUsers は複数ユーザーを一括登録するためのハンドラ
func (h *UserHandler) PostUsers(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostUsers"))

	var req model.NewUsersRequest
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

	users, err := h.service.CreateUsers(r.Context(), req.Users)
	if err != nil {
		logger.Error("Error creating users in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Users created successfully", slog.Int("count", len(users)))
	webutil.RespondWithJSON(w, http.StatusCreated, users, logger)
}

// PatchUser はパスワードを変更するためのハンドラ (本人のみ)
func (h *UserHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchUser"))
	callerID := middleware.GetUserID(r.Context())

	userID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid user ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("user_id", uint64(userID)))

	var req model.PatchUserRequest
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

	user, err := h.service.UpdatePassword(r.Context(), callerID, userID, &req)
	if err != nil {
		logger.Error("Error updating password in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Password updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, user, logger)
}

// DeleteUser はアカウントを削除するためのハンドラ (本人のみ)。削除行数を返します。
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteUser"))
	callerID := middleware.GetUserID(r.Context())

	userID, err := parseIDParam(r, "id")
	if err != nil {
		logger.Warn("Invalid user ID in URL", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With(slog.Uint64("user_id", uint64(userID)))

	count, err := h.service.DeleteUser(r.Context(), callerID, userID)
	if err != nil {
		logger.Error("Error deleting user in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("User deleted successfully", slog.Int64("count", count))
	webutil.RespondWithJSON(w, http.StatusOK, model.DeletedCount{Count: count}, logger)
}
