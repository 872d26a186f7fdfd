package handlers

import (
	"net/http"

	"mood_diary/internal/middleware"
	"mood_diary/internal/model"
	"mood_diary/internal/service"
	"mood_diary/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// SignInAnonymously はゲストとしてサインインし、トークンを返します。
func (h *AuthHandler) SignInAnonymously(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	resp, err := h.service.SignInAnonymously(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed for login", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// LinkEmail は現在の匿名ユーザーにメールアドレスとパスワードを登録します。
func (h *AuthHandler) LinkEmail(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHENTICATED", "ログインが必要です。", "", model.ErrUnauthenticated))
		return
	}

	var req model.LinkEmailRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed for link email", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.LinkEmail(r.Context(), userID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Me はサインイン中のユーザー情報を返します。
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHENTICATED", "ログインが必要です。", "", model.ErrUnauthenticated))
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user, logger)
}
