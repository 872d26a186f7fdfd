package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mood_diary/internal/config"
	"mood_diary/internal/model"
	"mood_diary/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTIdentityMiddleware は Authorization ヘッダーの Bearer トークンを検証し、
// ユーザーIDをコンテキストにセットします。
// ヘッダーが無いリクエストはゲストとしてそのまま通します。
// (ゲストの読み取りは空の結果になり、書き込みはサービス層で UNAUTHENTICATED になる)
func JWTIdentityMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHENTICATED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			userID, err := ParseAccessToken(cfg.Auth.JWTSecret, headerParts[1])
			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			// 以降のログにユーザーIDを付ける
			ctx = WithLogger(ctx, logger.With("user_id", userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity はユーザーIDがコンテキストに無いリクエストを 401 で拒否します。
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			logger := GetLogger(r.Context())
			logger.Warn("Request rejected: no identity")
			appErr := model.NewAppError("UNAUTHENTICATED", "ログインが必要です。", "", model.ErrUnauthenticated)
			webutil.HandleError(w, logger, appErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ParseAccessToken は HS256 で署名されたトークンを検証し、sub のユーザーIDを返します。
// 署名と有効期限 (exp) は jwt.ParseWithClaims が検証します。
func ParseAccessToken(secret, tokenString string) (uuid.UUID, error) {
	claims := &model.JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, errors.New("token is not valid")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return uuid.Nil, errors.New("subject (sub) claim missing")
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, model.UserIDKey, userID)
}

// UserIDFromContext はサインイン済みならユーザーIDと true を返します。
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// ContextIdentity はリクエストコンテキストから現在のユーザーを解決します。
type ContextIdentity struct{}

func (ContextIdentity) CurrentUserID(ctx context.Context) (uuid.UUID, bool) {
	return UserIDFromContext(ctx)
}
