package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mood_diary/internal/config"
	"mood_diary/internal/middleware"
	"mood_diary/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func signToken(t *testing.T, key string, method jwt.SigningMethod, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := &model.JWTCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestJWTIdentityMiddleware(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: secret}}
	userID := uuid.New()

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
		expectUser   bool
	}{
		{
			name:         "正常系: 有効なトークン",
			authHeader:   "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, userID.String(), time.Now().Add(time.Hour)),
			expectedCode: http.StatusOK,
			expectUser:   true,
		},
		{
			name:         "正常系: ヘッダー無しはゲスト",
			expectedCode: http.StatusOK,
		},
		{
			name:         "異常系: 形式が不正",
			authHeader:   "Token abc",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "異常系: 署名が違う",
			authHeader:   "Bearer " + signToken(t, "other-secret", jwt.SigningMethodHS256, userID.String(), time.Now().Add(time.Hour)),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "異常系: 期限切れ",
			authHeader:   "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, userID.String(), time.Now().Add(-time.Hour)),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "異常系: アルゴリズムが違う",
			authHeader:   "Bearer " + signToken(t, secret, jwt.SigningMethodHS512, userID.String(), time.Now().Add(time.Hour)),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "異常系: sub がUUIDでない",
			authHeader:   "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, "someone", time.Now().Add(time.Hour)),
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser uuid.UUID
			var gotOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, gotOK = middleware.ContextIdentity{}.CurrentUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			middleware.JWTIdentityMiddleware(cfg)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, tt.expectUser, gotOK)
			if tt.expectUser {
				assert.Equal(t, userID, gotUser)
			}
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := middleware.RequireIdentity(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// uuid.Nil はサインインとみなさない
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.Nil))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
