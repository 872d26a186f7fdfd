// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mood_diary/internal/config"
	"mood_diary/internal/handlers"
	"mood_diary/internal/model"
	"mood_diary/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{JWTSecret: testJWTSecret, TokenTTL: time.Hour},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// newTestServer はモックしたサービスでルーター全体を立ち上げます。
func newTestServer(t *testing.T, db *gorm.DB, moodSvc service.MoodService, authSvc service.AuthService) *httptest.Server {
	t.Helper()
	router := handlers.NewRouter(testConfig(), discardLogger, db,
		handlers.NewMoodHandler(moodSvc), handlers.NewAuthHandler(authSvc))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// bearer はテスト用に署名したトークンの Authorization ヘッダーを返します。
func bearer(t *testing.T, userID uuid.UUID) map[string]string {
	t.Helper()
	claims := &model.JWTCustomClaims{
		Anonymous: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + signed}
}

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))

	return respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "raw body: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
}
