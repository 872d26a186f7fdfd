//go:build integration

// api_integration_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"mood_diary/internal/config"
	"mood_diary/internal/handlers"
	"mood_diary/internal/middleware"
	"mood_diary/internal/model"
	"mood_diary/internal/repository"
	"mood_diary/internal/service"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(testLogger)

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=mood_diary",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}
	resource.Expire(300)

	dbCfg := config.DatabaseConfig{
		Driver:      config.DriverPostgres,
		URL:         fmt.Sprintf("postgres://user:secret@%s/mood_diary?sslmode=disable", resource.GetHostPort("5432/tcp")),
		AutoMigrate: true,
	}

	if err = pool.Retry(func() error {
		var errRetry error
		testDB, errRetry = repository.NewDB(dbCfg, testLogger)
		return errRetry
	}); err != nil {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource: %s", pErr)
		}
		log.Fatalf("Could not connect to database: %s", err)
	}

	code := m.Run()

	if sqlDB, err := testDB.DB(); err == nil {
		sqlDB.Close()
	}
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge resource: %s", err)
	}
	os.Exit(code)
}

func newIntegrationServer(t *testing.T, clock service.Clock) *httptest.Server {
	t.Helper()
	cfg := testConfig()

	moodService := service.NewMoodService(testDB, repository.NewGormMoodRepository(), middleware.ContextIdentity{}, clock)
	authService := service.NewAuthService(testDB, repository.NewGormUserRepository(), cfg, nil)

	router := handlers.NewRouter(cfg, discardLogger, testDB,
		handlers.NewMoodHandler(moodService), handlers.NewAuthHandler(authService))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// settableClock はリクエストを処理するゴルーチンと共有する時計
type settableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *settableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *settableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAPI_MoodFlow(t *testing.T) {
	// PostgreSQL はマイクロ秒までしか保存しないので、ナノ秒を含む時刻で往復を確かめる
	clock := &settableClock{now: time.Date(2024, 3, 10, 8, 0, 0, 123456789, time.Local)}
	server := newIntegrationServer(t, clock.Now)

	// ゲストとしてサインイン
	body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/anonymous"}, http.StatusCreated)
	var auth model.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	headers := map[string]string{"Authorization": "Bearer " + auth.AccessToken}

	// 未記録
	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/moods/today", Headers: headers}, http.StatusOK)
	var today model.TodayMoodResponse
	require.NoError(t, json.Unmarshal(body, &today))
	assert.Equal(t, model.DateKey("2024-03-10"), today.Date)
	assert.Nil(t, today.Mood)

	// 同じ日に2回記録
	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/moods/today", Body: map[string]int{"level": 2}, Headers: headers}, http.StatusOK)
	var created model.MoodEntryResponse
	require.NoError(t, json.Unmarshal(body, &created))
	clock.Advance(2*time.Hour + 987654321)
	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/moods/today", Body: map[string]int{"level": 4}, Headers: headers}, http.StatusOK)
	var updated model.MoodEntryResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "PUT の created_at が揃わない: %s / %s", created.CreatedAt, updated.CreatedAt)

	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/moods/today", Headers: headers}, http.StatusOK)
	require.NoError(t, json.Unmarshal(body, &today))
	require.NotNil(t, today.Mood)
	assert.True(t, today.Mood.CreatedAt.Equal(created.CreatedAt), "GET の created_at が PUT と異なる: %s / %s", created.CreatedAt, today.Mood.CreatedAt)
	assert.True(t, today.Mood.UpdatedAt.Equal(updated.UpdatedAt), "GET の updated_at が PUT と異なる")

	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/moods?year=2024&month=3", Headers: headers}, http.StatusOK)
	var entries []model.MoodEntryResponse
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, model.MoodGood, entries[0].Level)
	assert.Equal(t, "😊", entries[0].Emoji)
	assert.True(t, entries[0].UpdatedAt.After(entries[0].CreatedAt), "created_at は1回目のまま")

	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/moods/years/2024/averages", Headers: headers}, http.StatusOK)
	var averages []model.MonthlyAverage
	require.NoError(t, json.Unmarshal(body, &averages))
	require.Len(t, averages, 12)
	assert.Equal(t, 4.0, averages[2].Average)

	// トークン無しの書き込みは 401
	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/moods/today", Body: map[string]int{"level": 4}}, http.StatusUnauthorized)
	verifyErrorResponse(t, body, "UNAUTHENTICATED")
}

func TestAPI_LinkEmailAndLogin(t *testing.T) {
	server := newIntegrationServer(t, nil)
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())

	signIn := func() map[string]string {
		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/anonymous"}, http.StatusCreated)
		var auth model.AuthResponse
		require.NoError(t, json.Unmarshal(body, &auth))
		return map[string]string{"Authorization": "Bearer " + auth.AccessToken}
	}

	first := signIn()
	linkBody := model.LinkEmailRequest{Email: email, Password: "password123"}
	sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/link", Body: linkBody, Headers: first}, http.StatusOK)

	// 別のゲストは同じメールアドレスを使えない
	body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/link", Body: linkBody, Headers: signIn()}, http.StatusConflict)
	verifyErrorResponse(t, body, "DUPLICATE_EMAIL")

	body = sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/auth/login",
		Body: model.LoginRequest{Email: email, Password: "password123"},
	}, http.StatusOK)
	var auth model.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	assert.False(t, auth.User.IsAnonymous)

	sendRequest(t, server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/auth/login",
		Body: model.LoginRequest{Email: email, Password: "wrong-password"},
	}, http.StatusUnauthorized)
}

func TestAPI_SaveMood_Concurrent(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.Local)
	server := newIntegrationServer(t, func() time.Time { return now })

	body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/anonymous"}, http.StatusCreated)
	var auth model.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	headers := map[string]string{"Authorization": "Bearer " + auth.AccessToken}

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan model.MoodEntryResponse, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(level int) {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/moods/today",
				strings.NewReader(fmt.Sprintf(`{"level":%d}`, level)))
			if err != nil {
				errs <- err
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", headers["Authorization"])
			resp, err := server.Client().Do(req)
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("level %d: status %d", level, resp.StatusCode)
				return
			}
			var entry model.MoodEntryResponse
			if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
				errs <- err
				return
			}
			results <- entry
		}(i%5 + 1)
	}
	wg.Wait()
	close(results)
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	body = sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/moods?year=2024&month=6", Headers: headers}, http.StatusOK)
	var entries []model.MoodEntryResponse
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1, "同じ日付の記録は常に1件")
	assert.Equal(t, model.DateKey("2024-06-01"), entries[0].Date)

	// どのレスポンスも保存されている created_at を返す
	for entry := range results {
		assert.True(t, entry.CreatedAt.Equal(entries[0].CreatedAt), "got %s, stored %s", entry.CreatedAt, entries[0].CreatedAt)
	}
}
