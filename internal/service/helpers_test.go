package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"mood_diary/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリ SQLite を用意します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

// fixedIdentity は常に同じユーザー (またはゲスト) を返す
type fixedIdentity struct {
	userID uuid.UUID
	ok     bool
}

func (f fixedIdentity) CurrentUserID(context.Context) (uuid.UUID, bool) {
	return f.userID, f.ok
}

func signedIn(userID uuid.UUID) fixedIdentity { return fixedIdentity{userID: userID, ok: true} }

var guest = fixedIdentity{}

// testClock はテストから時刻を進められる時計
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(now time.Time) *testClock { return &testClock{now: now} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
