// cmd/seed/main.go
// 開発用: ゲストユーザーを1人作成し、指定年の1月1日から今日 (または年末) まで
// ランダムな気分を記録します。発行したトークンを標準出力に表示します。
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/lmittmann/tint"
	"gorm.io/gorm"

	"mood_diary/internal/config"
	"mood_diary/internal/middleware"
	"mood_diary/internal/model"
	"mood_diary/internal/repository"
	"mood_diary/internal/service"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo, TimeFormat: time.Kitchen}))
	slog.SetDefault(logger)

	configPath := os.Getenv("APP_CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	now := time.Now()
	year := now.Year()
	if v := os.Getenv("SEED_YEAR"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			slog.Error("SEED_YEAR must be an integer", slog.String("value", v))
			os.Exit(1)
		}
	}

	db, err := repository.NewDB(cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := middleware.WithLogger(context.Background(), logger)
	authService := service.NewAuthService(db, repository.NewGormUserRepository(), cfg, time.Now)
	auth, err := authService.SignInAnonymously(ctx)
	if err != nil {
		slog.Error("Failed to create seed user", slog.Any("error", err))
		os.Exit(1)
	}

	count, err := seedYear(ctx, db, repository.NewGormMoodRepository(), auth.User, year, now)
	if err != nil {
		slog.Error("Failed to seed moods", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Seed finished", slog.String("user_id", auth.User.UserID.String()), slog.Int("year", year), slog.Int("entries", count))
	fmt.Println(auth.AccessToken)
}

// seedYear は year の1月1日から until (その年を過ぎていれば12月31日) まで1日1件記録します。
func seedYear(ctx context.Context, db *gorm.DB, repo repository.MoodRepository, user *model.User, year int, until time.Time) (int, error) {
	count := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		day := time.Date(year, time.January, 1, 21, 0, 0, 0, time.Local)
		for day.Year() == year && !day.After(until) {
			entry := &model.MoodEntry{
				UserID:    user.UserID,
				Date:      model.DateKeyOf(day),
				Level:     model.MoodLevel(rand.Intn(int(model.MoodBest)) + 1),
				CreatedAt: day,
				UpdatedAt: day,
			}
			if err := repo.Upsert(ctx, tx, entry); err != nil {
				return err
			}
			count++
			day = day.AddDate(0, 0, 1)
		}
		return nil
	})
	return count, err
}
