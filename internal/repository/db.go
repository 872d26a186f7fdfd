package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"mood_diary/internal/config"
	"mood_diary/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB は設定されたドライバでDBに接続します。
// ドライバは起動時にここで一度だけ解決され、以降の層はどのストアかを意識しません。
func NewDB(cfg config.DatabaseConfig, appLogger *slog.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	// 例: 環境変数 APP_ENV によって GORM のログレベルを切り替え
	gormLogLevel := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	}
	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         slogGormLogger.LogMode(gormLogLevel),
		NowFunc:        func() time.Time { return model.StorageTime(time.Now()) },
		TranslateError: true, // 一意制約違反を gorm.ErrDuplicatedKey に揃える
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err), slog.String("driver", cfg.Driver))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite は書き込みが単一接続に直列化される
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", cfg.Driver))

	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			appLogger.Error("Failed to migrate database", slog.Any("error", err))
			sqlDB.Close()
			return nil, err
		}
		appLogger.Info("Database schema migrated")
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.URL), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.URL), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("repository: unsupported database driver %q", cfg.Driver)
	}
}

// AutoMigrate はアプリケーションが使うテーブルを作成・更新します。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.MoodEntry{})
}
