// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "mood_diary"
	AppVersion = "0.3.0"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultDatabaseDriver = DriverPostgres
	DefaultLogLevel       = "info"
	DefaultLogMaxSizeMB   = 50
	DefaultLogMaxBackups  = 7
	DefaultLogMaxAgeDays  = 30
	DefaultTokenTTL       = 30 * 24 * time.Hour
)
