// internal/model/user.go
package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User は記録の持ち主。最初は匿名 (ゲスト) として作られ、
// 後からメールアドレスとパスワードを紐付けられます。
type User struct {
	UserID       uuid.UUID `gorm:"type:char(36);primaryKey" json:"user_id"`
	IsAnonymous  bool      `gorm:"not null" json:"is_anonymous"`
	Email        *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PasswordHash *string   `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// JWTCustomClaims はJWTに含めるクレーム
type JWTCustomClaims struct {
	Anonymous bool `json:"anon"`
	jwt.RegisteredClaims
}

// AuthResponse はサインイン成功時のレスポンス
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LinkEmailRequest は匿名ユーザーにメールアドレスを紐付けるリクエスト
type LinkEmailRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
