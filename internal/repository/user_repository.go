//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"mood_diary/internal/middleware"
	"mood_diary/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	LinkCredentials(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email, passwordHash string) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			logger.Warn("Duplicate key error on create user", "error", err, "user_id", user.UserID.String())
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB", "error", err, "user_id", user.UserID.String())
		return fmt.Errorf("gormUserRepository.Create: %w", err)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("user_id = ?", userID).Take(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where("email = ?", email).Take(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("User not found by email", "email", email)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by email in DB", "error", result.Error, "email", email)
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", result.Error)
	}
	return &user, nil
}

// LinkCredentials は匿名ユーザーにメールアドレスとパスワードハッシュを設定します。
func (r *gormUserRepository) LinkCredentials(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email, passwordHash string) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"email":         email,
			"password_hash": passwordHash,
			"is_anonymous":  false,
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate email on link credentials", "error", result.Error, "email", email)
			return model.ErrConflict
		}
		logger.Error("Error linking credentials in DB", "error", result.Error, "user_id", userID.String())
		return fmt.Errorf("gormUserRepository.LinkCredentials: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// isDuplicateKey は一意制約違反かどうかを判定します。
// Postgres は SQLSTATE 23505、それ以外は gorm の TranslateError を有効にした場合の ErrDuplicatedKey。
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
