//go:generate mockery --name MoodRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"mood_diary/internal/middleware"
	"mood_diary/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MoodRepository は気分記録の永続化を担当します。
// 記録は (user_id, date) の複合主キーで一意です。
type MoodRepository interface {
	FindByKey(ctx context.Context, db *gorm.DB, key model.MoodKey) (*model.MoodEntry, error)
	FindByDateRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end model.DateKey) ([]*model.MoodEntry, error)
	Upsert(ctx context.Context, tx *gorm.DB, entry *model.MoodEntry) error
}

type gormMoodRepository struct{}

func NewGormMoodRepository() MoodRepository {
	return &gormMoodRepository{}
}

func (r *gormMoodRepository) FindByKey(ctx context.Context, db *gorm.DB, key model.MoodKey) (*model.MoodEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.MoodEntry

	result := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", key.UserID, key.Date).
		Take(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding mood entry in DB",
			"error", result.Error,
			"user_id", key.UserID.String(),
			"date", key.Date.String(),
		)
		return nil, fmt.Errorf("gormMoodRepository.FindByKey: %w", result.Error)
	}
	return &entry, nil
}

// FindByDateRange は [start, end] の範囲の記録を日付の昇順で返します。
// キーはゼロ埋めされた YYYY-MM-DD なので文字列比較で範囲検索できます。
func (r *gormMoodRepository) FindByDateRange(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end model.DateKey) ([]*model.MoodEntry, error) {
	logger := middleware.GetLogger(ctx)
	entries := []*model.MoodEntry{}

	result := db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC").
		Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding mood entries by range in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"start", start.String(),
			"end", end.String(),
		)
		return nil, fmt.Errorf("gormMoodRepository.FindByDateRange: %w", result.Error)
	}
	return entries, nil
}

// Upsert は記録を1文で作成または置き換えます。
// 既存行がある場合 created_at は更新しません。
func (r *gormMoodRepository) Upsert(ctx context.Context, tx *gorm.DB, entry *model.MoodEntry) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
		}).
		Create(entry)
	if result.Error != nil {
		logger.Error("Error upserting mood entry in DB",
			"error", result.Error,
			"user_id", entry.UserID.String(),
			"date", entry.Date.String(),
		)
		return fmt.Errorf("gormMoodRepository.Upsert: %w", result.Error)
	}
	return nil
}
