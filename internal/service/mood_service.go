//go:generate mockery --name MoodService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mood_diary/internal/middleware"
	"mood_diary/internal/model"
	"mood_diary/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityProvider は現在サインインしているユーザーを解決します。
// ゲスト (未サインイン) の場合は false を返します。
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (uuid.UUID, bool)
}

// Clock は現在時刻を返す関数。テストでは固定時刻を差し込みます。
type Clock func() time.Time

type MoodService interface {
	SaveMood(ctx context.Context, level model.MoodLevel) (*model.MoodEntry, error)
	GetTodayMood(ctx context.Context) (*model.MoodEntry, error)
	GetMonthMoods(ctx context.Context, year int, month time.Month) ([]*model.MoodEntry, error)
	GetYearMoods(ctx context.Context, year int) ([]*model.MoodEntry, error)
	GetYearMonthlyAverages(ctx context.Context, year int) ([]model.MonthlyAverage, error)
	GetMonthWave(ctx context.Context, year int, month time.Month) ([]model.WavePoint, error)
	// Today はクライアントに返す「今日」の日付キー
	Today() model.DateKey
}

type moodService struct {
	db       *gorm.DB
	moodRepo repository.MoodRepository
	identity IdentityProvider
	now      Clock
}

// NewMoodService は clock が nil なら time.Now を使います。
func NewMoodService(db *gorm.DB, moodRepo repository.MoodRepository, identity IdentityProvider, clock Clock) MoodService {
	if clock == nil {
		clock = time.Now
	}
	return &moodService{
		db:       db,
		moodRepo: moodRepo,
		identity: identity,
		now:      clock,
	}
}

func (s *moodService) Today() model.DateKey {
	return model.DateKeyOf(s.now())
}

// SaveMood は今日の記録を作成、または上書きします。
// 同じ日に何度呼んでも記録は1件で、created_at は最初の保存時刻のままです。
func (s *moodService) SaveMood(ctx context.Context, level model.MoodLevel) (*model.MoodEntry, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := model.GetMoodOption(level); err != nil {
		logger.Warn("Rejected mood level", "level", int(level))
		return nil, model.NewAppError("INVALID_MOOD_LEVEL", "気分は1から5の範囲で指定してください。", "level",
			fmt.Errorf("%w: %w", model.ErrInvalidInput, err))
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, model.NewAppError("UNAUTHENTICATED", "記録するにはサインインが必要です。", "", model.ErrUnauthenticated)
	}

	// 保存後に読み直しても同じ値になるよう、ストアの精度に揃える
	now := model.StorageTime(s.now())
	key := model.MoodKey{UserID: userID, Date: model.DateKeyOf(now)}
	var saved *model.MoodEntry

	// 呼び出し元がキャンセルしても、発行済みの書き込みは中断しない
	writeCtx := context.WithoutCancel(ctx)
	err := s.db.WithContext(writeCtx).Transaction(func(tx *gorm.DB) error {
		createdAt := now
		existing, err := s.moodRepo.FindByKey(writeCtx, tx, key)
		switch {
		case err == nil:
			createdAt = existing.CreatedAt
		case errors.Is(err, model.ErrNotFound):
		default:
			return err
		}

		entry := &model.MoodEntry{
			UserID:    key.UserID,
			Date:      key.Date,
			Level:     level,
			Emoji:     level.Emoji(),
			CreatedAt: createdAt,
			UpdatedAt: now,
		}
		if err := s.moodRepo.Upsert(writeCtx, tx, entry); err != nil {
			return err
		}
		// 同時に保存した別リクエストが先に作成していた場合、created_at は相手の値になる
		stored, err := s.moodRepo.FindByKey(writeCtx, tx, key)
		if err != nil {
			return err
		}
		saved = stored
		return nil
	})
	if err != nil {
		logger.Error("Failed to save mood", "error", err, "date", key.Date.String())
		return nil, storageError(err)
	}

	logger.Info("Mood saved", "date", saved.Date.String(), "level", int(saved.Level))
	return saved, nil
}

// GetTodayMood は今日の記録を返します。ゲストや未記録の場合は nil, nil。
func (s *moodService) GetTodayMood(ctx context.Context) (*model.MoodEntry, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}

	entry, err := s.moodRepo.FindByKey(ctx, s.db, model.MoodKey{UserID: userID, Date: s.Today()})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, storageError(err)
	}
	return entry, nil
}

func (s *moodService) GetMonthMoods(ctx context.Context, year int, month time.Month) ([]*model.MoodEntry, error) {
	start, end := model.MonthRange(year, month)
	return s.findRange(ctx, start, end)
}

func (s *moodService) GetYearMoods(ctx context.Context, year int) ([]*model.MoodEntry, error) {
	start, end := model.YearRange(year)
	return s.findRange(ctx, start, end)
}

// GetYearMonthlyAverages は1月から12月まで常に12件を返します。
// 記録の無い月の平均は 0 で、値は丸めません。
func (s *moodService) GetYearMonthlyAverages(ctx context.Context, year int) ([]model.MonthlyAverage, error) {
	entries, err := s.GetYearMoods(ctx, year)
	if err != nil {
		return nil, err
	}

	var sums, counts [12]int
	for _, e := range entries {
		m := e.Date.Month()
		if m < 1 || m > 12 {
			continue
		}
		sums[m-1] += int(e.Level)
		counts[m-1]++
	}

	averages := make([]model.MonthlyAverage, 12)
	for i := range averages {
		averages[i] = model.MonthlyAverage{Month: i + 1, Count: counts[i]}
		if counts[i] > 0 {
			averages[i].Average = float64(sums[i]) / float64(counts[i])
		}
	}
	return averages, nil
}

// GetMonthWave は月の各日について1点ずつ返します。記録の無い日は Level 0。
func (s *moodService) GetMonthWave(ctx context.Context, year int, month time.Month) ([]model.WavePoint, error) {
	entries, err := s.GetMonthMoods(ctx, year, month)
	if err != nil {
		return nil, err
	}

	byDate := make(map[model.DateKey]model.MoodLevel, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e.Level
	}

	days := model.DaysIn(year, month)
	points := make([]model.WavePoint, 0, days)
	for day := 1; day <= days; day++ {
		key := model.NewDateKey(year, month, day)
		points = append(points, model.WavePoint{Day: day, Date: key, Level: byDate[key]})
	}
	return points, nil
}

func (s *moodService) findRange(ctx context.Context, start, end model.DateKey) ([]*model.MoodEntry, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return []*model.MoodEntry{}, nil
	}

	entries, err := s.moodRepo.FindByDateRange(ctx, s.db, userID, start, end)
	if err != nil {
		return nil, storageError(err)
	}
	return entries, nil
}

// storageError はストレージ層の失敗を 503 として返すエラーに変換します。
// リトライもキャッシュへのフォールバックもしません。
func storageError(err error) error {
	return model.NewAppError(
		"STORAGE_UNAVAILABLE",
		"データの読み書きに失敗しました。時間をおいて再度お試しください。",
		"",
		fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err),
	)
}
