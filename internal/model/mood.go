// internal/model/mood.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoodLevel は1日の気分 (1=最悪 〜 5=最高)
type MoodLevel int

const (
	MoodWorst  MoodLevel = iota + 1 // 1
	MoodBad                         // 2
	MoodNormal                      // 3
	MoodGood                        // 4
	MoodBest                        // 5
)

func (l MoodLevel) Valid() bool {
	return l >= MoodWorst && l <= MoodBest
}

// MoodOption は気分レベルごとの表示用の固定値
type MoodOption struct {
	Level MoodLevel `json:"level"`
	Emoji string    `json:"emoji"`
	Label string    `json:"label"`
	Key   string    `json:"key"` // クライアント側で翻訳する場合のキー
}

// MoodOptions は選択肢の一覧 (表示順: 最高 -> 最悪)。変更しないこと。
var MoodOptions = [...]MoodOption{
	{Level: MoodBest, Emoji: "😄", Label: "最高", Key: "best"},
	{Level: MoodGood, Emoji: "😊", Label: "良い", Key: "good"},
	{Level: MoodNormal, Emoji: "😐", Label: "普通", Key: "normal"},
	{Level: MoodBad, Emoji: "😔", Label: "悪い", Key: "bad"},
	{Level: MoodWorst, Emoji: "😢", Label: "最悪", Key: "worst"},
}

// GetMoodOption はレベルに対応する選択肢を返します。
// 範囲外のレベルは丸めずに ErrInvalidMoodLevel を返します。
func GetMoodOption(level MoodLevel) (MoodOption, error) {
	if !level.Valid() {
		return MoodOption{}, fmt.Errorf("%w: %d", ErrInvalidMoodLevel, int(level))
	}
	return MoodOptions[MoodBest-level], nil
}

// Emoji は範囲外なら空文字を返します。
func (l MoodLevel) Emoji() string {
	opt, err := GetMoodOption(l)
	if err != nil {
		return ""
	}
	return opt.Emoji
}

func (l MoodLevel) Label() string {
	opt, err := GetMoodOption(l)
	if err != nil {
		return ""
	}
	return opt.Label
}

// TimestampPrecision は保存する時刻の精度。MySQL の datetime(3) に合わせる。
const TimestampPrecision = time.Millisecond

// StorageTime は t をどのストアでも往復で変わらない精度に切り捨てます。
func StorageTime(t time.Time) time.Time {
	return t.Truncate(TimestampPrecision)
}

// MoodKey はユーザーと日付の複合キー。1ユーザー1日につき記録は高々1件。
type MoodKey struct {
	UserID uuid.UUID
	Date   DateKey
}

// MoodEntry は1日分の気分記録です。
// Emoji は Level から導出する値なので保存しません。
type MoodEntry struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey" json:"-"`
	Date      DateKey   `gorm:"type:char(10);primaryKey" json:"date"`
	Level     MoodLevel `gorm:"not null;check:chk_mood_entries_level,level >= 1 AND level <= 5" json:"level"`
	Emoji     string    `gorm:"-" json:"emoji"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

// AfterFind で読み出し時に Emoji を埋める
func (e *MoodEntry) AfterFind(tx *gorm.DB) error {
	e.Emoji = e.Level.Emoji()
	return nil
}

func (e *MoodEntry) Key() MoodKey {
	return MoodKey{UserID: e.UserID, Date: e.Date}
}

// ID は記録の識別子。日付キーそのもの。
func (e *MoodEntry) ID() string {
	return string(e.Date)
}

// MonthlyAverage は月ごとの平均気分 (記録が無い月は 0)。丸めはしない。
type MonthlyAverage struct {
	Month   int     `json:"month"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// WavePoint は波グラフ用の1日分のデータ (記録が無い日は Level 0)
type WavePoint struct {
	Day   int       `json:"day"`
	Date  DateKey   `json:"date"`
	Level MoodLevel `json:"level"`
}

// SaveMoodRequest は気分記録APIのリクエストボディ
type SaveMoodRequest struct {
	Level *int `json:"level" validate:"required,min=1,max=5"`
}

// MoodEntryResponse はクライアントに返す記録
type MoodEntryResponse struct {
	ID        string    `json:"id"`
	Date      DateKey   `json:"date"`
	Level     MoodLevel `json:"level"`
	Emoji     string    `json:"emoji"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMoodEntryResponse(e *MoodEntry) *MoodEntryResponse {
	return &MoodEntryResponse{
		ID:        e.ID(),
		Date:      e.Date,
		Level:     e.Level,
		Emoji:     e.Level.Emoji(),
		Label:     e.Level.Label(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// TodayMoodResponse は今日の記録。未記録なら Mood は null。
type TodayMoodResponse struct {
	Date DateKey            `json:"date"`
	Mood *MoodEntryResponse `json:"mood"`
}

// MonthQuery は月指定のクエリパラメータ
type MonthQuery struct {
	Year  int `json:"year" validate:"required,min=1,max=9999"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

type YearQuery struct {
	Year int `json:"year" validate:"required,min=1,max=9999"`
}
