// internal/model/datekey.go
package model

import (
	"fmt"
	"strconv"
	"time"
)

// DateKeyLayout は日付キーのフォーマット (YYYY-MM-DD)
const DateKeyLayout = "2006-01-02"

// DateKey は1日分の記録を一意に識別する YYYY-MM-DD 形式の文字列です。
// 月・日はゼロ埋め2桁なので、文字列の辞書順比較がそのまま日付順になります。
type DateKey string

// NewDateKey は年月日から日付キーを生成します。
func NewDateKey(year int, month time.Month, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
}

// DateKeyOf は t が持つロケーション上の暦日を日付キーにします。
// 「今日」はホストのローカル時刻で決まるので、呼び出し側は time.Now() をそのまま渡します。
func DateKeyOf(t time.Time) DateKey {
	return NewDateKey(t.Year(), t.Month(), t.Day())
}

// ParseDateKey は文字列を日付キーとして検証します。
// 2024-2-1 のようなゼロ埋めされていない形式や、存在しない日付はエラーになります。
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(DateKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date key %q", ErrInvalidInput, s)
	}
	if key := DateKeyOf(t); string(key) != s {
		return "", fmt.Errorf("%w: non canonical date key %q", ErrInvalidInput, s)
	}
	return DateKey(s), nil
}

// MonthRange は指定月の検索範囲 [YYYY-MM-01, YYYY-MM-31] を返します。
// 31日に満たない月でも、存在しない日付のキーは保存されないため問題ありません。
func MonthRange(year int, month time.Month) (start, end DateKey) {
	return NewDateKey(year, month, 1), NewDateKey(year, month, 31)
}

// YearRange は指定年の検索範囲 [YYYY-01-01, YYYY-12-31] を返します。
func YearRange(year int) (start, end DateKey) {
	return NewDateKey(year, time.January, 1), NewDateKey(year, time.December, 31)
}

// DaysIn は指定月の日数を返します (うるう年考慮)。
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Month はキーの月 (1-12) を返します。不正なキーなら 0。
func (k DateKey) Month() int {
	if len(k) != len(DateKeyLayout) {
		return 0
	}
	m, err := strconv.Atoi(string(k[5:7]))
	if err != nil {
		return 0
	}
	return m
}

// Time はキーを loc 上の 0 時として返します。
func (k DateKey) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, string(k), loc)
}

func (k DateKey) String() string {
	return string(k)
}
