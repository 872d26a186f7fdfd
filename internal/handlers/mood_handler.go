// Package handlers は HTTP リクエストを解析し、サービス層を呼び出してレスポンスを返します。
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mood_diary/internal/middleware"
	"mood_diary/internal/model"
	"mood_diary/internal/service"
	"mood_diary/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// MoodHandler は気分記録のエンドポイントを扱います。
type MoodHandler struct {
	service service.MoodService
}

func NewMoodHandler(s service.MoodService) *MoodHandler {
	return &MoodHandler{service: s}
}

// GetOptions は選択肢の一覧を返します (最高 -> 最悪 の順)。
func (h *MoodHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	webutil.RespondWithJSON(w, http.StatusOK, model.MoodOptions[:], logger)
}

// GetToday は今日の記録を返します。未記録やゲストの場合 mood は null。
func (h *MoodHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "MoodHandler.GetToday")

	entry, err := h.service.GetTodayMood(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := model.TodayMoodResponse{Date: h.service.Today()}
	if entry != nil {
		resp.Date = entry.Date
		resp.Mood = model.NewMoodEntryResponse(entry)
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// PutToday は今日の気分を記録します。同じ日に再度呼ぶと上書きされます。
func (h *MoodHandler) PutToday(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "MoodHandler.PutToday")

	var req model.SaveMoodRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed for save mood", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	entry, err := h.service.SaveMood(r.Context(), model.MoodLevel(*req.Level))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewMoodEntryResponse(entry), logger)
}

// ListMonth は ?year=&month= で指定した月の記録を日付順に返します。
func (h *MoodHandler) ListMonth(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "MoodHandler.ListMonth")

	q, err := parseMonthQuery(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	entries, err := h.service.GetMonthMoods(r.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, toEntryResponses(entries), logger)
}

func (h *MoodHandler) ListYear(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "MoodHandler.ListYear")

	q, err := parseYearParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	entries, err := h.service.GetYearMoods(r.Context(), q.Year)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, toEntryResponses(entries), logger)
}

// YearAverages は月ごとの平均を12件返します。
func (h *MoodHandler) YearAverages(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "MoodHandler.YearAverages")

	q, err := parseYearParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	averages, err := h.service.GetYearMonthlyAverages(r.Context(), q.Year)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, averages, logger)
}

// MonthWave は波グラフ用に月の全日分の点を返します。
func (h *MoodHandler) MonthWave(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With("handler", "MoodHandler.MonthWave")

	q, err := parseMonthQuery(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	points, err := h.service.GetMonthWave(r.Context(), q.Year, time.Month(q.Month))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, points, logger)
}

// --- ヘルパー関数 ---

func toEntryResponses(entries []*model.MoodEntry) []*model.MoodEntryResponse {
	resp := make([]*model.MoodEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, model.NewMoodEntryResponse(e))
	}
	return resp
}

func parseMonthQuery(r *http.Request) (model.MonthQuery, error) {
	var q model.MonthQuery
	var err error
	if q.Year, err = parseIntParam(r.URL.Query().Get("year"), "year"); err != nil {
		return q, err
	}
	if q.Month, err = parseIntParam(r.URL.Query().Get("month"), "month"); err != nil {
		return q, err
	}
	return q, webutil.ValidateStruct(q)
}

func parseYearParam(r *http.Request) (model.YearQuery, error) {
	var q model.YearQuery
	var err error
	if q.Year, err = parseIntParam(chi.URLParam(r, "year"), "year"); err != nil {
		return q, err
	}
	return q, webutil.ValidateStruct(q)
}

// parseIntParam は空文字を 0 として扱い、必須チェックはバリデータに任せます。
func parseIntParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewAppError("INVALID_QUERY_PARAMETER", field+"は整数で指定してください。", field, model.ErrInvalidInput)
	}
	return v, nil
}
