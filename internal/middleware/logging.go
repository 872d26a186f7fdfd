package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type logCtxKey struct{}

// 小文字で比較する
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
}

// これらのキーを含むボディはデバッグログでも伏せる
var sensitiveBodyKeys = []string{`"password"`, `"access_token"`}

const masked = "[SENSITIVE]"

// LoggingMiddleware は req_id 付きのロガーをコンテキストに入れ、リクエストの開始と完了を記録します。
// デバッグレベルではヘッダーとボディも出します (機密情報は伏せる)。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			ctx := WithLogger(r.Context(), reqLogger)
			r = r.WithContext(ctx)

			reqLogger.Info("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			debug := logger.Enabled(ctx, slog.LevelDebug)
			var reqBody []byte
			var respBody bytes.Buffer

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			if debug {
				if r.Body != nil {
					reqBody, _ = io.ReadAll(r.Body)
					r.Body = io.NopCloser(bytes.NewReader(reqBody))
				}
				ww.Tee(&respBody)
			}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLogger.Log(ctx, levelForStatus(status), "Request completed",
				"status", status,
				"latency_ms", float64(time.Since(start).Microseconds())/1000,
				"bytes_out", ww.BytesWritten(),
			)

			if debug {
				reqLogger.Debug("Request detail", "headers", formatHeaders(r.Header), "body", maskBody(reqBody))
				reqLogger.Debug("Response detail", "headers", formatHeaders(ww.Header()), "body", maskBody(respBody.Bytes()))
			}
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// WithLogger はロガーをコンテキストに格納します (テストやバッチ処理用)。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストのロガーを返します。無ければ slog.Default()。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = masked
			continue
		}
		result[key] = strings.Join(values, ", ")
	}
	return result
}

func maskBody(body []byte) string {
	s := string(body)
	for _, k := range sensitiveBodyKeys {
		if strings.Contains(s, k) {
			return masked
		}
	}
	return s
}
