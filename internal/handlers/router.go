package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"mood_diary/internal/config"
	"mood_diary/internal/middleware"
	"mood_diary/internal/webutil"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// NewRouter はミドルウェアとルーティングを組み立てます。
// db はヘルスチェックにだけ使います (nil ならヘルスチェックは常に OK)。
func NewRouter(cfg *config.Config, logger *slog.Logger, db *gorm.DB, moodHandler *MoodHandler, authHandler *AuthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// トークンが無ければゲストとして通す
		r.Use(middleware.JWTIdentityMiddleware(cfg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/anonymous", authHandler.SignInAnonymously)
			r.Post("/login", authHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireIdentity)
				r.Post("/link", authHandler.LinkEmail)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/moods", func(r chi.Router) {
			r.Get("/", moodHandler.ListMonth)
			r.Get("/options", moodHandler.GetOptions)
			r.Get("/today", moodHandler.GetToday)
			r.Put("/today", moodHandler.PutToday)
			r.Get("/wave", moodHandler.MonthWave)
			r.Get("/years/{year}", moodHandler.ListYear)
			r.Get("/years/{year}/averages", moodHandler.YearAverages)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(r.Context())
			}
			if err != nil {
				logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
				webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
				return
			}
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})

	return r
}
