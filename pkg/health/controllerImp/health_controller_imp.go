package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db         *gorm.DB
	corpusSize int
	llmBackend string
}

func New(db *gorm.DB, corpusSize int, llmBackend string) *HealthCtrl {
	return &HealthCtrl{db: db, corpusSize: corpusSize, llmBackend: llmBackend}
}

// Health reports service liveness plus a db ping. Degraded state still
// answers, with a 503.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbErr := ""
	if h.db == nil {
		dbErr = "database is not configured"
	} else if sqlDB, err := h.db.DB(); err != nil {
		dbErr = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbErr = err.Error()
	}

	status := "healthy"
	code := http.StatusOK
	if dbErr != "" {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]any{
		"status":         status,
		"uptime_sec":     int(time.Since(appStart).Seconds()),
		"corpus_entries": h.corpusSize,
		"llm_backend":    h.llmBackend,
		"database_error": dbErr,
		"time":           time.Now().UTC().Format(time.RFC3339),
	})
}

// Root is the service card shown at /.
func (h *HealthCtrl) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "Campus Assistant API",
		"docs":    "/health for status; POST /chat or /stream to talk",
		"endpoints": []string{
			"/chat", "/chat/authenticated", "/stream",
			"/history/{user_id}", "/chats/stats",
			"/students", "/analytics",
			"/auth/signup", "/auth/login",
			"/voice-to-text", "/text-to-speech",
		},
	})
}
