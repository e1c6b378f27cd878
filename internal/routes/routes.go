package routes

import (
	"io/fs"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mishagordeev/workouts"
	"github.com/mishagordeev/workouts/internal/app"
	"github.com/mishagordeev/workouts/internal/handler"
	"github.com/mishagordeev/workouts/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	static, _ := fs.Sub(workouts.StaticFS, "static")
	home := handler.NewHomeHandler(static)
	health := handler.NewHealthHandler(app.Store)
	entry := handler.NewEntryHandler(app.EntryService)

	mux := http.NewServeMux()

	// ============================================================================
	// FRONT-END
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.Handle("GET /", home.Static())

	// ============================================================================
	// API
	// ============================================================================

	mux.HandleFunc("GET /api/entries", entry.List)
	mux.HandleFunc("POST /api/entries", entry.Create)
	mux.HandleFunc("PUT /api/entries/{date}/{entry_id}", entry.Update)
	mux.HandleFunc("DELETE /api/entries/{date}/{entry_id}", entry.Delete)

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", app.Metrics.Handler())

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		chimw.RequestID,            // Request ID first so every log line can carry it
		middleware.RequestLogging,  // Logs the final status, including recovered panics
		chimw.Recoverer,            // Unhandled faults become a plain 500
		middleware.SecurityHeaders, // Security headers for all responses
		app.Metrics.Middleware,     // Must wrap the mux directly (reads r.Pattern)
	)

	return handler
}
