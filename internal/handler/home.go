package handler

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// HomeHandler serves the single-page front-end
type HomeHandler struct {
	static fs.FS
}

func NewHomeHandler(static fs.FS) *HomeHandler {
	return &HomeHandler{static: static}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	index, err := fs.ReadFile(h.static, "index.html")
	if err != nil {
		slog.Error("failed to read index.html", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(index)
}

// Static serves the remaining front-end files (scripts, styles)
func (h *HomeHandler) Static() http.Handler {
	return http.FileServerFS(h.static)
}
