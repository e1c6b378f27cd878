package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mishagordeev/workouts/internal/apperror"
	"github.com/mishagordeev/workouts/internal/model"
	"github.com/mishagordeev/workouts/internal/service"
	"github.com/mishagordeev/workouts/internal/validation"
)

type EntryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// List handles GET /api/entries?date=YYYY-MM-DD
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	err := validation.ValidateDate(date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.entryService.List(r.Context(), date)
	if err != nil {
		writeError(w, r, err, "date", date)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Create handles POST /api/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEntryRequest
	if !decode(r, &req) {
		writeError(w, r, apperror.InvalidRequest(validation.MsgCreateFieldsRequired))
		return
	}

	err := validation.ValidateCreateEntry(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.entryService.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, "date", req.Date)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Update handles PUT /api/entries/{date}/{entry_id}
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	entryID := r.PathValue("entry_id")

	var req model.UpdateEntryRequest
	if !decode(r, &req) {
		writeError(w, r, apperror.InvalidRequest(validation.MsgUpdateFieldsRequired))
		return
	}

	err := validation.ValidateUpdateEntry(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.entryService.Update(r.Context(), date, entryID, &req)
	if err != nil {
		writeError(w, r, err, "date", date, "entry_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/entries/{date}/{entry_id}
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	entryID := r.PathValue("entry_id")

	result, err := h.entryService.Delete(r.Context(), date, entryID)
	if err != nil {
		writeError(w, r, err, "date", date, "entry_id", entryID)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// decode reads a JSON body. An absent or malformed body reports false and is
// answered like a body with every field missing.
func decode(r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		slog.Debug("failed to decode request body", "error", err, "path", r.URL.Path)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, attrs ...any) {
	status := apperror.StatusCode(err)
	attrs = append(attrs, "error", err, "method", r.Method, "path", r.URL.Path)

	switch apperror.KindOf(err) {
	case apperror.KindInvalidRequest:
		attrs = append(attrs, "missing", validation.MissingFields(err))
		slog.Debug("invalid request", attrs...)
	case apperror.KindNotFound:
		slog.Debug("entry not found", attrs...)
	default:
		slog.Error("request failed", attrs...)
	}

	writeJSON(w, status, map[string]string{"error": apperror.Message(err)})
}
