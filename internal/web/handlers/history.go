package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jusunglee/kana/internal/db"
	"github.com/jusunglee/kana/internal/history"
	"github.com/samber/lo"
)

type HistoryHandler struct {
	svc *history.Service
	log *slog.Logger
}

func NewHistoryHandler(svc *history.Service, log *slog.Logger) *HistoryHandler {
	return &HistoryHandler{svc: svc, log: log}
}

type historyEntry struct {
	ID        int64           `json:"id"`
	Input     string          `json:"input"`
	Output    string          `json:"output"`
	Options   json.RawMessage `json:"options"`
	Source    string          `json:"source"`
	CreatedAt string          `json:"created_at"`
}

type historyResponse struct {
	Data  []historyEntry `json:"data"`
	Total int64          `json:"total"`
}

func toHistoryEntry(t db.Transliteration) historyEntry {
	opts := json.RawMessage(t.Options)
	if !json.Valid(opts) {
		opts = json.RawMessage("{}")
	}
	return historyEntry{
		ID:        t.ID,
		Input:     t.Input,
		Output:    t.Output,
		Options:   opts,
		Source:    t.Source,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := h.svc.Recent(r.Context(), int32(limit))
	if errors.Is(err, history.ErrNoStore) {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	total, err := h.svc.Count(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Data:  lo.Map(entries, func(t db.Transliteration, _ int) historyEntry { return toHistoryEntry(t) }),
		Total: total,
	})
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrNoStore) || db.IsNoRows(err) {
			writeError(w, http.StatusNotFound, "transliteration not found")
			return
		}
		h.log.ErrorContext(r.Context(), "getting history entry", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toHistoryEntry(t))
}

// Prune deletes entries older than the older_than query duration.
func (h *HistoryHandler) Prune(w http.ResponseWriter, r *http.Request) {
	maxAge, err := time.ParseDuration(r.URL.Query().Get("older_than"))
	if err != nil || maxAge <= 0 {
		writeError(w, http.StatusBadRequest, "older_than must be a positive duration")
		return
	}

	n, err := h.svc.Prune(r.Context(), maxAge)
	if errors.Is(err, history.ErrNoStore) {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "pruning history", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
