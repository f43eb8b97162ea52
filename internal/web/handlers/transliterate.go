package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jusunglee/kana/internal/history"
	"github.com/jusunglee/kana/internal/transliteration"
	"github.com/samber/lo"
)

const maxBatchTexts = 100

type TransliterateHandler struct {
	svc *history.Service
	log *slog.Logger
}

func NewTransliterateHandler(svc *history.Service, log *slog.Logger) *TransliterateHandler {
	return &TransliterateHandler{svc: svc, log: log}
}

type transliterateRequest struct {
	Text string `json:"text"`
	history.Options
}

type transliterateResponse struct {
	Text   string `json:"text"`
	Result string `json:"result"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
	history.Options
}

type batchResponse struct {
	Results []transliterateResponse `json:"results"`
}

func (h *TransliterateHandler) Transliterate(w http.ResponseWriter, r *http.Request) {
	var req transliterateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.svc.Transliterate(r.Context(), req.Text, req.Options, history.SourceHTTP)
	if err != nil {
		h.optionsError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, transliterateResponse{Text: req.Text, Result: result})
}

func (h *TransliterateHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > maxBatchTexts {
		writeError(w, http.StatusRequestEntityTooLarge, "too many texts")
		return
	}

	results, err := h.svc.TransliterateBatch(r.Context(), req.Texts, req.Options, history.SourceBatch)
	if err != nil {
		h.optionsError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Results: lo.Map(req.Texts, func(text string, i int) transliterateResponse {
			return transliterateResponse{Text: text, Result: results[i]}
		}),
	})
}

func (h *TransliterateHandler) optionsError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, transliteration.ErrUnknownFeature) || errors.Is(err, transliteration.ErrInvalidChar) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.ErrorContext(r.Context(), "transliterating", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
