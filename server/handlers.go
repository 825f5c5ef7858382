package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradebook/journal"
)

// TradeHandlers contains HTTP handlers for the trade journal API
type TradeHandlers struct {
	store journal.Store
	log   zerolog.Logger
}

// NewTradeHandlers creates a new trade handlers instance
func NewTradeHandlers(store journal.Store, log zerolog.Logger) *TradeHandlers {
	return &TradeHandlers{
		store: store,
		log:   log.With().Str("handler", "trades").Logger(),
	}
}

// HandleListTrades returns the journal, optionally filtered by status.
// GET /api/trades?status=open|closed|all
func (h *TradeHandlers) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	status := journal.Status(r.URL.Query().Get("status"))
	if status != "" && status != journal.StatusAll {
		if _, err := journal.ParseStatus(string(status)); err != nil {
			respondError(w, http.StatusBadRequest, "status must be open, closed or all")
			return
		}
	}

	trades, err := h.store.All()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list trades")
		respondError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}

	trades = journal.Filter(trades, status)
	if trades == nil {
		// An empty journal serializes as [], not null.
		trades = []journal.Trade{}
	}
	respondJSON(w, http.StatusOK, trades)
}

// HandleCreateTrade validates the submitted form and journals a trade.
// POST /api/trades
func (h *TradeHandlers) HandleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var form journal.TradeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	trade, err := form.Trade()
	if err != nil {
		respondValidation(w, err)
		return
	}

	stored, err := h.store.Add(trade)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to add trade")
		respondError(w, http.StatusInternalServerError, "failed to add trade")
		return
	}

	h.log.Info().Str("id", stored.ID).Str("ticker", stored.Ticker).Msg("Trade journaled")
	respondJSON(w, http.StatusCreated, stored)
}

// HandleGetTrade returns a single trade.
// GET /api/trades/{id}
func (h *TradeHandlers) HandleGetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "id")

	trade, err := h.store.Get(tradeID)
	if errors.Is(err, journal.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("trade %q not found", tradeID))
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", tradeID).Msg("Failed to get trade")
		respondError(w, http.StatusInternalServerError, "failed to get trade")
		return
	}

	respondJSON(w, http.StatusOK, trade)
}

// HandleUpdateTrade applies a partial edit to an existing trade.
// PUT /api/trades/{id}
func (h *TradeHandlers) HandleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "id")

	var form journal.TradeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	upd, err := form.Update()
	if err != nil {
		respondValidation(w, err)
		return
	}

	trade, err := h.store.Update(tradeID, upd)
	if errors.Is(err, journal.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("trade %q not found", tradeID))
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", tradeID).Msg("Failed to update trade")
		respondError(w, http.StatusInternalServerError, "failed to update trade")
		return
	}

	h.log.Info().Str("id", trade.ID).Msg("Trade updated")
	respondJSON(w, http.StatusOK, trade)
}

// HandleDeleteTrade removes a trade from the journal.
// DELETE /api/trades/{id}
func (h *TradeHandlers) HandleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "id")

	err := h.store.Remove(tradeID)
	if errors.Is(err, journal.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("trade %q not found", tradeID))
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("id", tradeID).Msg("Failed to delete trade")
		respondError(w, http.StatusInternalServerError, "failed to delete trade")
		return
	}

	h.log.Info().Str("id", tradeID).Msg("Trade deleted")
	w.WriteHeader(http.StatusNoContent)
}

// HandleExportCSV streams the journal as a CSV attachment.
// GET /api/trades/export/csv
func (h *TradeHandlers) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	trades, err := h.store.All()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to export trades")
		respondError(w, http.StatusInternalServerError, "failed to export trades")
		return
	}

	filename := fmt.Sprintf("trades-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := journal.WriteCSV(w, trades); err != nil {
		h.log.Error().Err(err).Msg("Failed to write CSV")
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondValidation reports form validation failures field by field.
func respondValidation(w http.ResponseWriter, err error) {
	var fe journal.FieldErrors
	if errors.As(err, &fe) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": fe,
		})
		return
	}
	respondError(w, http.StatusUnprocessableEntity, err.Error())
}
