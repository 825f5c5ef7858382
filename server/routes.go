package server

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all trade journal routes
func (h *TradeHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/trades", func(r chi.Router) {
		r.Get("/", h.HandleListTrades)
		r.Post("/", h.HandleCreateTrade)
		r.Get("/export/csv", h.HandleExportCSV)
		r.Get("/{id}", h.HandleGetTrade)
		r.Put("/{id}", h.HandleUpdateTrade)
		r.Delete("/{id}", h.HandleDeleteTrade)
	})
}
