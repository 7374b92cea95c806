package handlers

import (
	"net/http"

	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/models"
	ws "github.com/isdelr/ecolearn/internal/websocket"
)

// CarbonHandler handles HTTP requests for carbon metrics and offsets.
type CarbonHandler struct {
	store  *fixtures.Store
	events Publisher
}

// NewCarbonHandler creates a new CarbonHandler.
func NewCarbonHandler(store *fixtures.Store, events Publisher) *CarbonHandler {
	return &CarbonHandler{store: store, events: events}
}

// Calculate computes the footprint of a learning session.
func (h *CarbonHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var session models.SessionData
	if !decode(w, r, &session) {
		return
	}

	calc, err := h.store.CalculateCarbon(session)
	if err != nil {
		writeStoreError(w, err, "calculate carbon")
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

// Offset plants trees for an amount of CO2.
func (h *CarbonHandler) Offset(w http.ResponseWriter, r *http.Request) {
	var req models.OffsetRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.store.Offset(req.Amount)
	if err != nil {
		writeStoreError(w, err, "offset carbon")
		return
	}
	h.events.Publish(ws.ActionPlantingOrdered, result.Record)
	writeJSON(w, http.StatusCreated, result)
}

// Metrics returns the user's carbon metrics.
func (h *CarbonHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Metrics())
}

// History returns the plantation history.
func (h *CarbonHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.History())
}

// Timeline returns the dashboard chart series.
func (h *CarbonHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Timeline())
}
