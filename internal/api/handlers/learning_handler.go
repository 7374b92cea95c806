package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/models"
)

// LearningHandler handles HTTP requests for learning paths.
type LearningHandler struct {
	store *fixtures.Store
}

// NewLearningHandler creates a new LearningHandler.
func NewLearningHandler(store *fixtures.Store) *LearningHandler {
	return &LearningHandler{store: store}
}

// Generate creates a learning path on a topic.
func (h *LearningHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePathRequest
	if !decode(w, r, &req) {
		return
	}

	path, err := h.store.GeneratePath(req.Topic, req.Level)
	if err != nil {
		writeStoreError(w, err, "generate path")
		return
	}
	writeJSON(w, http.StatusCreated, path)
}

// Personalize adjusts a path to the learner's preferences.
func (h *LearningHandler) Personalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var prefs models.PathPreferences
	if !decode(w, r, &prefs) {
		return
	}

	path, err := h.store.PersonalizePath(id, prefs)
	if err != nil {
		writeStoreError(w, err, "personalize path")
		return
	}
	writeJSON(w, http.StatusOK, path)
}

// List returns the user's learning paths.
func (h *LearningHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Paths())
}

// Get returns one learning path with its sections.
func (h *LearningHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.store.Path(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "get path")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
