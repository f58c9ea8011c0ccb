package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/tradecare/backend/internal/dashboard"
)

// PagesHandler serves the dashboard shell and static pages
type PagesHandler struct{}

// NewPagesHandler creates a new pages handler
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// List returns the navigation shell
// GET /api/pages
func (h *PagesHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dashboard.NewShell())
}

// Get returns one page
// GET /api/pages/{slug}
func (h *PagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	page, ok := dashboard.Find(slug)
	if !ok {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}

	respondJSON(w, http.StatusOK, page)
}
