package project

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"estateweb/internal/httpx"
	"estateweb/internal/platform/apiclient"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the project routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/projects", h.List)
	mux.HandleFunc("GET /v1/projects/{id}", h.Get)
}

// List handles GET /v1/projects
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	category, ok := ParseCategory(query.Get("category"))
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category", []httpx.ErrorDetail{
			{Field: "category", Message: "category must be one of ALL, HANDOVER, ONGOING, UPCOMING"},
		})
		return
	}

	search := strings.TrimSpace(query.Get("search"))
	if search == "" {
		search = strings.TrimSpace(query.Get("q"))
	}

	projects, err := h.service.List(r.Context(), ListFilter{Category: category, Search: search})
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}

	httpx.JSONSuccess(w, r, projects, map[string]any{
		"total": len(projects),
	})
}

// Get handles GET /v1/projects/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Project id must be a positive integer", nil)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Project not found", nil)
	case errors.Is(err, apiclient.ErrUnauthorized):
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in again to continue", nil)
	default:
		log.Printf("project %s failed request_id=%s error=%v", op, httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
