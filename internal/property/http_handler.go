package property

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"estateweb/internal/httpx"
	"estateweb/internal/platform/apiclient"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the property routes on mux under /v1/properties.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/properties", h.List)
	mux.HandleFunc("GET /v1/properties/featured", h.Featured)
	mux.HandleFunc("GET /v1/properties/search", h.Search)
	mux.HandleFunc("GET /v1/properties/{id}", h.Get)
	mux.HandleFunc("POST /v1/properties", h.Create)
	mux.HandleFunc("PUT /v1/properties/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/properties/{id}", h.Delete)
}

// List handles GET /v1/properties
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := ParseFilters(r.URL.Query())
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	properties, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	httpx.JSONSuccess(w, r, properties, map[string]any{"total": len(properties)})
}

// Featured handles GET /v1/properties/featured?limit=
func (h *HTTPHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := DefaultFeaturedLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 50 {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 1 and 50", nil)
			return
		}
		limit = n
	}

	properties, err := h.service.Featured(r.Context(), limit)
	if err != nil {
		h.fail(w, r, "featured", err)
		return
	}
	httpx.JSONSuccess(w, r, properties, map[string]any{"total": len(properties), "limit": limit})
}

// Search handles GET /v1/properties/search?q=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.SearchByLocation(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, ErrQueryTooShort) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), []httpx.ErrorDetail{
				{Field: "q", Message: err.Error()},
			})
			return
		}
		h.fail(w, r, "search", err)
		return
	}
	httpx.JSONSuccess(w, r, properties, map[string]any{"total": len(properties)})
}

// Get handles GET /v1/properties/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Create handles POST /v1/properties
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePayload(w, r)
	if !ok {
		return
	}

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	httpx.JSONSuccessCreated(w, r, p)
}

// Update handles PUT /v1/properties/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := decodePayload(w, r)
	if !ok {
		return
	}

	p, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Delete handles DELETE /v1/properties/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Property not found", nil)
	case errors.Is(err, apiclient.ErrUnauthorized):
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in again to continue", nil)
	default:
		log.Printf("property %s failed request_id=%s error=%v", op, httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Property id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func decodePayload(w http.ResponseWriter, r *http.Request) (Payload, bool) {
	var in Payload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return Payload{}, false
	}
	if errs := httpx.ValidateStruct(in); len(errs) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", httpx.Details(errs))
		return Payload{}, false
	}
	return in, true
}
