package enquiry

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"estateweb/internal/httpx"
	"estateweb/internal/platform/apiclient"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the enquiry routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/enquiries", h.Create)
}

// Create handles POST /v1/enquiries
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}

	e, err := h.service.Submit(r.Context(), in, SourceAPI)
	if err != nil {
		var invalid *InvalidError
		if errors.As(err, &invalid) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", httpx.Details(invalid.Fields))
			return
		}
		if errors.Is(err, apiclient.ErrUnauthorized) {
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in again to continue", nil)
			return
		}
		log.Printf("enquiry create failed request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessCreated(w, r, e)
}
