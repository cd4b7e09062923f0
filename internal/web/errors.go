package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"estateweb/internal/httpx"
	"estateweb/internal/platform/apiclient"
	"estateweb/internal/querycache"
)

type errorView struct {
	Status  int
	Heading string
	Message string
}

// fail is the page-level error boundary. Missing entities render the
// not-found page, an expired session sends the visitor to /login, and
// anything else is logged and rendered as a server error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, querycache.ErrNotFound):
		s.NotFound(w, r)
	case errors.Is(err, apiclient.ErrUnauthorized):
		http.Redirect(w, r, loginURL(r.URL.RequestURI()), http.StatusSeeOther)
	default:
		log.Printf("web page failed request_id=%s path=%s error=%v", httpx.RequestIDFrom(r), r.URL.Path, err)
		s.render(w, r, http.StatusInternalServerError, "error.html", s.newView(r, "Something went wrong", errorView{
			Status:  http.StatusInternalServerError,
			Heading: "Something went wrong",
			Message: "We could not load this page. Please try again in a moment.",
		}))
	}
}

// NotFound renders the 404 page.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "error.html", s.newView(r, "Page not found", errorView{
		Status:  http.StatusNotFound,
		Heading: "Page not found",
		Message: "The page you are looking for does not exist or has been moved.",
	}))
}

func loginURL(next string) string {
	if next == "" || next == "/login" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}
