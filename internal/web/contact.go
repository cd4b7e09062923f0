package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"estateweb/internal/enquiry"
)

type contactView struct {
	Source enquiry.Source
	Input  enquiry.Input
	Errors map[string]string
	Sent   bool
}

// ContactForm renders /contact.
func (s *Server) ContactForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "contact.html", s.newView(r, "Contact Us", contactView{
		Source: enquiry.SourceContact,
		Sent:   r.URL.Query().Get("sent") == "1",
	}))
}

// SubmitContact accepts both the contact page and the footer form. A valid
// submission redirects back with ?sent=1; an invalid one re-renders the
// contact page with the visitor's input and field messages.
func (s *Server) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	source := enquiry.SourceContact
	if enquiry.Source(r.PostForm.Get("source")) == enquiry.SourceFooter {
		source = enquiry.SourceFooter
	}
	in := enquiry.Input{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Phone:   r.PostForm.Get("phone"),
		Message: r.PostForm.Get("message"),
	}
	if v := r.PostForm.Get("projectId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			in.ProjectID = &id
		}
	}

	_, err := s.enquiries.Submit(r.Context(), in, source)
	if err != nil {
		var invalid *enquiry.InvalidError
		if !errors.As(err, &invalid) {
			s.fail(w, r, err)
			return
		}
		fields := make(map[string]string, len(invalid.Fields))
		for _, f := range invalid.Fields {
			fields[f.Field] = f.Message
		}
		s.render(w, r, http.StatusUnprocessableEntity, "contact.html", s.newView(r, "Contact Us", contactView{
			Source: source,
			Input:  in,
			Errors: fields,
		}))
		return
	}

	http.Redirect(w, r, backTo(r.PostForm.Get("back"))+"?sent=1", http.StatusSeeOther)
}

// backTo keeps redirects on this site.
func backTo(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.ContainsAny(path, "?#\\") {
		return "/contact"
	}
	return path
}
