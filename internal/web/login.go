package web

import (
	"log"
	"net/http"
	"strings"

	"estateweb/internal/httpx"
)

type loginView struct {
	Next    string
	Error   string
	Expired bool
}

type loginForm struct {
	Token string `validate:"required,notblank,max=4096"`
}

// LoginForm renders /login. The backend issues API tokens; signing in
// stores one for the site's outgoing requests.
func (s *Server) LoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", s.newView(r, "Sign in", loginView{
		Next: safeNext(r.URL.Query().Get("next")),
	}))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	next := safeNext(r.PostForm.Get("next"))
	form := loginForm{Token: strings.TrimSpace(r.PostForm.Get("token"))}

	if errs := httpx.ValidateStruct(form); len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "login.html", s.newView(r, "Sign in", loginView{
			Next:  next,
			Error: errs[0].Message,
		}))
		return
	}

	if err := s.tokens.SetToken(form.Token); err != nil {
		log.Printf("web token store failed request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		s.fail(w, r, err)
		return
	}
	// the store drops tokens that are already expired
	if s.tokens.Token() == "" {
		s.render(w, r, http.StatusUnprocessableEntity, "login.html", s.newView(r, "Sign in", loginView{
			Next:    next,
			Error:   "That token has expired. Request a new one and try again.",
			Expired: true,
		}))
		return
	}

	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.tokens.Clear(); err != nil {
		log.Printf("web token clear failed request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeNext limits post-login redirects to local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") || strings.HasPrefix(next, "/login") {
		return "/"
	}
	return next
}
