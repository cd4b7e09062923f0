package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"estateweb/internal/enquiry"
	"estateweb/internal/platform/apiclient"
	"estateweb/internal/project"
	"estateweb/internal/property"
	"estateweb/internal/querycache"
	"estateweb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo wraps a project repository and counts calls.
type countingRepo struct {
	project.Repository
	lists atomic.Int32
	gets  atomic.Int32
	err   error
}

func (r *countingRepo) List(ctx context.Context, f project.ListFilter) ([]project.Project, error) {
	r.lists.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return r.Repository.List(ctx, f)
}

func (r *countingRepo) GetByID(ctx context.Context, id int) (project.Project, error) {
	r.gets.Add(1)
	if r.err != nil {
		return project.Project{}, r.err
	}
	return r.Repository.GetByID(ctx, id)
}

type testSite struct {
	mux       *http.ServeMux
	projects  *countingRepo
	enquiries *enquiry.MemoryRepo
	tokens    *apiclient.MemoryTokenStore
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	cache := querycache.New(querycache.Options{})
	site := &testSite{
		projects:  &countingRepo{Repository: project.NewStaticRepo(nil)},
		enquiries: enquiry.NewMemoryRepo(),
		tokens:    apiclient.NewMemoryTokenStore(""),
	}
	srv, err := New(Deps{
		Projects:   project.NewService(site.projects, cache),
		Properties: property.NewService(property.NewStaticRepo(nil), cache),
		Enquiries:  enquiry.NewService(site.enquiries),
		Tokens:     site.tokens,
	})
	require.NoError(t, err)
	site.mux = http.NewServeMux()
	srv.Register(site.mux)
	return site
}

func (s *testSite) do(r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, r)
	return w
}

func (s *testSite) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func TestHome(t *testing.T) {
	site := newTestSite(t)

	w := site.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "AROZA HOME")
	assert.Contains(t, body, "PREMIER ZAYFA MANOR")
	assert.Contains(t, body, "INTERIOR DESIGN")
	assert.Contains(t, body, "Featured properties")
	assert.Contains(t, body, "Beachfront Estate Malibu")
	assert.Contains(t, body, `name="source" value="footer"`)
}

func TestHome_PortfolioTab(t *testing.T) {
	site := newTestSite(t)

	body := site.get("/?tab=upcoming").Body.String()
	assert.Contains(t, body, "PREMIER ZAYFA MANOR")
	assert.NotContains(t, body, "AROZA HOME")
}

func TestProjectDetail_ReusesHomeCollection(t *testing.T) {
	site := newTestSite(t)

	require.Equal(t, http.StatusOK, site.get("/").Code)
	require.EqualValues(t, 1, site.projects.lists.Load())

	w := site.get("/projects/5")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "PREMIER FAHMIDA GREEN")
	assert.Contains(t, body, "fahmida-green/0000.png")
	assert.Contains(t, body, "Building Features")
	assert.EqualValues(t, 0, site.projects.gets.Load())
}

func TestProjectDetail_FetchesWhenNotCached(t *testing.T) {
	site := newTestSite(t)

	w := site.get("/projects/6")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PREMIER MAYA NIBASH")
	assert.EqualValues(t, 1, site.projects.gets.Load())
}

func TestCategoryPages(t *testing.T) {
	site := newTestSite(t)

	body := site.get("/projects/completed").Body.String()
	assert.Contains(t, body, "Completed Projects")
	assert.Contains(t, body, "PRIME RAJ")
	assert.NotContains(t, body, "PREMIER HOMES")

	body = site.get("/projects/completed?q=raj").Body.String()
	assert.Contains(t, body, "PRIME RAJ")
	assert.NotContains(t, body, "AROZA HOME")

	body = site.get("/projects/ongoing?q=penthouse").Body.String()
	assert.Contains(t, body, "No projects match")
}

func TestNotFound(t *testing.T) {
	site := newTestSite(t)

	for _, path := range []string{"/projects/99", "/projects/abc", "/nowhere", "/properties/99"} {
		w := site.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Page not found", path)
	}
}

func TestErrorBoundary(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedStatus   int
		expectedLocation string
	}{
		{name: "unauthorized redirects to login", err: fmt.Errorf("list projects: %w", apiclient.ErrUnauthorized), expectedStatus: http.StatusSeeOther, expectedLocation: "/login?next=%2Fprojects%2Fongoing"},
		{name: "unexpected error", err: errors.New("backend down"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newTestSite(t)
			site.projects.err = tt.err

			w := site.get("/projects/ongoing")
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			} else {
				assert.Contains(t, w.Body.String(), "Something went wrong")
			}
		})
	}
}

func TestProperties(t *testing.T) {
	site := newTestSite(t)

	body := site.get("/properties?status=sold").Body.String()
	assert.Contains(t, body, "Urban Loft")
	assert.NotContains(t, body, "Historic Townhouse")

	body = site.get("/properties?minPrice=9000000").Body.String()
	assert.Contains(t, body, "Beachfront Estate Malibu")
	assert.Contains(t, body, "Spanish Colonial Estate")
	assert.NotContains(t, body, "Waterfront Mansion")

	body = site.get("/properties?q=ny").Body.String()
	assert.Contains(t, body, "at least 3 characters")

	body = site.get("/properties?q=boston").Body.String()
	assert.Contains(t, body, "Historic Townhouse")
	assert.NotContains(t, body, "Urban Loft")

	w := site.get("/properties/3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "$12,500,000")
}

func TestContact(t *testing.T) {
	site := newTestSite(t)

	w := site.do(testutil.NewFormRequest("/contact", url.Values{
		"source":  {"contact"},
		"back":    {"/contact"},
		"name":    {"Rahim Uddin"},
		"email":   {"rahim@example.com"},
		"message": {"Please call me about Prime Raj"},
	}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contact?sent=1", w.Header().Get("Location"))

	stored := site.enquiries.All()
	require.Len(t, stored, 1)
	assert.Equal(t, enquiry.SourceContact, stored[0].Source)

	assert.Contains(t, site.get("/contact?sent=1").Body.String(), "Thank you")
}

func TestContact_FooterRedirectsHome(t *testing.T) {
	site := newTestSite(t)

	w := site.do(testutil.NewFormRequest("/contact", url.Values{
		"source":  {"footer"},
		"back":    {"/"},
		"name":    {"Karim"},
		"email":   {"karim@example.com"},
		"message": {"Hello"},
	}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?sent=1", w.Header().Get("Location"))
	assert.Equal(t, enquiry.SourceFooter, site.enquiries.All()[0].Source)
}

func TestContact_Invalid(t *testing.T) {
	site := newTestSite(t)

	w := site.do(testutil.NewFormRequest("/contact", url.Values{
		"name":    {"Rahim"},
		"email":   {"rahim-at-example"},
		"message": {"Hi"},
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Email must be a valid email address")
	assert.Contains(t, body, `value="Rahim"`)
	assert.Empty(t, site.enquiries.All())
}

func TestLogin(t *testing.T) {
	site := newTestSite(t)
	token := testutil.GenerateTestToken("secret", "agent-1")

	w := site.do(testutil.NewFormRequest("/login", url.Values{"token": {token}, "next": {"/properties"}}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/properties", w.Header().Get("Location"))
	assert.Equal(t, token, site.tokens.Token())

	assert.Contains(t, site.get("/").Body.String(), "Sign out")

	w = site.do(httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, site.tokens.Token())
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		message string
	}{
		{name: "blank", token: "   ", message: "Token is required"},
		{name: "expired", token: testutil.GenerateExpiredToken("secret", "agent-1"), message: "has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newTestSite(t)

			w := site.do(testutil.NewFormRequest("/login", url.Values{"token": {tt.token}}))
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Empty(t, site.tokens.Token())
		})
	}
}

func TestLoginForm_KeepsSafeNext(t *testing.T) {
	site := newTestSite(t)

	body := site.get("/login?next=%2Fprojects%2F5").Body.String()
	assert.Contains(t, body, `name="next" value="/projects/5"`)

	body = site.get("/login?next=https%3A%2F%2Fevil.example").Body.String()
	assert.Contains(t, body, `name="next" value="/"`)
}

func TestStatic(t *testing.T) {
	site := newTestSite(t)

	w := site.get("/static/site.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Header().Get("Content-Type"), "text/css"))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "$4,500,000", formatPrice(4500000))
	assert.Equal(t, "$950", formatPrice(950))
	assert.Equal(t, "$12,500,000", formatPrice(12500000))
	assert.Equal(t, "-$123", formatPrice(-123))
	assert.Equal(t, "-$123,456", formatPrice(-123456))
	assert.Equal(t, "$0", formatPrice(0))

	assert.Equal(t, "/", safeNext("//evil.example"))
	assert.Equal(t, "/", safeNext("/login?next=/"))
	assert.Equal(t, "/projects/5", safeNext("/projects/5"))

	assert.Equal(t, "/contact", backTo("https://evil.example"))
	assert.Equal(t, "/contact", backTo("/?x=1"))
	assert.Equal(t, "/", backTo("/"))

	assert.Equal(t, "/login", loginURL("/login"))
}
