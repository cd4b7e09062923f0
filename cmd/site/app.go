package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"estateweb/internal/config"
	"estateweb/internal/enquiry"
	"estateweb/internal/httpx"
	"estateweb/internal/platform/apiclient"
	"estateweb/internal/project"
	"estateweb/internal/property"
	"estateweb/internal/querycache"
	"estateweb/internal/web"

	"github.com/jackc/pgx/v5/pgxpool"
)

// app holds the services shared by the JSON API and the pages.
type app struct {
	cfg        config.Config
	pool       *pgxpool.Pool
	cache      *querycache.Client
	tokens     apiclient.TokenStore
	projects   *project.Service
	properties *property.Service
	enquiries  *enquiry.Service
}

// newApp wires repositories for cfg.DataSource. pool must be non-nil when
// the source is postgres.
func newApp(cfg config.Config, pool *pgxpool.Pool) (*app, error) {
	a := &app{
		cfg:  cfg,
		pool: pool,
		cache: querycache.New(querycache.Options{
			StaleTime: cfg.QueryStaleTime,
			Retry:     cfg.QueryRetry,
		}),
	}

	if cfg.TokenFile != "" {
		a.tokens = apiclient.NewFileTokenStore(cfg.TokenFile)
	} else {
		a.tokens = apiclient.NewMemoryTokenStore("")
	}

	var (
		projects   project.Repository
		properties property.Repository
		enquiries  enquiry.Repository
	)
	switch cfg.DataSource {
	case config.SourceStatic:
		projects = project.NewStaticRepo(nil)
		properties = property.NewStaticRepo(nil)
		enquiries = enquiry.NewMemoryRepo()
	case config.SourcePostgres:
		if pool == nil {
			return nil, fmt.Errorf("data source %s needs a database pool", cfg.DataSource)
		}
		projects = project.NewPostgresRepo(pool, cfg.DBTimeout)
		properties = property.NewStaticRepo(nil)
		enquiries = enquiry.NewPostgresRepo(pool, cfg.DBTimeout)
	case config.SourceAPI:
		client := apiclient.NewClient(apiclient.Config{
			BaseURL: cfg.APIBaseURL,
			Timeout: cfg.APITimeout,
			RPS:     cfg.APIRPS,
		}, a.tokens, apiclient.WithUnauthorizedHandler(func() {
			log.Printf("api token rejected; sign in again at /login")
		}))
		projects = project.NewAPIRepo(client)
		properties = property.NewAPIRepo(client)
		enquiries = enquiry.NewAPIRepo(client)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}

	a.projects = project.NewService(projects, a.cache)
	a.properties = property.NewService(properties, a.cache)
	a.enquiries = enquiry.NewService(enquiries)
	return a, nil
}

// routes builds the full handler: probes, the /v1 JSON API and the pages,
// wrapped in the middleware chain.
func (a *app) routes() (http.Handler, error) {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", a.ready)

	project.NewHTTPHandler(a.projects).Register(router)
	property.NewHTTPHandler(a.properties).Register(router)
	enquiry.NewHTTPHandler(a.enquiries).Register(router)

	site, err := web.New(web.Deps{
		Projects:   a.projects,
		Properties: a.properties,
		Enquiries:  a.enquiries,
		Tokens:     a.tokens,
	})
	if err != nil {
		return nil, err
	}
	site.Register(router)

	limiter := httpx.NewRateLimitMiddleware(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(a.cfg.EnableHSTS),
		httpx.CORSMiddleware(a.cfg.CORSAllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(a.cfg.MaxBodyBytes),
	), nil
}

func (a *app) ready(w http.ResponseWriter, r *http.Request) {
	if a.pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := a.pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
