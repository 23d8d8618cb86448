package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Aaryan1901/Gigyasa-backend/internal/audit"
	"github.com/Aaryan1901/Gigyasa-backend/internal/auth"
	"github.com/Aaryan1901/Gigyasa-backend/internal/config"
	"github.com/Aaryan1901/Gigyasa-backend/internal/http/handler"
	mw "github.com/Aaryan1901/Gigyasa-backend/internal/http/middleware"
)

func NewRouter(cfg config.Config, svc *auth.Service, jwtSvc *auth.JWT, sink audit.Sink) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Backend is running successfully!"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Svc: svc}
	r.Post("/register", ah.Register)
	r.Post("/login", ah.Login)

	ph := &handler.ProfileHandler{Svc: svc, Audit: sink}
	r.Route("/user", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/", ph.User)
		r.Get("/activity", ph.Activity)
	})

	return r
}
