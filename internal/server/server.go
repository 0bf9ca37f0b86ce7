// Package server exposes the registrant and administrator surfaces over
// HTTP/JSON.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"kronibola/internal/auth"
	"kronibola/internal/booking"
	"kronibola/internal/config"
)

type Server struct {
	svc  *booking.Service
	gate *auth.Gate
}

func New(cfg config.Config, svc *booking.Service, gate *auth.Gate) *http.Server {
	s := &Server{svc: svc, gate: gate}

	router := chi.NewRouter()
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/sessions", s.handleOpenSessions)
		r.Get("/sessions/all", s.handleAllSessions)
		r.Get("/registrations", s.handlePublicRegistrations)
		r.Post("/registrations", s.handleRegister)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(gate.Middleware)
				r.Put("/sessions", s.handleUpsertSessions)
				r.Get("/registrations", s.handleAdminLedger)
				r.Put("/registrations", s.handleSaveLedger)
				r.Post("/registrations/status", s.handleSetStatus)
				r.Get("/export.csv", s.handleExportCSV)
			})
		})
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}
}
