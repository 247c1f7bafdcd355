// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// client portal. The JSON API lives under /api with role-tiered groups;
// everything else falls through to the embedded SPA shell.
package router

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"clientportal/internal/handlers"
	"clientportal/internal/middleware"
	"clientportal/internal/session"
	"clientportal/web"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth       *handlers.Auth
	Users      *handlers.Users
	Branding   *handlers.Branding
	Dashboard  *handlers.Dashboard
	Inquiries  *handlers.Inquiries
	Freshbooks *handlers.Freshbooks
	Storage    handlers.ObjectStorage
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned rate limiter must be stopped
// on shutdown.
func New(sessionStore *session.Store, h Handlers) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth and no CSRF.
	r.Get("/health", healthHandler)

	// Brute-force protection on the credential and contact endpoints.
	limiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Public endpoints.
		r.Group(func(r chi.Router) {
			r.Use(limiter.Limit)
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/inquiries", h.Inquiries.Create)
		})
		r.Post("/logout", h.Auth.Logout)

		// Authenticated endpoints. Pending accounts can see who they are
		// and the branding document, nothing more.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/user", h.Auth.CurrentUser)
			r.Post("/auth/2fa/setup", h.Auth.TwoFASetup)
			r.Post("/auth/2fa/verify", h.Auth.TwoFAVerify)
			r.Get("/branding", h.Branding.Get)

			// Approved accounts (client or admin).
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApproved)
				r.Get("/stats", h.Dashboard.Stats)
				r.Get("/activities", h.Dashboard.Activities)
			})

			// Admin-only management surface.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Patch("/branding", h.Branding.Patch)
				r.Post("/branding/upload/{type}", h.Branding.Upload(h.Storage))

				r.Get("/clients", h.Dashboard.Clients)
				r.Get("/inquiries", h.Inquiries.List)
				r.Patch("/inquiries/{id}", h.Inquiries.SetStatus)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.Users.List)
					r.Patch("/{id}/role", h.Users.SetRole)
					r.Delete("/{id}", h.Users.Delete)
				})

				r.Get("/freshbooks/connect", h.Freshbooks.Connect)
				r.Get("/freshbooks/callback", h.Freshbooks.Callback)
				r.Post("/freshbooks/sync", h.Freshbooks.Sync)
			})
		})
	})

	// Everything else serves the SPA shell; the client router takes over.
	r.NotFound(spaHandler())

	return r, limiter
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// spaHandler serves the embedded frontend build. Unknown paths fall back
// to index.html so client-side routes survive a page reload.
func spaHandler() http.HandlerFunc {
	dist, err := fs.Sub(web.DistFS, "dist")
	if err != nil {
		panic("web/dist not embedded: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(dist))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if info, err := fs.Stat(dist, path); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		index, err := fs.ReadFile(dist, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(index)
	}
}
