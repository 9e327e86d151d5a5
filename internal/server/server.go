package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/toptier/siteapi/internal/auth"
	"github.com/toptier/siteapi/internal/handler"
	"github.com/toptier/siteapi/internal/notify"
	"github.com/toptier/siteapi/internal/server/middleware"
	"github.com/toptier/siteapi/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins:     []string{"*"},
	}
}

// Server is the top-level HTTP server for siteapi. It owns the Chi router,
// the record store, the auth service, and the outbound mailer.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *auth.Service
	mailer     *notify.Mailer
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server, wires up all routes and middleware, and returns
// it ready to listen. Call ListenAndServe to start accepting connections.
func New(cfg Config, st *store.Store, authSvc *auth.Service, mailer *notify.Mailer, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		mailer:  mailer,
		logger:  logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	// --- Health checks (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	authHandler := handler.NewAuthHandler(s.authSvc)
	publicHandler := handler.NewPublicHandler(s.store, s.mailer, s.logger)
	contentHandler := handler.NewContentHandler(s.store)
	leadHandler := handler.NewLeadHandler(s.store)

	r.Route("/api/v1", func(r chi.Router) {

		// Authentication: register/login/refresh carry their own
		// credentials; only /me sits behind the guard.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(s.authSvc, s.logger))
				r.Get("/me", authHandler.Me)
			})
		})

		// Public read API and contact form.
		r.Route("/public", func(r chi.Router) {
			r.Get("/content/{slug}", publicHandler.GetContent)
			r.Get("/testimonials", publicHandler.ListTestimonials)
			r.Get("/faqs", publicHandler.ListFAQs)
			r.Get("/disclaimers", publicHandler.ListDisclaimers)
			r.Post("/contact-forms", publicHandler.SubmitContactForm)
		})

		// Admin CRUD: every route delegates admission to the bearer guard.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(s.authSvc, s.logger))

			// Pages
			r.Get("/content", contentHandler.ListPages)
			r.Post("/content", contentHandler.CreatePage)
			r.Get("/content/{id}", contentHandler.GetPage)
			r.Put("/content/{id}", contentHandler.UpdatePage)
			r.Delete("/content/{id}", contentHandler.DeletePage)

			// Testimonials
			r.Get("/testimonials", contentHandler.ListTestimonials)
			r.Post("/testimonials", contentHandler.CreateTestimonial)
			r.Put("/testimonials/{id}", contentHandler.UpdateTestimonial)
			r.Delete("/testimonials/{id}", contentHandler.DeleteTestimonial)

			// FAQ items
			r.Get("/faqs", contentHandler.ListFAQs)
			r.Post("/faqs", contentHandler.CreateFAQ)
			r.Put("/faqs/{id}", contentHandler.UpdateFAQ)
			r.Delete("/faqs/{id}", contentHandler.DeleteFAQ)

			// Disclaimers
			r.Get("/disclaimers", contentHandler.ListDisclaimers)
			r.Post("/disclaimers", contentHandler.CreateDisclaimer)
			r.Put("/disclaimers/{id}", contentHandler.UpdateDisclaimer)
			r.Delete("/disclaimers/{id}", contentHandler.DeleteDisclaimer)

			// Leads
			r.Get("/contact-forms", leadHandler.List)
			r.Get("/contact-forms/{id}", leadHandler.Get)
			r.Put("/contact-forms/{id}", leadHandler.Update)
			r.Delete("/contact-forms/{id}", leadHandler.Delete)
		})
	})

	s.router = r
}

// ServeHTTP makes the server usable directly as an http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the record store is
// reachable, or 503 otherwise.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or SIGTERM
// is received. It then performs a graceful shutdown, draining in-flight
// requests for up to ShutdownTimeout.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
