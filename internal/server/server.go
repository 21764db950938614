// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer. It connects stores, services,
// handlers and middleware, and decides:
//   - which URL patterns map to which handler functions
//   - what middleware runs on which routes
//   - how the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	config → sqlite.DB → stores → services → handlers → routes
//
// This is the "composition root": every dependency is built in New, so no
// other package constructs its own collaborators.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/sakif/applyhelp/internal/auth"
	"github.com/sakif/applyhelp/internal/config"
	"github.com/sakif/applyhelp/internal/handler"
	"github.com/sakif/applyhelp/internal/metrics"
	"github.com/sakif/applyhelp/internal/middleware"
	"github.com/sakif/applyhelp/internal/model"
	sqliteRepo "github.com/sakif/applyhelp/internal/repository/sqlite"
	"github.com/sakif/applyhelp/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection and, when rate limiting is on,
// the Redis client. Close releases both; Start calls it on shutdown.
type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	db      *sqliteRepo.DB
	redis   *redis.Client // nil when REDIS_URL is unset
	metrics *metrics.Metrics
	tokens  *auth.TokenService
}

// New opens the database and builds the full handler tree.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo so it is not confused with
// the modernc.org/sqlite driver package.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
		tokens:  tokens,
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
		}
		s.redis = redis.NewClient(opts)
	}

	s.setupRoutes()
	return s, nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// DB exposes the database, for tests and tools sharing the process.
func (s *Server) DB() *sqliteRepo.DB {
	return s.db
}

// Close releases the database and Redis connections.
func (s *Server) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, s.db.Close())
	return errors.Join(errs...)
}

// setupRoutes configures all middleware and route handlers. The route table
// is listed in one place below; "auth" groups sit behind RequireAuth.
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID: assigns a unique ID to each request (for tracing)
//  2. RealIP: extracts the client IP from proxy headers (rate limiting keys on it)
//  3. Recoverer: turns panics into 500s instead of crashing
//  4. Logger, Metrics: observe every request after routing
//  5. Locale: negotiates the response language
func (s *Server) setupRoutes() {
	db := s.db
	m := s.metrics

	var policy model.TransitionPolicy = model.PermissiveTransitions{}
	if s.config.StrictTransitions {
		policy = model.DefaultStrictTransitions
	}

	var github *auth.GitHubProvider
	if s.config.GitHub.Enabled() {
		github = auth.NewGitHubProvider(s.config.GitHub.ClientID, s.config.GitHub.ClientSecret, s.config.GitHub.CallbackURL)
	} else {
		s.logger.Info("GitHub login disabled: GITHUB_CLIENT_ID/GITHUB_CLIENT_SECRET not set")
	}

	// === Services ===
	accounts := service.NewAccountService(db.Users(), db.Profiles(), db.Trackers(), s.tokens, auth.NewPasswordService(), m, s.logger)
	catalog := service.NewCatalogService(db.Catalog(), s.logger)
	trackers := service.NewTrackerService(db.Trackers(), db.Catalog(), policy, m, s.logger)
	composer := service.NewComposerService(db.Composer(), db.Trackers(), db.Users(), s.logger)
	resumes := service.NewResumeService(db.Resumes(), db.Users(), s.logger)
	resources := service.NewResourceService(db.Resources(), m, s.logger)
	home := service.NewHomeService(db.Catalog(), db.Resources())

	// === Handlers ===
	authH := handler.NewAuthHandler(accounts, github, handler.SessionConfig{
		TTL:    s.tokens.TTL(),
		Secure: s.config.CookieSecure,
	}, s.logger)
	accountH := handler.NewAccountHandler(accounts, s.logger)
	catalogH := handler.NewCatalogHandler(catalog, s.logger)
	trackerH := handler.NewTrackerHandler(trackers, s.logger)
	composerH := handler.NewComposerHandler(composer, s.logger)
	resumeH := handler.NewResumeHandler(resumes, s.logger)
	resourceH := handler.NewResourceHandler(resources, s.logger)
	homeH := handler.NewHomeHandler(home, s.logger)

	requireAuth := auth.RequireAuth(s.tokens)
	optionalAuth := auth.OptionalAuth(s.tokens)
	authLimit := s.authRateLimit()

	// === Global Middleware ===
	r := s.router
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.Locale(s.config.DefaultLocale))

	r.Get("/healthz", handler.HandleHealth)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", homeH.HandleHome)
		r.Get("/forms/{name}", homeH.HandleForm)
		r.Get("/enums/{group}", homeH.HandleEnum)

		r.Route("/auth", func(r chi.Router) {
			r.With(authLimit("register")).Post("/register", authH.HandleRegister)
			r.With(authLimit("login")).Post("/login", authH.HandleLogin)
			r.Post("/logout", authH.HandleLogout)
			r.Get("/github/login", authH.HandleGitHubLogin)
			r.Get("/github/callback", authH.HandleGitHubCallback)
			r.With(requireAuth).Get("/me", authH.HandleMe)
		})

		// === Authenticated account routes ===
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/dashboard", accountH.HandleDashboard)
			r.Get("/account", accountH.HandleGetAccount)
			r.Put("/account", accountH.HandleUpdateAccount)
			r.Put("/account/dialects", accountH.HandleSetDialects)
			r.Get("/dialects", accountH.HandleDialects)
			r.Get("/profile", accountH.HandleGetProfile)
			r.Put("/profile", accountH.HandleUpdateProfile)
		})

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", catalogH.HandleOverview)
			r.Get("/countries", catalogH.HandleCountries)
			r.Get("/countries/{code}", catalogH.HandleCountry)
			r.Get("/universities", catalogH.HandleUniversities)
			r.Get("/universities/{id}", catalogH.HandleUniversity)
			r.Get("/programs", catalogH.HandlePrograms)
			r.Get("/programs/{id}", catalogH.HandleProgram)
			r.Get("/scholarships", catalogH.HandleScholarships)
			r.Get("/quiz", catalogH.HandleQuiz)
			r.With(requireAuth).Get("/compare", catalogH.HandleCompare)
		})

		r.Route("/communications", func(r chi.Router) {
			r.Get("/templates", composerH.HandleTemplates)
			r.With(optionalAuth).Get("/templates/{id}", composerH.HandleTemplate)
			r.Get("/tips", composerH.HandleTips)
			r.With(requireAuth).Get("/", composerH.HandleDashboard)
			r.With(requireAuth).Get("/compose", composerH.HandleCompose)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", trackerH.HandleList)
			r.Post("/", trackerH.HandleCreate)
			r.Get("/{id}", trackerH.HandleGet)
			r.Put("/{id}", trackerH.HandleUpdate)
			r.Delete("/{id}", trackerH.HandleDelete)
			r.Post("/{id}/documents", trackerH.HandleAddDocument)
			r.Put("/{id}/documents/{docID}", trackerH.HandleUpdateDocument)
			r.Delete("/{id}/documents/{docID}", trackerH.HandleDeleteDocument)
		})

		r.Route("/emails", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", trackerH.HandleEmails)
			r.Post("/", trackerH.HandleLogEmail)
			r.Put("/{id}/response", trackerH.HandleRecordResponse)
		})

		r.Route("/resumes", func(r chi.Router) {
			r.Get("/templates", resumeH.HandleTemplates)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/builder", resumeH.HandleBuilder)
				r.Get("/", resumeH.HandleList)
				r.Post("/", resumeH.HandleCreate)
				r.Get("/{id}", resumeH.HandleGet)
				r.Put("/{id}", resumeH.HandleUpdate)
				r.Delete("/{id}", resumeH.HandleDelete)
				r.Post("/{id}/{section}", resumeH.HandleAddItem)
				r.Put("/{id}/{section}/{itemID}", resumeH.HandleUpdateItem)
				r.Delete("/{id}/{section}/{itemID}", resumeH.HandleDeleteItem)
			})
		})

		r.Route("/resources", func(r chi.Router) {
			r.Get("/", resourceH.HandleHome)
			r.Get("/guides", resourceH.HandleGuides)
			r.Get("/guides/{slug}", resourceH.HandleGuide)
			r.Get("/categories/{id}/guides", resourceH.HandleCategoryGuides)
			r.With(requireAuth).Post("/guides/{slug}/helpful", resourceH.HandleHelpful)
		})
	})
}

// authRateLimit returns the per-scope limiter for login and registration.
// Without Redis, or with a zero limit, it is a no-op.
func (s *Server) authRateLimit() func(scope string) func(http.Handler) http.Handler {
	if s.redis == nil || s.config.AuthRateLimit == 0 {
		return func(string) func(http.Handler) http.Handler {
			return func(next http.Handler) http.Handler { return next }
		}
	}
	limiter := middleware.NewRedisLimiter(s.redis, s.config.AuthRateLimit)
	return func(scope string) func(http.Handler) http.Handler {
		return middleware.RateLimit(limiter, scope, s.metrics, s.logger)
	}
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new HTTP connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the database (flushes WAL, releases the file lock) and Redis
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.Bool("rateLimit", s.redis != nil),
			slog.Bool("strictTransitions", s.config.StrictTransitions),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
