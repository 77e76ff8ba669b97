// Package server provides the HTTP REST API for the skill gap analyzer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillgap-ai/skillgap-api/internal/catalog"
	"github.com/skillgap-ai/skillgap-api/internal/config"
	"github.com/skillgap-ai/skillgap-api/internal/db"
	"github.com/skillgap-ai/skillgap-api/internal/ingest"
	"github.com/skillgap-ai/skillgap-api/internal/roles"
	"github.com/skillgap-ai/skillgap-api/internal/server/middleware"
	"github.com/skillgap-ai/skillgap-api/internal/server/ratelimit"
	"github.com/skillgap-ai/skillgap-api/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       AnalysisStore
	repo        catalog.Repository
	roles       *roles.Catalog
	storage     *storage.Client
	fetcher     *ingest.Fetcher
	tracker     *progressTracker
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string // empty runs against the in-memory seed data
	StorageURL  string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	roleCatalog, err := roles.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load role catalog: %w", err)
	}

	s := &Server{
		roles:   roleCatalog,
		storage: storage.NewClient(cfg.StorageURL),
		fetcher: ingest.NewFetcher(),
		tracker: newProgressTracker(),
	}

	// Without a database the server runs fully in memory: seeded course
	// catalog, in-memory analyses, no auth endpoints.
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
		s.store = database
		s.repo = catalog.NewPostgresRepository(database.Pool())

		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}
		s.userService = NewUserService(database, passwordConfig)

		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
		s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	} else {
		s.store = newMemoryAnalysisStore()
		s.repo = catalog.NewMemoryRepository(catalog.SeedCourses(), catalog.SeedSkillGaps())
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for SSE progress streams
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Split out from New so tests can drive the
// full routing table without a listener.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Courses and gap scoring
	mux.HandleFunc("GET /courses", s.handleListCourses)
	mux.HandleFunc("POST /skill-gaps/classify", s.handleClassifyGaps)

	// Role catalog
	mux.HandleFunc("GET /job-roles", s.handleListRoles)
	mux.HandleFunc("GET /job-roles/{id}", s.handleGetRole)

	// Uploads and analyses
	mux.HandleFunc("POST /uploads", s.handleUpload)
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("POST /analyses/{id}/report", s.handleGenerateReport)
	mux.HandleFunc("GET /analyses/{id}/progress", s.handleProgress)

	if s.jwtService != nil {
		// Extraction works anonymously but attributes the analysis to the
		// caller when a token is present; deletion requires a valid token.
		optional := middleware.OptionalAuth(s.jwtService.AsTokenValidator())
		required := middleware.RequireAuth(s.jwtService.AsTokenValidator())
		mux.Handle("POST /analyses/extract", optional(http.HandlerFunc(s.handleExtract)))
		mux.Handle("DELETE /analyses/{id}", required(http.HandlerFunc(s.handleDeleteAnalysis)))

		mux.HandleFunc("POST /auth/register", s.authHandler.Register)
		mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	} else {
		mux.HandleFunc("POST /analyses/extract", s.handleExtract)
		mux.HandleFunc("DELETE /analyses/{id}", s.handleDeleteAnalysis)
	}

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.tracker.CancelAll()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
