package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/impact-sim-service/internal/auth"
	"github.com/couchcryptid/impact-sim-service/internal/simulation"
	"github.com/couchcryptid/impact-sim-service/internal/user"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// AllReady combines checkers; it is ready only when every checker is.
type AllReady []sharedobs.ReadinessChecker

func (a AllReady) CheckReadiness(ctx context.Context) error {
	var errs []error
	for _, c := range a {
		if c == nil {
			continue
		}
		if err := c.CheckReadiness(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Simulator runs impact scenarios.
type Simulator interface {
	Simulate(ctx context.Context, req simulation.Request) (simulation.Run, error)
}

// Accounts implements the user signup, verification, and login flows.
type Accounts interface {
	Signup(ctx context.Context, email, password string) (user.User, error)
	Verify(ctx context.Context, token string) (user.User, error)
	Login(ctx context.Context, email, password string) (user.Session, error)
	Count(ctx context.Context) (int, error)
}

// TokenValidator checks session tokens issued at login.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Feed is the live simulation stream served at /api/feed.
type Feed interface {
	http.Handler
	Count() int
}

// Deps are the collaborators behind the HTTP routes. Everything except
// Simulator is optional; routes needing a missing collaborator are not
// registered.
type Deps struct {
	Ready     sharedobs.ReadinessChecker
	Simulator Simulator
	Accounts  Accounts
	Tokens    TokenValidator
	Feed      Feed
}

// Server exposes the simulation API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		deps:   deps,
		logger: logger,
	}

	ready := deps.Ready
	if ready == nil {
		ready = AllReady{}
	}
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	if deps.Accounts != nil {
		mux.HandleFunc("POST /api/users", s.handleSignup)
		mux.HandleFunc("POST /api/users/verify", s.handleVerify)
		mux.HandleFunc("POST /api/users/login", s.handleLogin)
	}
	if deps.Tokens != nil {
		mux.Handle("GET /api/users/me", s.requireSession(http.HandlerFunc(s.handleMe)))
	}
	if deps.Feed != nil {
		mux.Handle("GET /api/feed", deps.Feed)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type statsResponse struct {
	Users           *int `json:"users,omitempty"`
	FeedSubscribers *int `json:"feed_subscribers,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var resp statsResponse
	if s.deps.Accounts != nil {
		n, err := s.deps.Accounts.Count(r.Context())
		if err != nil {
			s.logger.Error("count users failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp.Users = &n
	}
	if s.deps.Feed != nil {
		n := s.deps.Feed.Count()
		resp.FeedSubscribers = &n
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
