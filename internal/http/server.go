package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"expensetracker/internal/auth"
	"expensetracker/internal/cache"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/middleware/ratelimit"
	"expensetracker/internal/services"
	"expensetracker/internal/storage"
)

// Config assembles the server's collaborators.
type Config struct {
	Addr               string
	Service            *services.ExpenseService
	Users              storage.UserStore
	Tokens             *auth.TokenManager
	AuthEnabled        bool
	RateLimitPerMinute int
	CacheTTL           time.Duration
	Logger             *applog.Logger
}

type Server struct {
	http.Server

	service     *services.ExpenseService
	users       storage.UserStore
	tokens      *auth.TokenManager
	authEnabled bool

	structLog    *applog.StructuredLogger
	rateLimiter  *ratelimit.Limiter
	summaryCache *cache.LRUCache[summaryResponse]
	seriesCache  *cache.LRUCache[seriesResponse]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg Config) *Server {
	mux := http.NewServeMux()

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	var handler http.Handler = mux
	handler = applog.RequestIDMiddleware(requestIDFor)(handler)
	handler = applog.Middleware(logger)(handler)

	s := &Server{
		Server: http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		},
		service:     cfg.Service,
		users:       cfg.Users,
		tokens:      cfg.Tokens,
		authEnabled: cfg.AuthEnabled,
		structLog:   applog.NewStructuredLogger(logger),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
		}),
		summaryCache: cache.NewLRUCache[summaryResponse](200, cacheTTL),
		seriesCache:  cache.NewLRUCache[seriesResponse](200, cacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.seriesCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/test", s.withCommon(s.withOwner(s.handleTest)))
	mux.HandleFunc("GET /api/summary", s.withCommon(s.withOwner(s.handleSummary)))
	mux.HandleFunc("GET /api/series", s.withCommon(s.withOwner(s.handleSeries)))
	mux.HandleFunc("GET /api/expenses", s.withCommon(s.withOwner(s.handleListExpenses)))
	mux.HandleFunc("POST /api/expenses", s.withCommon(s.withOwner(s.handleCreateExpense)))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withCommon(s.withOwner(s.handleDeleteExpense)))

	if cfg.AuthEnabled {
		mux.HandleFunc("POST /api/auth/signup", s.withCommon(s.handleSignup))
		mux.HandleFunc("POST /api/auth/login", s.withCommon(s.handleLogin))
		mux.HandleFunc("GET /api/auth/profile", s.withCommon(s.withOwner(s.handleProfile)))
		mux.HandleFunc("GET /api/auth/verify", s.withCommon(s.handleVerify))
	}

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// ownerHandler receives the resolved owner identity alongside the request.
// The owner is empty in single-tenant mode.
type ownerHandler func(w http.ResponseWriter, r *http.Request, ownerID string)

// withOwner resolves the request's owner. With auth disabled every request
// operates on the shared single-tenant data set.
func (s *Server) withOwner(next ownerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authEnabled {
			next(w, r, "")
			return
		}

		claims, err := s.claimsFromRequest(r)
		if err != nil {
			UnauthorizedError("invalid or missing token").Write(w)
			return
		}
		next(w, r, claims.UserID)
	}
}

func (s *Server) claimsFromRequest(r *http.Request) (*auth.Claims, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return nil, fmt.Errorf("missing authorization header")
	}
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	return s.tokens.ValidateToken(token)
}

// withCommon adds security headers, rate limiting, and request lifecycle
// logging. Request IDs are attached to the context logger further up the
// chain.
func (s *Server) withCommon(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()

		clientIP := extractClientIP(r)
		s.structLog.LogHTTPStart(ctx, r, clientIP)

		// Writes are rate limited per client; reads are cache-backed.
		if (r.Method == http.MethodPost || r.Method == http.MethodDelete) && !s.rateLimiter.Allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded").Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.structLog.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func extractClientIP(r *http.Request) string {
	clientIP := r.Header.Get("X-Forwarded-For")
	if clientIP == "" {
		clientIP = r.Header.Get("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = r.RemoteAddr
	}
	return clientIP
}

// requestIDFor honors an upstream X-Request-ID and falls back to a random ID.
func requestIDFor(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// cacheKeyPrefix scopes cache entries to one owner so a write can invalidate
// every cached view for that owner at once.
func cacheKeyPrefix(ownerID string) string {
	return ownerID + "|"
}

func cacheKey(ownerID, category string, g core.Granularity) string {
	return cacheKeyPrefix(ownerID) + category + "|" + string(g)
}

func (s *Server) invalidateOwner(ownerID string) {
	s.summaryCache.DeletePrefix(cacheKeyPrefix(ownerID))
	s.seriesCache.DeletePrefix(cacheKeyPrefix(ownerID))
}
