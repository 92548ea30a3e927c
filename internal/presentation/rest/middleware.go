package rest

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"golang.org/x/time/rate"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so the first one listed runs outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestLogger logs one line per request through chi's request logger and
// attaches the log entry that Recoverer reports panics to.
func RequestLogger(logger *slog.Logger) Middleware {
	return chimiddleware.RequestLogger(slogFormatter{logger: logger})
}

type slogFormatter struct {
	logger *slog.Logger
}

func (f slogFormatter) NewLogEntry(r *http.Request) chimiddleware.LogEntry {
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if id := chimiddleware.GetReqID(r.Context()); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	return &slogEntry{logger: f.logger.With(attrs...), r: r}
}

type slogEntry struct {
	logger *slog.Logger
	r      *http.Request
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	e.logger.InfoContext(e.r.Context(), "http request",
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("duration", elapsed),
	)
}

func (e *slogEntry) Panic(v any, stack []byte) {
	e.logger.ErrorContext(e.r.Context(), "panic in http handler",
		slog.Any("panic", v),
		slog.String("stack", string(stack)),
	)
}

// Recoverer turns a handler panic into a 500 with a JSON detail body.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
		})
		chimiddleware.Recoverer(inner).ServeHTTP(panicResponse{ResponseWriter: w}, r)
	})
}

// panicResponse only receives the status chi's Recoverer writes after a panic.
type panicResponse struct {
	http.ResponseWriter
}

func (p panicResponse) WriteHeader(code int) {
	writeError(p.ResponseWriter, code, "internal error")
}

// CORS allows any origin with credentials. Preflight requests end here.
func CORS() Middleware {
	return cors.Handler(cors.Options{
		AllowOriginFunc:  func(*http.Request, string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// DefaultLimiterIdleTimeout is how long an unused limiter is kept.
const DefaultLimiterIdleTimeout = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TenantRateLimiter holds one token bucket per tenant and client address.
// Buckets idle for longer than the idle timeout are evicted.
type TenantRateLimiter struct {
	limiters  map[string]*limiterEntry
	logger    *slog.Logger
	now       func() time.Time
	lastSweep time.Time
	idle      time.Duration
	limit     rate.Limit
	burst     int
	mu        sync.Mutex
}

// NewTenantRateLimiter allows rps requests per second per tenant and client
// with the given burst.
func NewTenantRateLimiter(rps float64, burst int, logger *slog.Logger) *TenantRateLimiter {
	return &TenantRateLimiter{
		limiters: make(map[string]*limiterEntry),
		logger:   logger,
		now:      time.Now,
		idle:     DefaultLimiterIdleTimeout,
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (l *TenantRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) >= l.idle {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Middleware rejects requests over the tenant budget with 429.
func (l *TenantRateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant := tenantFromRequest(r)
			key := tenant
			if ip, err := httprate.KeyByIP(r); err == nil {
				key = tenant + "|" + ip
			}
			if !l.limiter(key).Allow() {
				l.logger.WarnContext(r.Context(), "rate limit exceeded", slog.String("tenant_id", tenant))
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
