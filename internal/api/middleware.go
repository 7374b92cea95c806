package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/isdelr/ecolearn/internal/fixtures"
	"github.com/isdelr/ecolearn/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// JWTMiddleware creates a middleware for protecting routes.
func JWTMiddleware(issuer *fixtures.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// Prefer the Authorization header, fall back to the cookie set at login.
			if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
				tokenStr = token
			}
			if tokenStr == "" {
				if cookie, err := r.Cookie("token"); err == nil {
					tokenStr = cookie.Value
				}
			}
			if tokenStr == "" {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			claims, err := issuer.Validate(tokenStr)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(fixtures.WithClaims(r.Context(), claims)))
		})
	}
}

// RequestLogger logs each request with zerolog and counts it in the server metrics.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			metrics.ObserveServerRequest(r.Method, path, status)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Str("requestID", middleware.GetReqID(r.Context())).
				Msg("Request handled")
		}()
		next.ServeHTTP(ww, r)
	})
}

// RateLimiter keeps one token bucket per client. Expensive endpoints draw from a separate,
// smaller bucket.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	sensitive func(path string) bool
	now       func() time.Time
}

type clientLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter allowing rps requests per second per client with
// the given burst. Sensitive endpoints get a tenth of that.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*clientLimiter),
		limit:     rate.Limit(rps),
		burst:     burst,
		sensitive: isSensitiveEndpoint,
		now:       time.Now,
	}
}

func isSensitiveEndpoint(path string) bool {
	return strings.Contains(path, "/learning/generate") ||
		strings.Contains(path, "/learning/personalize") ||
		strings.Contains(path, "/carbon/calculate")
}

func (rl *RateLimiter) limiter(key string, sensitive bool) *rate.Limiter {
	if sensitive {
		key = "sensitive:" + key
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if l, ok := rl.limiters[key]; ok {
		l.lastSeen = rl.now()
		return l.Limiter
	}
	limit, burst := rl.limit, rl.burst
	if sensitive {
		limit, burst = limit/10, max(1, burst/10)
	}
	l := &clientLimiter{Limiter: rate.NewLimiter(limit, burst), lastSeen: rl.now()}
	rl.limiters[key] = l
	return l.Limiter
}

// Cleanup drops the limiters of clients not seen for longer than idle and returns how
// many remain.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	cutoff := rl.now().Add(-idle)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, l := range rl.limiters {
		if l.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
	return len(rl.limiters)
}

// StartCleanup runs Cleanup every interval until the returned stop function is called.
func (rl *RateLimiter) StartCleanup(interval, idle time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if remaining := rl.Cleanup(idle); remaining > 0 {
					log.Debug().Int("clients", remaining).Msg("Rate limiter cleanup")
				}
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// clientKey identifies the caller: the token subject when present, else the address.
func clientKey(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
		return "token:" + token
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i > 0 {
		host = host[:i]
	}
	return "ip:" + host
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := rl.limiter(clientKey(r), rl.sensitive(r.URL.Path))
		res := l.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			http.Error(w, "Too many requests, try again later", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("X-Rate-Limit-Remaining", strconv.Itoa(int(l.Tokens())))
		next.ServeHTTP(w, r)
	})
}
