package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ladderleague/ladder-bot/app/shared"
)

type contextKey string

const claimsKey contextKey = "api.claims"

// CallerFromContext returns the authenticated caller's claims, if the
// request passed AuthMiddleware.
func CallerFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// AuthMiddleware validates the bearer token and puts the caller's
// claims on the request context.
func AuthMiddleware(provider JWTProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := provider.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// CallerRateLimiter rate limits per authenticated user, falling back
// to the remote IP for unauthenticated requests. Stale entries are
// pruned inline.
type CallerRateLimiter struct {
	entries map[string]*limiterEntry
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

// NewCallerRateLimiter creates a new CallerRateLimiter.
func NewCallerRateLimiter(r rate.Limit, b int) *CallerRateLimiter {
	return &CallerRateLimiter{
		entries: make(map[string]*limiterEntry),
		r:       r,
		b:       b,
	}
}

// GetLimiter returns the rate.Limiter for the given key, pruning stale
// entries when the map exceeds cleanupThreshold.
func (l *CallerRateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range l.entries {
			if e.lastSeen.Before(cutoff) {
				delete(l.entries, k)
			}
		}
	}

	e, exists := l.entries[key]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()

	return e.limiter
}

// RateLimitMiddleware returns a middleware that rate limits requests
// by caller identity.
func RateLimitMiddleware(limiter *CallerRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if claims, ok := CallerFromContext(r.Context()); ok {
				key = "user:" + string(claims.UserID)
			} else {
				ip, _, err := net.SplitHostPort(r.RemoteAddr)
				if err != nil {
					ip = r.RemoteAddr
				}
				key = "ip:" + ip
			}

			if !limiter.GetLimiter(key).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// mustCaller is a handler-level guard; AuthMiddleware should have run.
func mustCaller(w http.ResponseWriter, r *http.Request) (shared.UserID, bool) {
	claims, ok := CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}
