package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"handmade-market/internal/utils"

	"golang.org/x/time/rate"
)

// Tier is one token-bucket policy.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

var (
	// TierCredentials covers sign-in, sign-up and placing an order.
	TierCredentials = Tier{Name: "credentials", Limit: 2, Burst: 5}
	// TierWrite covers every other mutating request.
	TierWrite = Tier{Name: "write", Limit: 5, Burst: 10}
	// TierRead covers browsing.
	TierRead = Tier{Name: "read", Limit: 20, Burst: 40}
)

const (
	idleAfter     = 3 * time.Minute
	sweepInterval = time.Minute
)

// credentialRoutes are the "METHOD path" pairs limited as TierCredentials.
var credentialRoutes = map[string]bool{
	"POST /auth/login":        true,
	"POST /auth/register":     true,
	"POST /api/auth/login":    true,
	"POST /api/auth/register": true,
	"POST /checkout":          true,
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per caller and tier. Idle buckets are swept
// while serving requests, so no background goroutine is needed.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Middleware answers 429 with a JSON error once the caller's bucket for the
// request's tier is empty. It must run inside the auth middleware so signed-in
// callers are keyed by user rather than address.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier := TierFor(r)
		if !l.allow(callerKey(r)+"|"+tier.Name, tier) {
			w.Header().Set("Retry-After", "1")
			utils.WriteJSONError(w, "too many requests, slow down", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TierFor picks the policy for a request from its method and path.
func TierFor(r *http.Request) Tier {
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case credentialRoutes[r.Method+" "+path]:
		return TierCredentials
	case r.Method == http.MethodGet, r.Method == http.MethodHead, r.Method == http.MethodOptions:
		return TierRead
	default:
		return TierWrite
	}
}

func callerKey(r *http.Request) string {
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + id
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func (l *RateLimiter) allow(key string, tier Tier) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > idleAfter {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(tier.Limit, tier.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
