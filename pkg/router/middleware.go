package router

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/monebot/website/pkg/logging"
)

// Recovery turns a handler panic into a 500 and logs the stack.
func Recovery(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						logging.String("path", r.URL.Path),
						logging.Any("panic", rec),
						logging.String("stack", string(debug.Stack())),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeadersConfig configures security headers.
type SecureHeadersConfig struct {
	// FrameOptions controls X-Frame-Options. Default: "DENY".
	FrameOptions string

	// ReferrerPolicy sets Referrer-Policy.
	ReferrerPolicy string

	// PermissionsPolicy sets Permissions-Policy.
	PermissionsPolicy string

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds, sent
	// only over HTTPS. Zero disables HSTS.
	HSTSMaxAge int

	// ImageSources are extra img-src entries for the CSP.
	ImageSources []string

	// StyleSources are extra style-src entries, such as a web font CSS host.
	StyleSources []string

	// FontSources are extra font-src entries.
	FontSources []string
}

// DefaultSecureHeadersConfig returns the configuration the site runs with.
func DefaultSecureHeadersConfig() SecureHeadersConfig {
	return SecureHeadersConfig{
		FrameOptions:      "DENY",
		ReferrerPolicy:    "strict-origin-when-cross-origin",
		PermissionsPolicy: "geolocation=(), microphone=(), camera=()",
		HSTSMaxAge:        31536000,
		ImageSources:      []string{"https:"},
		StyleSources:      []string{"https://fonts.googleapis.com"},
		FontSources:       []string{"https://fonts.gstatic.com"},
	}
}

type cspNonceKey struct{}

// CSPNonce returns the per-request script nonce, or "" outside SecureHeaders.
func CSPNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(cspNonceKey{}).(string)
	return nonce
}

func generateNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// SecureHeaders adds security headers and a nonce-based script policy.
// Inline style attributes stay allowed because slot diffs carry them.
func SecureHeaders(config SecureHeadersConfig) Middleware {
	imgSrc := strings.TrimSpace("'self' data: " + strings.Join(config.ImageSources, " "))
	styleSrc := strings.TrimSpace("'self' 'unsafe-inline' " + strings.Join(config.StyleSources, " "))
	fontSrc := strings.TrimSpace("'self' " + strings.Join(config.FontSources, " "))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if config.FrameOptions != "" {
				h.Set("X-Frame-Options", config.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if config.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", config.ReferrerPolicy)
			}
			if config.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", config.PermissionsPolicy)
			}
			if config.HSTSMaxAge > 0 && (r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https") {
				h.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(config.HSTSMaxAge)+"; includeSubDomains")
			}

			nonce := generateNonce()
			h.Set("Content-Security-Policy", "default-src 'self'; "+
				"script-src 'self' 'nonce-"+nonce+"'; "+
				"style-src "+styleSrc+"; "+
				"font-src "+fontSrc+"; "+
				"img-src "+imgSrc+"; "+
				"connect-src 'self' ws: wss:; "+
				"frame-ancestors 'none'; "+
				"base-uri 'self'; "+
				"form-action 'self'")

			ctx := context.WithValue(r.Context(), cspNonceKey{}, nonce)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit applies a per-client token bucket. Idle buckets are evicted
// after ttl.
func RateLimit(limit rate.Limit, burst int, ttl time.Duration) Middleware {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu        sync.Mutex
		clients   = make(map[string]*entry)
		lastSweep = time.Now()
	)

	allow := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastSweep) > ttl {
			for k, e := range clients {
				if now.Sub(e.lastSeen) > ttl {
					delete(clients, k)
				}
			}
			lastSweep = now
		}

		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(limit, burst)}
			clients[ip] = e
		}
		e.lastSeen = now
		return e.limiter.Allow()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error":   "Too Many Requests",
					"message": "rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
