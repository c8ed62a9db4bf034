package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/stardust-engine/internal/logger"
)

type contextKey string

const clientIPKey contextKey = "client_ip"

// ClientIPFromContext returns the address resolved by SecurityLoggingMiddleware
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// AuthMiddleware requires X-API-Key on every path outside PublicPaths
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	proxies := newProxySet(trustedProxies)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := proxies.clientIP(r)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// DetectorLimits tunes the SuspiciousActivityDetector
type DetectorLimits struct {
	Window           time.Duration
	RequestsPerIP    int
	FailedAuthsAlert int
}

// DefaultDetectorLimits allows RequestRateLimit requests per IP per RateWindow
func DefaultDetectorLimits() DetectorLimits {
	return DetectorLimits{
		Window:           RateWindow,
		RequestsPerIP:    RequestRateLimit,
		FailedAuthsAlert: FailedAuthAlertThreshold,
	}
}

// SuspiciousActivityDetector counts requests and failed logins per IP over a
// fixed window.
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	limits           DetectorLimits
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	windowStart      time.Time
	now              func() time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return NewSuspiciousActivityDetectorWithLimits(DefaultDetectorLimits())
}

func NewSuspiciousActivityDetectorWithLimits(limits DetectorLimits) *SuspiciousActivityDetector {
	d := &SuspiciousActivityDetector{limits: limits, now: time.Now}
	d.reset()
	return d
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuthByIP[ip]++

	if n := s.failedAuthByIP[ip]; n >= s.limits.FailedAuthsAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}

// RecordRequest counts a request and reports whether ip is still under its limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.requestCountByIP[ip]++

	n := s.requestCountByIP[ip]
	if n <= s.limits.RequestsPerIP {
		return true
	}
	if n%RateAlertEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n)
	}
	return false
}

// rollWindow starts a new counting window once the current one has expired.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) rollWindow() {
	if s.now().Sub(s.windowStart) > s.limits.Window {
		s.reset()
	}
}

func (s *SuspiciousActivityDetector) reset() {
	s.requestCountByIP = make(map[string]int)
	s.failedAuthByIP = make(map[string]int)
	s.windowStart = s.now()
}

// SecurityLoggingMiddleware enforces the per-IP request rate limit and stores
// the resolved client IP on the request context.
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	proxies := newProxySet(trustedProxies)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := proxies.clientIP(r)

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			ctx := context.WithValue(r.Context(), clientIPKey, ip)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// proxySet matches remote addresses against trusted proxy IPs and CIDRs
type proxySet struct {
	ips  map[string]struct{}
	nets []*net.IPNet
}

func newProxySet(entries []string) proxySet {
	ps := proxySet{ips: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if _, n, err := net.ParseCIDR(e); err == nil {
			ps.nets = append(ps.nets, n)
			continue
		}
		ps.ips[e] = struct{}{}
	}
	return ps
}

func (ps proxySet) trusts(remoteIP string) bool {
	if _, ok := ps.ips[remoteIP]; ok {
		return true
	}
	ip := net.ParseIP(remoteIP)
	if ip == nil {
		return false
	}
	for _, n := range ps.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIP returns the connecting address, or the last X-Forwarded-For hop
// when the connection comes from a trusted proxy.
func (ps proxySet) clientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !ps.trusts(remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// extractIP resolves the client address for one request
func extractIP(r *http.Request, trustedProxies []string) string {
	return newProxySet(trustedProxies).clientIP(r)
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
