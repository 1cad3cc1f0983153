package server

import (
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/metrics"
)

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// DetectorOption tunes a SuspiciousActivityDetector
type DetectorOption func(*SuspiciousActivityDetector)

// WithWindow sets the counting window
func WithWindow(d time.Duration) DetectorOption {
	return func(s *SuspiciousActivityDetector) { s.window = d }
}

// WithRequestLimit sets how many requests one IP may send per window
func WithRequestLimit(n int) DetectorOption {
	return func(s *SuspiciousActivityDetector) { s.maxRequests = n }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) DetectorOption {
	return func(s *SuspiciousActivityDetector) { s.now = now }
}

// SuspiciousActivityDetector counts requests and rejected init data per client IP
// over a fixed window.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	failedAuth  map[string]int
	requests    map[string]int
	windowStart time.Time
	window      time.Duration
	maxRequests int
	now         func() time.Time
}

func NewSuspiciousActivityDetector(opts ...DetectorOption) *SuspiciousActivityDetector {
	s := &SuspiciousActivityDetector{
		failedAuth:  make(map[string]int),
		requests:    make(map[string]int),
		window:      DetectorWindow,
		maxRequests: MaxRequestsPerWindow,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.windowStart = s.now()
	return s
}

// RecordFailedAuth counts a request whose init data was rejected and returns
// the IP's count in the current window. An alert is logged at every multiple
// of FailedAuthAlertThreshold.
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	metrics.RequestsRejected.WithLabelValues(metrics.ReasonInvalidInitData).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuth[ip]++
	n := s.failedAuth[ip]
	if n%FailedAuthAlertThreshold == 0 {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n, "window", s.window)
	}
	return n
}

// Allow counts a request and reports whether the IP is still under its limit
func (s *SuspiciousActivityDetector) Allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.requests[ip]++
	n := s.requests[ip]
	if n <= s.maxRequests {
		return true
	}

	if (n-s.maxRequests)%HighRateLogEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", n, "window", s.window)
	}
	return false
}

// RetryAfter is the time left in the current window
func (s *SuspiciousActivityDetector) RetryAfter() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	left := s.window - s.now().Sub(s.windowStart)
	if left < time.Second {
		return time.Second
	}
	return left
}

// rollWindow clears all counters once the window has elapsed. Caller holds mu.
func (s *SuspiciousActivityDetector) rollWindow() {
	now := s.now()
	if now.Sub(s.windowStart) < s.window {
		return
	}
	clear(s.requests)
	clear(s.failedAuth)
	s.windowStart = now
}

// RateLimitMiddleware answers 429 once a client IP exceeds the detector's limit
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Allow(extractIP(r, trustedProxies)) {
				metrics.RequestsRejected.WithLabelValues(metrics.ReasonRateLimited).Inc()
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(detector.RetryAfter().Seconds())))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is honoured only when
// the direct peer is a trusted proxy, and then only its last hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware sets hardening headers. The Mini App runs inside
// Telegram's web client, so framing is allowed for frameAncestors instead of
// being denied outright.
func SecurityHeadersMiddleware(frameAncestors []string) func(http.Handler) http.Handler {
	csp := "frame-ancestors " + strings.Join(append([]string{CSPSelf}, frameAncestors...), " ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentTypeOptions, HeaderValueNoSniff)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			h.Set(HeaderContentSecurityPolicy, csp)
			next.ServeHTTP(w, r)
		})
	}
}
