package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/FairyGrove_Go/internal/auth"
	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/eventlog"
	"github.com/osse101/FairyGrove_Go/internal/handler"
	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/metrics"
	"github.com/osse101/FairyGrove_Go/internal/middleware"
	"github.com/osse101/FairyGrove_Go/internal/payment"
	"github.com/osse101/FairyGrove_Go/internal/player"
)

// Deps are the services the HTTP layer routes to
type Deps struct {
	Store         handler.Pinger
	Catalog       *catalog.Catalog
	Players       player.Service
	EventLog      eventlog.Service
	Payments      payment.Service
	Authenticator *middleware.Authenticator
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg *config.Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the full route tree with its middleware stack
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware(cfg.CORSOrigins))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", auth.HeaderInitData},
		MaxAge:         300,
	}))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(cfg.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	authn := deps.Authenticator.OnReject(func(req *http.Request) {
		detector.RecordFailedAuth(extractIP(req, cfg.TrustedProxies))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog data is the same for everyone
		r.Get("/catalog/creatures", handler.HandleGetCreatures(deps.Catalog))
		r.Get("/shop/items", handler.HandleGetShopItems(deps.Catalog))

		// Telegram calls the webhook directly; it authenticates with the secret token
		r.Post("/payments/webhook", handler.HandlePaymentWebhook(deps.Payments, cfg.WebhookSecret))

		r.Group(func(r chi.Router) {
			r.Use(authn.Require)

			r.Post("/auth/telegram", handler.HandleAuthTelegram(deps.Players))

			r.Route("/game", func(r chi.Router) {
				r.Get("/state", handler.HandleGetState(deps.Players))
				r.Post("/merge", handler.HandleMerge(deps.Players))
				r.Post("/collect", handler.HandleCollect(deps.Players))
				r.Post("/collect-all", handler.HandleCollectAll(deps.Players))
				r.Post("/sync", handler.HandleSync(deps.Players))
				r.Get("/offline-bonus", handler.HandleOfflineBonus(deps.Players))
				r.Get("/history", handler.HandleGetHistory(deps.EventLog))
			})

			r.Post("/shop/buy", handler.HandleBuy(deps.Players))

			r.Route("/quests", func(r chi.Router) {
				r.Get("/", handler.HandleGetQuests(deps.Players))
				r.Post("/{"+handler.URLParamQuestID+"}/claim", handler.HandleClaimQuest(deps.Players))
			})

			r.Post("/referral/apply", handler.HandleApplyReferral(deps.Players))

			r.Route("/payments", func(r chi.Router) {
				r.Post("/invoice", handler.HandleCreateInvoice(deps.Payments))
				r.Post("/verify", handler.HandleVerifyPayment(deps.Payments))
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// sensitiveHeaders never reach the logs
var sensitiveHeaders = []string{
	HeaderAuthorization,
	auth.HeaderInitData,
	payment.SecretTokenHeader,
}

func isSensitiveHeader(name string) bool {
	for _, h := range sensitiveHeaders {
		if strings.EqualFold(name, h) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if isSensitiveHeader(k) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
