package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/stardust-engine/docs"
	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/asset"
	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/catalog"
	"github.com/osse101/stardust-engine/internal/eventlog"
	"github.com/osse101/stardust-engine/internal/handler"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/metrics"
	"github.com/osse101/stardust-engine/internal/middleware"
	"github.com/osse101/stardust-engine/internal/player"
	"github.com/osse101/stardust-engine/internal/quest"
	"github.com/osse101/stardust-engine/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Storage        string // storage backend name reported by /readyz
	ServiceName    string
	Version        string
	Environment    string
}

// Services groups the rule engines the routes dispatch to
type Services struct {
	Players  player.Service
	Assets   asset.Service
	Battles  battle.Service
	Catalog  catalog.Service
	Quests   quest.Service
	EventLog eventlog.Service
	Gate     *admin.Gate
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services, store handler.Pinger, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.PlayerContext)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, handler.ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store, opts.Storage))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(opts.ServiceName, opts.Version, opts.Environment))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	playerHandler := handler.NewPlayerHandler(svc.Players, svc.Assets, svc.Battles, svc.Quests)
	assetHandler := handler.NewAssetHandler(svc.Assets, svc.Battles)
	battleHandler := handler.NewBattleHandler(svc.Battles)
	missionHandler := handler.NewMissionHandler(svc.Catalog, svc.Quests)
	adminHandler := handler.NewAdminHandler(svc.Catalog, svc.Players)
	adminEventsHandler := handler.NewAdminEventsHandler(svc.EventLog, svc.Gate)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/players", func(r chi.Router) {
			r.Post("/register", playerHandler.HandleRegister)
			r.Route("/{address}", func(r chi.Router) {
				r.Get("/", playerHandler.HandleGetPlayer)
				r.Get("/profile", playerHandler.HandleGetProfile)
				r.Get("/assets", playerHandler.HandleListAssets)
				r.Get("/battles", playerHandler.HandleListBattles)
				r.Route("/missions", func(r chi.Router) {
					r.Get("/active", playerHandler.HandleListActiveMissions)
					r.Get("/available", playerHandler.HandleListAvailableMissions)
					r.Get("/completed", playerHandler.HandleListCompletedMissions)
				})
			})
		})

		r.Route("/assets", func(r chi.Router) {
			r.Post("/mint", assetHandler.HandleMint)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", assetHandler.HandleGetAsset)
				r.Get("/power", assetHandler.HandleGetPower)
				r.Post("/transfer", assetHandler.HandleTransfer)
			})
		})

		r.Route("/battles", func(r chi.Router) {
			r.Post("/", battleHandler.HandleInitiate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", battleHandler.HandleGetBattle)
				r.Post("/accept", battleHandler.HandleAccept)
				r.Post("/moves", battleHandler.HandleSubmitMove)
			})
		})

		r.Route("/missions", func(r chi.Router) {
			r.Get("/", missionHandler.HandleListMissions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", missionHandler.HandleGetMission)
				r.Post("/start", missionHandler.HandleStartMission)
				r.Post("/objectives/{objectiveID}/complete", missionHandler.HandleCompleteObjective)
			})
		})

		r.Get("/stats/platform", handler.HandlePlatformStats(svc.Players))

		// Live event feed
		r.Get("/events", sse.Handler(hub))

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/missions", adminHandler.HandleCreateMission)
			r.Post("/missions/initialize", adminHandler.HandleInitializeMissions)
			r.Post("/players/{address}/experience", adminHandler.HandleGrantExperience)
			r.Get("/events", adminEventsHandler.HandleGetEvents)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the routed middleware stack, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
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
		statusCode:     http.StatusOK, // default status
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

// Flush lets the event stream push frames through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isProbePath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		clientIP := ClientIPFromContext(ctx)
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"client_ip", clientIP,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", elapsed.Milliseconds())
	})
}

func isProbePath(path string) bool {
	for _, p := range ProbePaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
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
