// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stwalsh4118/vidhub/internal/analytics"
	"github.com/stwalsh4118/vidhub/internal/api"
	"github.com/stwalsh4118/vidhub/internal/auth"
	"github.com/stwalsh4118/vidhub/internal/comment"
	"github.com/stwalsh4118/vidhub/internal/config"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/like"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/middleware"
	"github.com/stwalsh4118/vidhub/internal/notification"
	"github.com/stwalsh4118/vidhub/internal/playlist"
	"github.com/stwalsh4118/vidhub/internal/search"
	"github.com/stwalsh4118/vidhub/internal/user"
	"github.com/stwalsh4118/vidhub/internal/video"
)

// Services holds the business services the routes are served by
type Services struct {
	Auth          *auth.AuthService
	Videos        *video.VideoService
	Likes         *like.LikeService
	Comments      *comment.CommentService
	Playlists     *playlist.PlaylistService
	Search        *search.SearchService
	Analytics     *analytics.AnalyticsService
	Users         *user.UserService
	Notifications *notification.NotificationService
}

// NewServices wires every service over repos
func NewServices(cfg *config.Config, repos *db.Repositories) *Services {
	notifications := notification.NewNotificationService(repos)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptRounds)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return &Services{
		Auth:          auth.NewAuthService(repos, hasher, tokens),
		Videos:        video.NewVideoService(repos, notifications),
		Likes:         like.NewLikeService(repos, notifications),
		Comments:      comment.NewCommentService(repos, notifications),
		Playlists:     playlist.NewPlaylistService(repos),
		Search:        search.NewSearchService(repos),
		Analytics:     analytics.NewAnalyticsService(repos),
		Users:         user.NewUserService(repos, notifications),
		Notifications: notifications,
	}
}

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	db       *db.DB
	services *Services
	redis    *redis.Client
	registry *prometheus.Registry
	router   *gin.Engine
	server   *http.Server
}

// New creates a new server instance with its routes registered. A redis
// client is opened for the rate limiter when REDIS_URL is configured.
func New(cfg *config.Config, database *db.DB) (*Server, error) {
	s := &Server{
		config:   cfg,
		db:       database,
		services: NewServices(cfg, db.NewRepositories(database)),
		registry: prometheus.NewRegistry(),
	}

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		s.redis = redis.NewClient(opts)
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s.setupRouter()
	return s, nil
}

// Router returns the configured gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.New(corsConfig(s.config.CORS.Origins)))
	s.router.Use(middleware.NewMetricsBuilder(s.registry).Build())

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	apiGroup := s.router.Group("/api",
		middleware.RateLimit(s.limiter()),
		middleware.BodyLimit(s.config.Upload.MaxFileSize),
	)

	guards := api.NewGuards(s.services.Auth)
	timeout := s.config.Server.RequestTimeout

	var rdb redis.Cmdable
	if s.redis != nil {
		rdb = s.redis
	}
	api.SetupHealthRoutes(apiGroup, s.db, rdb)
	api.SetupAuthRoutes(apiGroup, s.services.Auth, guards, timeout)
	api.SetupVideoRoutes(apiGroup, s.services.Videos, guards, timeout)
	api.SetupLikeRoutes(apiGroup, s.services.Likes, guards, timeout)
	api.SetupCommentRoutes(apiGroup, s.services.Comments, guards, timeout)
	api.SetupPlaylistRoutes(apiGroup, s.services.Playlists, guards, timeout)
	api.SetupSearchRoutes(apiGroup, s.services.Search, timeout)
	api.SetupAnalyticsRoutes(apiGroup, s.services.Analytics, guards, timeout)
	api.SetupUserRoutes(apiGroup, s.services.Users, guards, timeout)
	api.SetupNotificationRoutes(apiGroup, s.services.Notifications, guards, timeout)
}

// limiter returns the redis-backed limiter when redis is configured and an
// in-process one otherwise
func (s *Server) limiter() middleware.Limiter {
	window := s.config.RateLimit.Window()
	limit := int64(s.config.RateLimit.MaxRequests)
	if s.redis != nil {
		return middleware.NewRedisLimiter(s.redis, window, limit)
	}
	return middleware.NewMemoryLimiter(window, limit)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Str("driver", s.db.Driver()).
		Bool("redis", s.redis != nil).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to close redis client")
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
