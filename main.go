package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/balaiwarga/dashboard/handlers"
	"github.com/balaiwarga/dashboard/internal/api"
	"github.com/balaiwarga/dashboard/internal/config"
	"github.com/balaiwarga/dashboard/internal/database"
	"github.com/balaiwarga/dashboard/internal/sessions"
	"github.com/balaiwarga/dashboard/internal/storage"
	"github.com/balaiwarga/dashboard/pkg/logger"
	"github.com/balaiwarga/dashboard/pkg/metrics"
	"github.com/balaiwarga/dashboard/pkg/middleware"
	"github.com/balaiwarga/dashboard/web"
)

var startTime = time.Now()

func main() {
	// logging can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: upstream=%s redis=%v mongo=%v", cfg.Upstream.BaseURL, cfg.Redis.Host != "", cfg.MongoDB.URI != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatalf("failed to parse templates: %v", err)
	}
	r.SetHTMLTemplate(tmpl)

	ctx := context.Background()

	// Connect to Redis early so both the rate limiter and the session store
	// can use it when configured.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Session store preference: Redis, then MongoDB, then in-process memory.
	var sessionsSvc *sessions.Service
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
		logger.Infof("using Redis for session storage")
	} else if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnf("failed to connect to MongoDB: %v", err)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			col := client.Database(cfg.MongoDB.Database).Collection("sessions")
			sessionsSvc = sessions.NewService(sessions.NewMongoRepository(col))
			logger.Infof("using MongoDB for session storage")
		}
	}
	if sessionsSvc == nil {
		sessionsSvc = sessions.NewService(sessions.NewMemoryRepository())
		logger.Warnf("using in-memory session storage; sessions are lost on restart")
	}

	apiClient := api.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// Storage: talk to MinIO directly when configured, otherwise go through
	// the upstream's storage endpoints.
	var store storage.Storage
	if os.Getenv("MINIO_ENDPOINT") != "" {
		ms, err := storage.NewMinIOStorage(storage.LoadMinIOConfig())
		if err != nil {
			logger.Fatalf("failed to initialize MinIO storage: %v", err)
		}
		store = ms
		logger.Infof("using direct MinIO storage")
	} else {
		store = storage.NewAPIStorage(apiClient)
	}

	env := &handlers.Env{
		Cfg:      cfg,
		API:      api.NewAPI(apiClient),
		Store:    store,
		Sessions: sessionsSvc,
	}

	var loginLimiter gin.HandlerFunc
	if cfg.RateLimit.LoginRPS > 0 {
		loginLimiter = middleware.RateLimitMiddleware(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	}

	auth := handlers.NewAuthHandler(env)
	auth.Register(r, loginLimiter)

	protected := r.Group("/", middleware.SessionAuth(sessionsSvc, cfg.Session.CookieName))
	auth.RegisterAuthenticated(protected)

	dashboard := r.Group("/dashboard", middleware.SessionAuth(sessionsSvc, cfg.Session.CookieName))
	handlers.RegisterHome(r, dashboard, env)
	handlers.RegisterContentResources(dashboard, env)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the pieces this instance was configured with
	// are actually reachable
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{"sessions": sessionsSvc != nil}

		if cfg.Redis.Host != "" {
			ok := redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			deps["redis"] = ok
			if !ok {
				ready = false
			}
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting dashboard on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
