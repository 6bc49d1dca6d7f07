package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumichat/lumichat/backend/auth-service/handlers"
	"github.com/lumichat/lumichat/backend/auth-service/internal/config"
	"github.com/lumichat/lumichat/backend/auth-service/internal/cookies"
	"github.com/lumichat/lumichat/backend/auth-service/internal/database"
	"github.com/lumichat/lumichat/backend/auth-service/internal/tokens"
	"github.com/lumichat/lumichat/backend/auth-service/internal/users"
	"github.com/lumichat/lumichat/backend/auth-service/pkg/logger"
	"github.com/lumichat/lumichat/backend/auth-service/pkg/metrics"
	"github.com/lumichat/lumichat/backend/auth-service/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		// a missing signing secret must prevent the service from serving
		// traffic at all, never downgrade to a per-request error
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Credential store: Mongo when configured, otherwise the preloaded
	// in-memory set. Both sit behind the same repository interface, and each
	// contributes its own readiness check against the live dependency.
	var repo users.CredentialRepository
	readiness := map[string]handlers.ReadinessCheck{}
	if cfg.MongoDB.URI != "" {
		if client := connectMongoWithRetry(cfg); client != nil {
			defer func() { _ = client.Disconnect(context.Background()) }()
			col := client.Database(cfg.MongoDB.Database).Collection("credentials")
			if err := database.EnsureCredentialIndexes(context.Background(), col); err != nil {
				logger.Warnf("%v", err)
			}
			repo = users.NewMongoCredentialRepository(col)
			readiness["credentials"] = func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			}
			logger.Infof("using MongoDB credential store (db=%s)", cfg.MongoDB.Database)
		}
	}
	if repo == nil {
		creds, err := users.LoadSeed(cfg.Users.File, cfg.Users.Seed)
		if err != nil {
			logger.Fatalf("failed to load credential seed: %v", err)
		}
		mem := users.NewMemoryRepository(creds)
		if mem.Len() == 0 {
			logger.Warn("credential set is empty; every login will fail")
		}
		repo = mem
		readiness["credentials"] = func(context.Context) error {
			if mem.Len() == 0 {
				return errors.New("credential set is empty")
			}
			return nil
		}
		logger.Infof("using in-memory credential store (%d records)", mem.Len())
	}

	// Redis readiness only matters when the limiter depends on it
	if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
		readiness["redis"] = func(ctx context.Context) error {
			if redisClient == nil {
				return errors.New("redis unavailable")
			}
			return redisClient.Ping(ctx).Err()
		}
	}

	usersSvc := users.NewService(repo)
	tokenSvc := tokens.NewService(cfg.Auth.Secret)
	cookieAdapter := cookies.NewAdapter(
		cfg.Cookies.AccessName, cfg.Cookies.RefreshName,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL,
		cfg.Production(),
	)

	// Route-protection gate for page paths; API handlers do their own checks.
	routeTable := middleware.RouteTable{
		Protected:   cfg.Routes.Protected,
		AuthOnly:    cfg.Routes.AuthOnly,
		LoginPath:   cfg.Routes.LoginPath,
		LandingPath: cfg.Routes.LandingPath,
	}
	r.Use(middleware.AuthGate(routeTable, cookieAdapter.AccessName(), tokenSvc))

	// Optional global rate limiter: per-user when authenticated, otherwise
	// per-IP. Registered after the gate so the verified principal is already
	// in the context when the limiter picks its key.
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterHealth(r, startTime, readiness)

	h := handlers.NewAuthHandler(cfg, usersSvc, tokenSvc, cookieAdapter)
	h.Register(r.Group("/"))
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve the built front-end when configured; unknown paths fall back to
	// index.html so client-side routing works. The gate above has already
	// run for these paths.
	if cfg.Server.StaticDir != "" {
		staticDir := cfg.Server.StaticDir
		r.NoRoute(func(c *gin.Context) {
			p := filepath.Join(staticDir, filepath.Clean(c.Request.URL.Path))
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				c.File(p)
				return
			}
			c.File(filepath.Join(staticDir, "index.html"))
		})
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting auth service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// connectMongoWithRetry tolerates startup races against the database
// container. Returns nil when every attempt failed.
func connectMongoWithRetry(cfg *config.Config) *mongo.Client {
	const maxAttempts = 5
	backoff := time.Second
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := database.ConnectMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			return client
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil
}
