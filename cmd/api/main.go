package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rosterdesk/internal/catalog"
	"rosterdesk/internal/config"
	"rosterdesk/internal/dashboard"
	"rosterdesk/internal/handler"
	"rosterdesk/internal/httpmiddleware"
	"rosterdesk/internal/metrics"
	"rosterdesk/internal/queue"
	"rosterdesk/internal/roster"
	"rosterdesk/internal/showcase"
	"rosterdesk/internal/store"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, db, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	var (
		q           queue.Queue
		redisClient *store.Redis
	)
	if cfg.QueueBackend == config.BackendRedis {
		redisClient = store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
		q = queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)
	} else {
		q = queue.NewInMemory(256)
	}

	svc := dashboard.NewService(roster.NewStore(repo), q, metrics.New(prometheus.DefaultRegisterer))
	seed(ctx, svc, cfg.SeedPath)

	// in-process consumer so the memory queue never fills up
	if mem, ok := q.(*queue.InMemory); ok {
		msgs, err := mem.Consume(ctx)
		if err != nil {
			return err
		}
		go dashboard.Audit(ctx, msgs, svc)
	}

	clock := dashboard.NewClock(cfg.ClockTick)
	go clock.Run(ctx)

	fixtures, err := showcase.Load(cfg.FixturesPath)
	if err != nil {
		return err
	}

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Custom logger
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Security headers
	r.Use(securityHeaders())

	// Rate limiting
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		body := gin.H{"status": "ok", "store": cfg.StoreBackend, "queue": cfg.QueueBackend}
		healthy := true
		if db != nil {
			dbHealthy := db.Healthy(c.Request.Context())
			body["db"] = dbHealthy
			healthy = healthy && dbHealthy
		}
		if redisClient != nil {
			redisHealthy := redisClient.Healthy(c.Request.Context())
			body["redis"] = redisHealthy
			healthy = healthy && redisHealthy
		}
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		c.JSON(status, body)
	})

	handler.New(svc, clock, catalog.New(catalog.DefaultRows()), fixtures, showcase.NewBoard(fixtures.Dedications)).Register(r)

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on :%s (store=%s, queue=%s)", cfg.HTTPPort, cfg.StoreBackend, cfg.QueueBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// openRepository returns the roster backend; db is nil for the memory store.
func openRepository(ctx context.Context, cfg config.App) (roster.Repository, *store.DB, error) {
	if cfg.StoreBackend == config.BackendMemory {
		return roster.NewMemoryRepository(), nil, nil
	}
	db, err := store.NewDB(ctx, cfg.StoreBackend, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	repo := roster.NewSQLRepository(db.Client)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, db, nil
}

func seed(ctx context.Context, svc *dashboard.Service, path string) {
	if path == "" {
		return
	}
	records, err := roster.LoadSeedFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("seed file %s not found, starting with an empty roster", path)
		return
	}
	if err != nil {
		log.Printf("warning: seed skipped: %v", err)
		return
	}
	n, err := svc.Seed(ctx, records)
	if err != nil {
		log.Printf("warning: seed stopped after %d records: %v", n, err)
		return
	}
	if n > 0 {
		log.Printf("seeded %d students from %s", n, path)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       24 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
