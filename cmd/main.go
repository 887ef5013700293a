package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/microservices-console/config"
	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/container"
	"github.com/oksasatya/microservices-console/internal/interface/middleware"
	"github.com/oksasatya/microservices-console/internal/interface/view"
	"github.com/oksasatya/microservices-console/internal/router"
	"github.com/oksasatya/microservices-console/pkg/helpers"
	"github.com/oksasatya/microservices-console/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %s", validation.Summary(err))
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Redis (optional)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			helpers.LogError(logger, "redis unreachable; rate limiting and status snapshot fail open", err, logrus.Fields{"addr": cfg.RedisAddr})
		}
	}

	// RabbitMQ (optional)
	var pub *helpers.RabbitPublisher
	if cfg.RabbitMQURL != "" {
		p, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; mutation events disabled", err, nil)
		} else {
			pub = p
			defer pub.Close()
		}
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetRabbitPub(pub)
	container.SetRenderer(renderer)
	container.SetStatusBoard(application.NewStatusBoard())

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	// Background work: status poller and session sweeper
	checker := container.GetHealthChecker()
	checker.RestoreSnapshot(ctx)
	go application.NewHealthPoller(checker, cfg.HealthInterval, logger).Run(ctx)
	go container.GetSessions().Run(ctx, max(cfg.SessionIdleTTL/2, time.Second))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		helpers.LogInfo(logger, "server starting", logrus.Fields{
			"port":        cfg.Port,
			"user_api":    cfg.UserAPI,
			"product_api": cfg.ProductAPI,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	stop()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
