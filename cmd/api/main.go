package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/refdata/refdata-api/internal/config"
	"github.com/refdata/refdata-api/internal/database"
	"github.com/refdata/refdata-api/internal/resource"
	"github.com/refdata/refdata-api/internal/store"
	"github.com/refdata/refdata-api/pkg/logger"
	"github.com/refdata/refdata-api/pkg/metrics"
	"github.com/refdata/refdata-api/pkg/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Sugar.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The Mongo client is opened here and closed on shutdown; handlers only
	// ever see the Store interface. When Mongo is unreachable the service
	// still comes up on the in-memory store so local development works.
	var st store.Store
	var client *mongo.Client
	client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Sugar.Warnf("cannot connect to MongoDB (%v), using in-memory store", err)
		st = store.NewMemoryStore()
	} else {
		logger.Sugar.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
		st = store.NewMongoStore(client.Database(cfg.MongoDB.Database))
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestMetricsMiddleware())
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	resource.RegisterRoutes(r, st)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Sugar.Infof("refdata api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Errorf("server shutdown: %v", err)
	}
	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Sugar.Errorf("mongo disconnect: %v", err)
		}
	}
}
