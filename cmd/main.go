package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/config"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/logger"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/monitoring"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/server"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/session"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort > 0 {
		cfg.Metrics.Port = *metricsPort
	}

	appLog := logger.New(cfg.Log, os.Stdout)

	store := session.NewMemoryStore(10 * time.Minute)
	defer store.Close()

	collector := monitoring.NewCollector()

	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	srv := server.New(store, collector, appLog, cfg.Thresholds, ttl)

	if cfg.Metrics.Enabled {
		go startMetricsServer(collector, cfg.Metrics.Port, cfg.Metrics.Path, appLog)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		appLog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLog.Error("server shutdown", "error", err)
		}
	}()

	appLog.Info("starting API server", "port", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(collector *monitoring.Collector, port int, path string, appLog *logger.Logger) {
	gin.SetMode(gin.ReleaseMode)
	metricsRouter := gin.New()
	metricsRouter.GET(path, gin.WrapH(collector.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	appLog.Info("starting metrics server", "port", port, "path", path)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		appLog.Error("metrics server", "error", err)
	}
}
