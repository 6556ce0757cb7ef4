package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/collageapp/internal/api"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/logging"
	"github.com/youruser/collageapp/internal/preview"
)

func main() {
	configPath := flag.String("config", os.Getenv("COLLAGE_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(logging.Options{Development: cfg.Development, File: cfg.LogFile})
	defer logger.Sync()

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	cache, err := preview.New(cfg.CacheSize)
	if err != nil {
		logger.Fatal("create preview cache", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(api.NewHandler(cfg, logger, cache)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
