package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"positions_tracker/internal/app/provider"
	"positions_tracker/internal/app/service"
	"positions_tracker/internal/config"
	"positions_tracker/internal/domain/entity"
	"positions_tracker/internal/infrastructure/httpclient"
	"positions_tracker/internal/infrastructure/restapi"
	"positions_tracker/internal/pkg/logger"
	"positions_tracker/internal/pkg/metrics"
	"positions_tracker/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

const prewarmTimeout = 5 * time.Minute

func main() {
	// logrus backs the config loader; zap backs everything else, bridged
	// into slog for the port.Logger adapter.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core())
	logger.InitWithHandler(slogHandler)

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	portLogger := logger.NewSlogAdapter()

	backendTimeout := time.Duration(cfg.Backend.RequestTimeoutMillis) * time.Millisecond
	positionsClient := httpclient.NewPositionsClient(
		cfg.Backend.BaseURL,
		backendTimeout,
		cfg.Backend.RateLimitPerSecond,
		cfg.Backend.RateLimitBurst,
		zapLogger,
	)
	zapLogger.Info("Positions backend client initialized", zap.String("baseURL", cfg.Backend.BaseURL))

	converter := service.NewFixedRateConverter(cfg.Currency.Rates, portLogger)

	store := service.NewPositionsStore(
		positionsClient,
		converter,
		portLogger,
		time.Duration(cfg.Cache.CacheTimeMinutes)*time.Minute,
		time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
	)
	zapLogger.Info("Positions store initialized",
		zap.Int("cacheTimeMinutes", cfg.Cache.CacheTimeMinutes))

	// Warm the cache for tracked wallets so first queries hit a snapshot.
	if cfg.Wallets.Prewarm {
		walletProvider := provider.NewWalletProvider(cfg.Wallets.File, portLogger)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), prewarmTimeout)
			defer cancel()

			wallets, err := walletProvider.GetWallets()
			if err != nil {
				zapLogger.Warn("Failed to load tracked wallets for prewarm", zap.Error(err))
				return
			}
			for _, w := range wallets {
				params := entity.FetchParams{Address: w.Address, Currency: cfg.Positions.DefaultCurrency}
				if _, err := store.Fetch(ctx, params, false); err != nil {
					zapLogger.Warn("Prewarm fetch failed", zap.String("address", w.Address), zap.Error(err))
				}
			}
			zapLogger.Info("Positions cache prewarm completed", zap.Int("wallets", len(wallets)))
		}()
	}

	positionsHandler := restapi.NewPositionsHandler(store, cfg)
	router := restapi.SetupRouter(positionsHandler, zapLogger)

	// Pprof endpoints (for debugging performance issues). Protect these in a
	// production environment.
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
