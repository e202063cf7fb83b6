package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketSearch/app/echo-server/router"
	"marketSearch/business/activity"
	"marketSearch/business/catalog"
	"marketSearch/business/embedding"
	"marketSearch/business/keyword"
	"marketSearch/business/personalize"
	"marketSearch/business/rerank"
	"marketSearch/business/search"
	"marketSearch/business/similar"
	"marketSearch/business/simindex"
	"marketSearch/business/trending"
	"marketSearch/internal/middleware"
	psqlRepo "marketSearch/internal/repository/postgres"
	redisRepo "marketSearch/internal/repository/redis"
	"marketSearch/internal/repository/vectorsearch"
	"marketSearch/internal/rest"
	"marketSearch/pkg/config"
	"marketSearch/pkg/database"
	redisdb "marketSearch/pkg/database/redis"
	"marketSearch/pkg/logger"
	"marketSearch/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Market Search", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	historyRepo := psqlRepo.NewUserHistoryRepository(db)
	prefRepo := psqlRepo.NewUserPreferencesRepository(db)

	// Redis result cache is optional; the engine recomputes on miss.
	var resultsCache search.ResultCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without result cache", "error", err)
	} else {
		resultsCache = redisRepo.NewResultsCacheRepository(redisClient, cfg.Engine.TrendingCacheTTL)
	}

	// External vector index is optional as well.
	var vectorRepo search.VectorSearchRepository
	if cfg.VectorSearch.BaseURL != "" {
		vectorRepo = vectorsearch.NewVectorSearchRepository(vectorsearch.Config{
			BaseURL: cfg.VectorSearch.BaseURL,
			APIKey:  cfg.VectorSearch.APIKey,
		})
	}

	// Init engine
	builder := embedding.NewBuilder(embedding.PolynomialHasher{})
	index := simindex.NewIndex()
	keywordMatcher := keyword.NewMatcher(keyword.DefaultConfig())
	reranker := rerank.NewReranker(rerank.DefaultConfig())
	trendingSvc := trending.NewService(productRepo)
	similarScorer := similar.NewScorer(productRepo, similar.DefaultConfig())
	personalizer := personalize.NewScorer(productRepo, historyRepo, prefRepo, trendingSvc, personalize.DefaultConfig())

	searchCfg := search.DefaultConfig()
	searchCfg.MinQueryLength = cfg.Engine.MinQueryLength
	searchCfg.DefaultLimit = cfg.Engine.DefaultLimit
	searchCfg.ExternalTimeout = cfg.Engine.ExternalTimeout
	searchCfg.ScanTimeout = cfg.Engine.ScanTimeout
	searchCfg.ExternalWeight = cfg.Engine.ExternalWeight
	searchCfg.LocalWeight = cfg.Engine.LocalWeight
	searchCfg.TrendingCacheTTL = cfg.Engine.TrendingCacheTTL

	searchService := search.NewService(
		index,
		builder,
		keywordMatcher,
		reranker,
		similarScorer,
		personalizer,
		trendingSvc,
		productRepo,
		vectorRepo,
		resultsCache,
		searchCfg,
	)

	catalogService := catalog.NewService(productRepo)
	activityService := activity.NewService(historyRepo, prefRepo, productRepo)

	// Build the first index snapshot and keep refreshing it in the
	// background. Each refresh swaps in a whole new snapshot.
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	refreshIndex(refreshCtx, index, builder, productRepo, cfg.Engine.ScanTimeout)
	go refreshLoop(refreshCtx, index, builder, productRepo, cfg.Engine.RefreshInterval, cfg.Engine.ScanTimeout)

	// Init handler
	searchHandler := rest.NewSearchHandler(searchService)
	productHandler := rest.NewProductHandler(catalogService)
	activityHandler := rest.NewActivityHandler(activityService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupSearchRoutes(api, searchHandler)
	router.SetupCatalogRoutes(api, productHandler)
	router.SetupActivityRoutes(api, activityHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis shutdown error", "error", err)
		}
	}

	logger.Info("Server stopped")
}

func refreshLoop(
	ctx context.Context,
	index *simindex.Index,
	builder *embedding.Builder,
	productRepo *psqlRepo.ProductRepository,
	interval time.Duration,
	scanTimeout time.Duration,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshIndex(ctx, index, builder, productRepo, scanTimeout)
		}
	}
}

func refreshIndex(
	ctx context.Context,
	index *simindex.Index,
	builder *embedding.Builder,
	productRepo *psqlRepo.ProductRepository,
	scanTimeout time.Duration,
) {
	scanCtx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	products, err := productRepo.FindAll(scanCtx)
	if err != nil {
		logger.Error("Catalog refresh failed", "error", err)
		return
	}

	index.Rebuild(products, builder)
	logger.Info("Catalog snapshot refreshed", "products", len(products))
}
