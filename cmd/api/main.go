package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"projectdollar/internal/cache"
	"projectdollar/internal/config"
	"projectdollar/internal/exchange"
	"projectdollar/internal/handlers"
	"projectdollar/internal/logger"
	"projectdollar/internal/middleware"
	"projectdollar/internal/provider"
	"projectdollar/internal/scheduler"
	"projectdollar/internal/services"
	"projectdollar/internal/store"
	"projectdollar/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV") == "production")
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the state database
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	st, err := store.New(db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}

	// Market data: cache-fronted quote chain and the exchange rate provider
	quoteClient := &http.Client{Timeout: cfg.QuoteTimeout}
	alpha := provider.NewAlphaVantageSource(quoteClient, cfg.AlphaVantageURL, cfg.AlphaVantageKey)
	yahoo := provider.NewYahooSource(quoteClient, cfg.YahooQuoteURL)

	priceCache := cache.NewPriceCache(cfg.PriceTTL)
	prices := provider.New(priceCache, provider.NewChain(alpha, yahoo), log)

	rates := exchange.New(
		&http.Client{Timeout: cfg.QuoteTimeout},
		cfg.ExchangeRateURL,
		cfg.RateFallback,
		cfg.RateTTL,
		log,
	)

	// Services
	holdingService := services.NewHoldingService(st, alpha, log)
	balanceService := services.NewBalanceService(st, rates, log)
	portfolioService := services.NewPortfolioService(st, prices, rates, log)
	preferencesService := services.NewPreferencesService(st, log)

	// Handlers
	holdingHandler := handlers.NewHoldingHandler(holdingService)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	preferencesHandler := handlers.NewPreferencesHandler(preferencesService)
	marketHandler := handlers.NewMarketHandler(rates, alpha, prices)

	// Custom request validators
	validator.Register()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	holdings := v1.Group("/holdings")
	holdings.GET("", holdingHandler.ListHoldings)
	holdings.POST("", holdingHandler.CreateHolding)
	holdings.GET("/:id", holdingHandler.GetHolding)
	holdings.PUT("/:id", holdingHandler.UpdateHolding)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)

	balances := v1.Group("/balances")
	balances.GET("", balanceHandler.GetBalances)
	balances.GET("/deposits", balanceHandler.ListDeposits)
	balances.POST("/deposits", balanceHandler.Deposit)
	balances.POST("/convert", balanceHandler.Convert)

	portfolio := v1.Group("/portfolio")
	portfolio.GET("/snapshot", portfolioHandler.GetSnapshot)
	portfolio.GET("/history", portfolioHandler.GetHistory)

	v1.GET("/rate", marketHandler.GetRate)
	v1.GET("/quotes/:symbol", marketHandler.GetQuote)
	v1.GET("/symbols/search", marketHandler.SearchSymbols)

	v1.GET("/preferences", preferencesHandler.GetPreferences)
	v1.PUT("/preferences", preferencesHandler.UpdatePreferences)

	// Background price refresh; stopped before the server exits
	refreshTask := scheduler.Every(cfg.PriceRefreshInterval, portfolioService.Refresh)
	defer refreshTask.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Infow("Shutting down")
	refreshTask.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
