package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listingpilot/internal/adapters/history"
	"listingpilot/internal/adapters/llm"
	"listingpilot/internal/adapters/quota"
	"listingpilot/internal/adapters/scraper"
	"listingpilot/internal/adapters/vision"
	"listingpilot/internal/adapters/web"
	"listingpilot/internal/config"
	"listingpilot/internal/observability"
	"listingpilot/internal/rules"
	"listingpilot/internal/usecases"
	"listingpilot/pkg/log"
	"listingpilot/pkg/log/transporters"
)

const (
	extractorReloadInterval = 30 * time.Second
	browserMaxTabs          = 4
	shutdownTimeout         = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel, transporters.ForFormat(cfg.LogFormat, os.Stdout))
	log.SetDefault(logger)

	if err := run(cfg); err != nil {
		log.GlobalError("server stopped", "error", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.OTelEndpoint, cfg.OTelServiceName)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer closeWithTimeout("tracing", shutdownTracing)

	table := rules.Default()
	if cfg.RulesFile != "" {
		if table, err = rules.Load(cfg.RulesFile); err != nil {
			return fmt.Errorf("load platform rules: %w", err)
		}
		log.GlobalInfo("platform rules loaded", "path", cfg.RulesFile)
	}

	if cfg.OpenAIAPIKey == "" {
		log.GlobalWarn("OPENAI_API_KEY is not set; optimize requests will fail upstream")
	}
	generator := llm.NewOpenAIGenerator(llm.Config{
		APIKey:       cfg.OpenAIAPIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		Model:        cfg.OpenAIModel,
		RateLimitRPS: cfg.LLMRateLimitRPS,
	})

	extractors, err := scraper.LoadExtractors(cfg.ExtractorsFile)
	if err != nil {
		return fmt.Errorf("load extractors: %w", err)
	}
	go extractors.Watch(ctx, extractorReloadInterval)

	var fetcher scraper.Fetcher
	if cfg.ScraperMode == config.ScraperModeBrowser {
		pool, err := scraper.NewBrowserPool(scraper.BrowserOptions{ExecPath: cfg.ChromePath, MaxTabs: browserMaxTabs})
		if err != nil {
			return fmt.Errorf("start browser: %w", err)
		}
		defer pool.Close()
		fetcher = scraper.NewBrowserFetcher(pool, cfg.ScraperTimeout)
	} else {
		fetcher = scraper.NewHTTPFetcher(cfg.ScraperTimeout)
	}

	checks := map[string]web.HealthCheck{}

	var counter usecases.UsageCounter
	if cfg.RedisAddr != "" {
		rc := quota.NewRedisCounter(quota.RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rc.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			return err
		}
		checks["redis"] = rc.Ping
		counter = rc
		log.GlobalInfo("usage counter ready", "backend", "redis", "addr", cfg.RedisAddr)
	} else {
		mc := quota.NewMemoryCounter(time.Minute)
		defer mc.Close()
		counter = mc
		log.GlobalWarn("REDIS_ADDR is not set; usage is counted in memory and lost on restart")
	}

	var (
		store     usecases.HistoryStore
		historyUC *usecases.ListHistoryUseCase
	)
	if cfg.MongoURI != "" {
		ms, err := history.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		defer closeWithTimeout("history store", ms.Close)
		checks["mongo"] = ms.Ping
		store = ms
		historyUC = usecases.NewListHistoryUseCase(ms)
		log.GlobalInfo("history store ready", "database", cfg.MongoDatabase)
	} else {
		log.GlobalWarn("MONGO_URI is not set; optimization history is disabled")
	}

	generate := usecases.NewGenerateListingUseCase(generator, table, usecases.GenerateOptions{
		MaxRetries:       cfg.LLMMaxRetries,
		BaseDelay:        cfg.LLMRetryBaseDelay,
		AttemptTimeout:   cfg.LLMTimeout,
		ValidateResponse: cfg.ValidateResponse,
		MaxPayloadBytes:  cfg.MaxPayloadBytes,
	})
	quotaUC := usecases.NewQuotaUseCase(counter, cfg)

	handlers := web.NewHandlers(web.Dependencies{
		Optimize:       usecases.NewOptimizeListingUseCase(generate, quotaUC, store),
		Scrape:         usecases.NewScrapeListingUseCase(scraper.NewMarketplaceScraper(fetcher, extractors), table),
		AnalyzeImage:   usecases.NewAnalyzeImageUseCase(vision.NewHeuristicAnalyzer()),
		Score:          usecases.NewScoreListingUseCase(table),
		History:        historyUC,
		Quota:          quotaUC,
		Rules:          table,
		RequestTimeout: cfg.RequestTimeout,
		ScrapeTimeout:  cfg.ScraperTimeout,
		HealthChecks:   checks,
	})
	limiter := web.NewRateLimiter(cfg.ScrapeRateLimit, time.Minute)
	defer limiter.Stop()

	app := web.NewApp(handlers, limiter)

	errCh := make(chan error, 1)
	go func() {
		log.GlobalInfo("starting ListingPilot", "port", cfg.Port, "scraper_mode", cfg.ScraperMode, "model", generator.Model())
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.GlobalInfo("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// closeWithTimeout runs a shutdown hook under its own deadline and logs a
// failure.
func closeWithTimeout(component string, closeFn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := closeFn(ctx); err != nil {
		log.GlobalWarn("shutdown failed", "component", component, "error", err)
	}
}
