package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"maps-scraper/api"
	"maps-scraper/api/controllers"
	"maps-scraper/client"
	"maps-scraper/config"
	"maps-scraper/extract"
	"maps-scraper/fetch"
	"maps-scraper/pipeline"
	"maps-scraper/scraper/gmaps"
	"maps-scraper/services"
	"maps-scraper/storage"
	"maps-scraper/supervisor"
	"maps-scraper/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	mode := flag.String("mode", "launcher", "scraper | contact | launcher")
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewLogger()
	if cfg.Debug {
		logger = utils.NewDebugLogger()
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch *mode {
	case "scraper":
		err = runScraper(ctx, cfg, logger)
	case "contact":
		err = runContact(ctx, cfg, logger)
	case "launcher":
		err = runLauncher(ctx, cfg, logger)
	default:
		err = eris.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Error("%s exited: %v", *mode, err)
		logger.Sync()
		os.Exit(1)
	}
}

func runScraper(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Maps Scraper service starting on :%s ===", cfg.ScraperPort)
	logger.Info("Config | scrolls: %d | zoom: %d | headless: %v | contact service: %s",
		cfg.ScrollAttempts, cfg.DefaultZoom, cfg.Headless, cfg.ContactServerURL)

	emails := extract.NewEmailValidator()
	socials := extract.NewSocialClassifier()

	browser := gmaps.NewBrowser(cfg, logger)
	defer browser.Close()

	scraper := gmaps.New(cfg, browser,
		services.NewBuilder(cfg.DefaultCategory, emails, socials, logger),
		services.NewDeduplicator(logger),
		logger,
	)

	insights := services.NewInsightService(logger)
	sink := openSinks(ctx, cfg, insights, logger)
	defer sink.Close()

	runner := pipeline.NewRunner(
		scraper,
		client.NewContactClient(cfg.ContactServerURL, cfg.EnrichHopTimeout).
			WithBudget(cfg.WebsiteTimeout+time.Duration(cfg.MaxContactPages)*cfg.ContactPageTimeout, cfg.EnrichWorkers),
		sink,
		insights,
		cfg.LocationDelay,
		logger,
	)

	router := api.NewScraperRouter(controllers.NewScrapeController(runner, scraper, logger), logger)
	return serve(ctx, ":"+cfg.ScraperPort, router, logger)
}

func runContact(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Contact Details service starting on :%s ===", cfg.ContactPort)

	var fetcher fetch.Fetcher = fetch.NewCollyFetcher(cfg.UserAgentRotation)
	if cfg.FirecrawlAPIKey != "" {
		fc, err := fetch.NewFirecrawlFetcher(cfg.FirecrawlAPIKey, cfg.FirecrawlAPIURL)
		if err != nil {
			return err
		}
		fetcher = fc
		logger.Info("[contact] Fetching websites through Firecrawl")
	}

	var mx services.MXChecker
	if cfg.VerifyEmailMX {
		mx = services.NewDNSMXChecker(5 * time.Second)
	}

	opts := services.DefaultEnricherOptions()
	opts.WebsiteTimeout = cfg.WebsiteTimeout
	opts.ContactPageTimeout = cfg.ContactPageTimeout
	opts.MaxContactPages = cfg.MaxContactPages

	enricher := services.NewContactEnricher(fetcher, extract.NewEmailValidator(), extract.NewSocialClassifier(), mx, opts, logger)
	batch := services.NewBatchEnricher(enricher, cfg.EnrichWorkers, cfg.EnrichRateLimitMs, logger)

	router := api.NewContactRouter(controllers.NewContactController(batch, enricher, logger), logger)
	return serve(ctx, ":"+cfg.ContactPort, router, logger)
}

func runLauncher(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("🚀 Maps Scraper - dual service launcher")

	self, err := os.Executable()
	if err != nil {
		return eris.Wrap(err, "locate executable")
	}

	opts := supervisor.DefaultOptions()
	opts.SmokeTest = cfg.SmokeTest

	sup := supervisor.New(
		[]supervisor.Service{
			{Name: "Main Scraper Server", Mode: "scraper", URL: "http://127.0.0.1:" + cfg.ScraperPort},
			{Name: "Contact Details Server", Mode: "contact", URL: cfg.ContactServerURL},
		},
		supervisor.ExecStarter(self),
		opts,
		services.NewInsightService(logger),
		os.Stdout,
		logger,
	)
	return sup.Run(ctx)
}

// openSinks opens every configured storage backend. A backend that cannot be
// opened is logged and skipped.
func openSinks(ctx context.Context, cfg *config.Config, insights *services.InsightService, logger *utils.Logger) *storage.MultiWriter {
	var writers []storage.BusinessWriter

	if cfg.CSVOutputPath != "" {
		if w, err := storage.NewCSVWriter(cfg.CSVOutputPath); err != nil {
			logger.Warn("[storage] CSV disabled: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	if cfg.XLSXOutputPath != "" {
		if w, err := storage.NewXLSXWriter(cfg.XLSXOutputPath); err != nil {
			logger.Warn("[storage] XLSX disabled: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	if cfg.DuckDBPath != "" {
		if w, err := storage.NewDuckDBWriter(ctx, cfg.DuckDBPath); err != nil {
			logger.Warn("[storage] DuckDB disabled: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	if cfg.PostgresEnabled {
		if w, err := storage.NewPostgresWriter(cfg.DSN()); err != nil {
			logger.Warn("[storage] PostgreSQL disabled: %v", err)
		} else {
			writers = append(writers, w)
			reportStored(w, insights, logger)
		}
	}

	sink := storage.NewMultiWriter(writers...)
	logger.Info("[storage] %d backend(s) active", sink.Len())
	return sink
}

// reportStored logs a summary of the businesses already in PostgreSQL.
func reportStored(pg *storage.PostgresWriter, insights *services.InsightService, logger *utils.Logger) {
	stored, err := pg.FetchAll()
	if err != nil {
		logger.Warn("[storage] Could not read stored businesses: %v", err)
		return
	}
	if len(stored) == 0 {
		return
	}
	logger.Info("[storage] %d businesses already stored | %s", len(stored), insights.Summary(insights.Generate(stored)))
}

// serve runs handler until ctx ends, then drains in-flight requests.
func serve(ctx context.Context, addr string, handler http.Handler, logger *utils.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[http] Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return eris.Wrapf(err, "listen %s", addr)
	case <-ctx.Done():
	}

	logger.Info("[http] Shutting down %s", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
