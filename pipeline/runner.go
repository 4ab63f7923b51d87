package pipeline

import (
	"context"
	"time"

	"maps-scraper/dto"
	"maps-scraper/models"
	"maps-scraper/services"
	"maps-scraper/storage"
	"maps-scraper/utils"
)

// Scraper produces businesses for one location.
type Scraper interface {
	Scrape(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeOutcome, error)
}

// Enricher fills contact fields for a batch.
type Enricher interface {
	EnrichBatch(ctx context.Context, businesses []*models.Business) ([]*models.Business, error)
}

// Runner drives scrape → enrich → hint fill → persist for the scraper
// service.
type Runner struct {
	scraper       Scraper
	enricher      Enricher
	sink          storage.BusinessWriter
	insights      *services.InsightService
	locationDelay time.Duration
	logger        *utils.Logger
}

// NewRunner wires a runner. enricher and sink may be nil.
func NewRunner(scraper Scraper, enricher Enricher, sink storage.BusinessWriter, insights *services.InsightService,
	locationDelay time.Duration, logger *utils.Logger) *Runner {
	return &Runner{
		scraper:       scraper,
		enricher:      enricher,
		sink:          sink,
		insights:      insights,
		locationDelay: locationDelay,
		logger:        logger,
	}
}

// Run scrapes one location. Enrichment or persistence failures are logged
// and the un-enriched result is still returned.
func (r *Runner) Run(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeResult, error) {
	outcome, err := r.scraper.Scrape(ctx, req)
	if err != nil {
		return nil, err
	}
	result := outcome.Result

	businesses := result.Businesses
	if len(businesses) > 0 && r.enricher != nil {
		enriched, err := r.enricher.EnrichBatch(ctx, businesses)
		if err != nil {
			r.logger.Warn("[pipeline] Contact enrichment unavailable, returning businesses without it: %v", err)
		} else {
			businesses = enriched
		}
	}

	filled := 0
	for i, b := range businesses {
		hint, ok := outcome.PanelContacts[b.Name]
		if !ok {
			continue
		}
		merged := services.MergeContacts(b, hint)
		if *merged != *b {
			filled++
		}
		businesses[i] = merged
	}
	if filled > 0 {
		r.logger.Debug("[pipeline] Filled contact gaps from the detail panel for %d businesses", filled)
	}

	result.Businesses = businesses
	result.TotalFound = len(businesses)

	if r.sink != nil && len(businesses) > 0 {
		if err := r.sink.Write(businesses); err != nil {
			r.logger.Warn("[pipeline] Persisting %d businesses failed: %v", len(businesses), err)
		}
	}

	if r.insights != nil {
		r.logger.Info("[pipeline] %s in %s | %s", req.SearchTerm, req.AreaName,
			r.insights.Summary(r.insights.Generate(businesses)))
	}
	return result, nil
}

// RunBatch scrapes locations in order, pausing between them. Each location
// gets its own entry; incomplete locations are reported as failures without
// scraping.
func (r *Runner) RunBatch(ctx context.Context, locations []dto.BatchLocation) []dto.LocationResult {
	results := make([]dto.LocationResult, 0, len(locations))
	for i, loc := range locations {
		name := loc.AreaName
		if name == "" {
			name = "Unknown"
		}
		if !loc.Complete() {
			results = append(results, dto.LocationResult{Location: name, Error: "Missing required fields"})
			continue
		}
		if err := ctx.Err(); err != nil {
			results = append(results, dto.LocationResult{Location: name, Error: err.Error()})
			continue
		}

		res, err := r.Run(ctx, loc.Model())
		if err != nil {
			r.logger.Error("[pipeline] Scraping %s failed: %v", name, err)
			results = append(results, dto.LocationResult{Location: name, Error: err.Error()})
		} else {
			results = append(results, dto.LocationResult{Location: name, Success: true, Data: res})
		}

		if i < len(locations)-1 && r.locationDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.locationDelay):
			}
		}
	}
	return results
}
