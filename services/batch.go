package services

import (
	"context"
	"sync"

	"maps-scraper/models"
	"maps-scraper/utils"
)

// BusinessEnricher enriches one business.
type BusinessEnricher interface {
	EnrichBusiness(ctx context.Context, b *models.Business) *models.Business
}

// BatchEnricher fans a batch out over a bounded worker pool.
type BatchEnricher struct {
	enricher    BusinessEnricher
	workers     int
	rateLimitMs int
	logger      *utils.Logger
}

func NewBatchEnricher(enricher BusinessEnricher, workers, rateLimitMs int, logger *utils.Logger) *BatchEnricher {
	return &BatchEnricher{enricher: enricher, workers: workers, rateLimitMs: rateLimitMs, logger: logger}
}

// EnrichAll returns every input exactly once, in completion order. A record
// whose enrichment panics comes back unchanged.
func (b *BatchEnricher) EnrichAll(ctx context.Context, businesses []*models.Business) []*models.Business {
	pool := utils.NewWorkerPool(b.workers, b.rateLimitMs)

	var (
		mu  sync.Mutex
		out = make([]*models.Business, 0, len(businesses))
	)
	collect := func(r *models.Business) {
		mu.Lock()
		out = append(out, r)
		mu.Unlock()
	}

	for _, biz := range businesses {
		biz := biz
		pool.Submit(func() {
			result := biz
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("[batch] Enrichment of %q panicked: %v", biz.Name, r)
					result = biz
				}
				collect(result)
			}()
			if ctx.Err() == nil {
				if enriched := b.enricher.EnrichBusiness(ctx, biz); enriched != nil {
					result = enriched
				}
			}
		})
	}
	pool.Wait()

	b.logger.Info("[batch] Enriched %d businesses", len(out))
	return out
}
