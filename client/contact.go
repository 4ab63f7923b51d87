package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"maps-scraper/dto"
	"maps-scraper/models"
)

// batchSlack covers request encoding and the response round trip.
const batchSlack = 10 * time.Second

// ContactClient calls the contact-details service.
type ContactClient struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	perBusiness time.Duration
	workers     int
}

// NewContactClient returns a client for the service at baseURL. timeout
// bounds health checks and is the floor for an enrichment batch.
func NewContactClient(baseURL string, timeout time.Duration) *ContactClient {
	return &ContactClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// WithBudget lets EnrichBatch wait as long as the contact service may need:
// perBusiness is the worst case for one website, workers the service's
// parallel slots.
func (c *ContactClient) WithBudget(perBusiness time.Duration, workers int) *ContactClient {
	c.perBusiness = perBusiness
	c.workers = workers
	return c
}

// BatchTimeout is the worst-case time to enrich n businesses on workers
// slots when each takes at most perBusiness.
func BatchTimeout(n, workers int, perBusiness time.Duration) time.Duration {
	if workers < 1 {
		workers = 1
	}
	rounds := (n + workers - 1) / workers
	return time.Duration(rounds)*perBusiness + batchSlack
}

func (c *ContactClient) batchTimeout(n int) time.Duration {
	if c.perBusiness <= 0 {
		return c.timeout
	}
	return max(c.timeout, BatchTimeout(n, c.workers, c.perBusiness))
}

// EnrichBatch sends businesses to POST /enrich and returns the enriched
// records.
func (c *ContactClient) EnrichBatch(ctx context.Context, businesses []*models.Business) ([]*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, c.batchTimeout(len(businesses)))
	defer cancel()

	body, err := json.Marshal(dto.EnrichRequest{Businesses: businesses})
	if err != nil {
		return nil, eris.Wrap(err, "marshal enrich request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enrich", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "build enrich request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "contact service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("contact service returned status %d", resp.StatusCode)
	}

	var out dto.EnrichResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, eris.Wrap(err, "decode enrich response")
	}
	if !out.Success {
		return nil, eris.New("contact service reported failure")
	}
	return out.Businesses, nil
}

// CheckHealth returns nil when GET /health answers 200.
func (c *ContactClient) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return CheckHealth(ctx, c.httpClient, c.baseURL)
}

// CheckHealth probes GET baseURL/health.
func CheckHealth(ctx context.Context, httpClient *http.Client, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/health", nil)
	if err != nil {
		return eris.Wrap(err, "build health request")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return eris.Wrapf(err, "health check %s", baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("health check %s: status %d", baseURL, resp.StatusCode)
	}
	return nil
}
