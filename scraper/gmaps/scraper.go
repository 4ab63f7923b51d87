package gmaps

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rotisserie/eris"

	"maps-scraper/config"
	"maps-scraper/models"
	"maps-scraper/services"
	"maps-scraper/utils"
)

const (
	defaultRadiusKm   = 5
	defaultMaxResults = 30
	altScrollAfter    = 5
	maxIdleScrolls    = 10
)

// Detail is what the place panel shows after clicking a card.
type Detail struct {
	Website string        `json:"website"`
	Address string        `json:"address"`
	Email   string        `json:"email"`
	Links   []models.Link `json:"links"`
}

// Session is one open map page.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Scroll(ctx context.Context) error
	AltScroll(ctx context.Context) error
	CountCards(ctx context.Context) (int, error)
	EndOfList(ctx context.Context) (bool, error)
	Cards(ctx context.Context) ([]*models.RawListing, error)
	OpenDetail(ctx context.Context, index int) (*Detail, error)
	Close()
}

// Opener hands out sessions and can recycle the underlying browser.
type Opener interface {
	NewSession(ctx context.Context) (Session, error)
	Restart() error
}

// Scraper runs map searches. Scrapes are serialized: concurrent callers
// queue on the browser.
type Scraper struct {
	cfg     *config.Config
	opener  Opener
	builder *services.Builder
	deduper *services.Deduplicator
	retry   *utils.RetryConfig
	logger  *utils.Logger

	mu sync.Mutex
}

func New(cfg *config.Config, opener Opener, builder *services.Builder, deduper *services.Deduplicator, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		opener:  opener,
		builder: builder,
		deduper: deduper,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Scrape searches one location and returns validated, deduplicated
// businesses together with the detail-panel contact hints.
func (s *Scraper) Scrape(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeOutcome, error) {
	if req.RadiusKm <= 0 {
		req.RadiusKm = defaultRadiusKm
	}
	if req.MaxResults <= 0 {
		req.MaxResults = defaultMaxResults
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	searchURL := BuildSearchURL(req.SearchTerm, req.Latitude, req.Longitude, req.RadiusKm, s.cfg.DefaultZoom)
	s.logger.Info("[gmaps] Scraping %q in %s | %s", req.SearchTerm, req.AreaName, searchURL)

	session, err := s.opener.NewSession(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "open session")
	}
	defer session.Close()

	if err := s.retry.Do(ctx, "navigate", func() error {
		return session.Navigate(ctx, searchURL)
	}); err != nil {
		return nil, err
	}

	if err := s.scrollAll(ctx, session, req.MaxResults); err != nil {
		return nil, err
	}

	cards, err := session.Cards(ctx)
	if err != nil {
		return nil, err
	}
	cards = uniqueCards(cards, req.MaxResults)
	s.logger.Info("[gmaps] %d unique cards to process", len(cards))

	for _, card := range cards {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "scrape cancelled")
		}
		d, err := session.OpenDetail(ctx, card.Index)
		if err != nil {
			s.logger.Warn("[gmaps] Could not open %q: %v", card.DOMName, err)
			continue
		}
		card.Website = d.Website
		card.DetailAddress = d.Address
		card.DetailEmail = d.Email
		card.DetailLinks = d.Links
	}

	now := time.Now()
	prov := models.Provenance{
		SearchTerm:  req.SearchTerm,
		Area:        req.AreaName,
		Coordinates: Coordinates(req.Latitude, req.Longitude),
		ScrapedDate: now.Format("2006-01-02 15:04:05"),
	}

	built := make([]*models.Business, 0, len(cards))
	hints := make(map[string]models.Contacts)
	for _, card := range cards {
		biz, ok := s.builder.Build(card, prov)
		if !ok {
			continue
		}
		built = append(built, biz)
		if c := s.builder.PanelContacts(card); c.HasAny() {
			if _, seen := hints[biz.Name]; !seen {
				hints[biz.Name] = c
			}
		}
	}
	businesses := s.deduper.Dedupe(built)

	s.logger.Info("[gmaps] %q in %s: %d cards → %d valid → %d unique",
		req.SearchTerm, req.AreaName, len(cards), len(built), len(businesses))

	return &models.ScrapeOutcome{
		Result: &models.ScrapeResult{
			Businesses:  businesses,
			TotalFound:  len(businesses),
			SearchTerm:  req.SearchTerm,
			Area:        req.AreaName,
			Coordinates: prov.Coordinates,
			ScrapedAt:   now.Format(time.RFC3339),
		},
		PanelContacts: hints,
	}, nil
}

// scrollAll scrolls the result list until the end marker shows, enough cards
// are loaded, or scrolling stops producing new cards.
func (s *Scraper) scrollAll(ctx context.Context, session Session, maxResults int) error {
	last, idle := 0, 0
	for attempt := 1; attempt <= s.cfg.ScrollAttempts*3; attempt++ {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "scroll cancelled")
		}
		if err := session.Scroll(ctx); err != nil {
			s.logger.Debug("[gmaps] Scroll %d failed: %v", attempt, err)
		}
		count, err := session.CountCards(ctx)
		if err != nil {
			s.logger.Debug("[gmaps] Card count failed: %v", err)
		}
		s.logger.Debug("[gmaps] Scroll %d: %d cards", attempt, count)

		if end, _ := session.EndOfList(ctx); end {
			s.logger.Info("[gmaps] Reached end of list after %d scrolls", attempt)
			return nil
		}
		if count >= maxResults*2 {
			return nil
		}

		if count > last {
			last, idle = count, 0
			continue
		}
		idle++
		if idle >= altScrollAfter {
			_ = session.AltScroll(ctx)
			if n, err := session.CountCards(ctx); err == nil && n > count {
				s.logger.Debug("[gmaps] Alternative scroll loaded %d cards", n)
				last, idle = n, 0
				continue
			}
		}
		if idle >= maxIdleScrolls {
			s.logger.Info("[gmaps] No new cards after %d scrolls, stopping", idle)
			return nil
		}
	}
	return nil
}

// uniqueCards drops cards whose name repeats an earlier one, comparing
// lowercase alphanumerics only, and keeps at most limit cards.
func uniqueCards(cards []*models.RawListing, limit int) []*models.RawListing {
	seen := utils.NewStringSet()
	out := make([]*models.RawListing, 0, len(cards))
	for _, c := range cards {
		if len(out) >= limit {
			break
		}
		key := nameKey(c.DOMName)
		if key == "" {
			key = nameKey(firstLine(c.Text))
		}
		if key == "" || !seen.Add(key) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func nameKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// RestartBrowser recycles the browser once the current scrape finishes.
func (s *Scraper) RestartBrowser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opener.Restart()
}
