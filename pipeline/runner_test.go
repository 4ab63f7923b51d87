package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-scraper/dto"
	"maps-scraper/models"
	"maps-scraper/services"
	"maps-scraper/storage"
	"maps-scraper/utils"
)

type fakeScraper struct {
	outcome *models.ScrapeOutcome
	err     error
	calls   []models.ScrapeRequest
}

func (f *fakeScraper) Scrape(_ context.Context, req models.ScrapeRequest) (*models.ScrapeOutcome, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	// Fresh copies so repeated runs do not share records.
	out := &models.ScrapeResult{SearchTerm: req.SearchTerm, Area: req.AreaName}
	for _, b := range f.outcome.Result.Businesses {
		c := *b
		out.Businesses = append(out.Businesses, &c)
	}
	out.TotalFound = len(out.Businesses)
	return &models.ScrapeOutcome{Result: out, PanelContacts: f.outcome.PanelContacts}, nil
}

type fakeEnricher struct {
	err error
}

func (f fakeEnricher) EnrichBatch(_ context.Context, bs []*models.Business) ([]*models.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Business, len(bs))
	for i, b := range bs {
		c := *b
		if c.Website != "" {
			c.Email = "info@" + c.Website
		}
		out[i] = &c
	}
	return out, nil
}

type memorySink struct {
	written []*models.Business
	err     error
}

func (m *memorySink) Write(bs []*models.Business) error {
	m.written = append(m.written, bs...)
	return m.err
}
func (m *memorySink) Close() error { return nil }

func sampleOutcome() *models.ScrapeOutcome {
	return &models.ScrapeOutcome{
		Result: &models.ScrapeResult{Businesses: []*models.Business{
			{Name: "City Car Rentals", Phone: "0300 1234567", Website: "cityrentals.pk"},
			{Name: "Lahore Rent A Car", Phone: "0321 7654321"},
		}},
		PanelContacts: map[string]models.Contacts{
			"City Car Rentals":  {Email: "panel@cityrentals.pk", Facebook: "https://www.facebook.com/cityrentalslahore"},
			"Lahore Rent A Car": {Email: "bookings@lahorerentacar.pk"},
		},
	}
}

func newRunner(s Scraper, e Enricher, sink storage.BusinessWriter) *Runner {
	logger := utils.NewNopLogger()
	return NewRunner(s, e, sink, services.NewInsightService(logger), 0, logger)
}

func TestRunEnrichesThenFillsFromPanel(t *testing.T) {
	sink := &memorySink{}
	r := newRunner(&fakeScraper{outcome: sampleOutcome()}, fakeEnricher{}, sink)

	res, err := r.Run(context.Background(), models.ScrapeRequest{SearchTerm: "car rental", AreaName: "DHA"})
	require.NoError(t, err)
	require.Len(t, res.Businesses, 2)
	assert.Equal(t, 2, res.TotalFound)

	city := res.Businesses[0]
	assert.Equal(t, "info@cityrentals.pk", city.Email, "website email wins over the panel hint")
	assert.Equal(t, "https://www.facebook.com/cityrentalslahore", city.Facebook)
	assert.Equal(t, "bookings@lahorerentacar.pk", res.Businesses[1].Email)

	assert.Len(t, sink.written, 2)
}

func TestRunSurvivesEnrichmentFailure(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	r := newRunner(&fakeScraper{outcome: sampleOutcome()}, fakeEnricher{err: errors.New("connection refused")}, sink)

	res, err := r.Run(context.Background(), models.ScrapeRequest{SearchTerm: "car rental", AreaName: "DHA"})
	require.NoError(t, err)
	require.Len(t, res.Businesses, 2)
	assert.Equal(t, "panel@cityrentals.pk", res.Businesses[0].Email)
}

func TestRunScrapeError(t *testing.T) {
	r := newRunner(&fakeScraper{err: errors.New("browser crashed")}, nil, nil)
	_, err := r.Run(context.Background(), models.ScrapeRequest{SearchTerm: "x", AreaName: "y"})
	assert.EqualError(t, err, "browser crashed")
}

func TestRunBatch(t *testing.T) {
	lat, lng := 31.4704, 74.4136
	s := &fakeScraper{outcome: sampleOutcome()}
	r := newRunner(s, nil, nil)

	results := r.RunBatch(context.Background(), []dto.BatchLocation{
		{SearchTerm: "car rental", AreaName: "DHA Phase 1", Latitude: &lat, Longitude: &lng},
		{SearchTerm: "car rental", AreaName: "Gulberg"},
		{SearchTerm: "car rental", Latitude: &lat, Longitude: &lng},
		{SearchTerm: "car rental", AreaName: "Johar Town", Latitude: &lat, Longitude: &lng, RadiusKm: 10},
	})
	require.Len(t, results, 4)

	assert.True(t, results[0].Success)
	assert.Equal(t, 2, results[0].Data.TotalFound)
	assert.False(t, results[1].Success)
	assert.Equal(t, "Missing required fields", results[1].Error)
	assert.Equal(t, "Unknown", results[2].Location)
	assert.True(t, results[3].Success)

	require.Len(t, s.calls, 2)
	assert.Equal(t, 10.0, s.calls[1].RadiusKm)
	assert.Equal(t, lat, s.calls[0].Latitude)
}
