package supervisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"maps-scraper/client"
	"maps-scraper/dto"
	"maps-scraper/models"
	"maps-scraper/services"
	"maps-scraper/utils"
)

// SmokeRequest is the scrape issued after start-up when the smoke test is on.
var SmokeRequest = dto.ScrapeRequest{
	SearchTerm: "car rental",
	AreaName:   "DHA Phase 1",
	Latitude:   31.4704,
	Longitude:  74.4136,
	RadiusKm:   5,
	MaxResults: 5,
}

// Options tune the supervisor loop.
type Options struct {
	StartupTimeout time.Duration
	PollInterval   time.Duration
	HealthTimeout  time.Duration
	SmokeTest      bool
	SmokeTimeout   time.Duration
}

func DefaultOptions() Options {
	return Options{
		StartupTimeout: 60 * time.Second,
		PollInterval:   10 * time.Second,
		HealthTimeout:  5 * time.Second,
		SmokeTimeout:   5 * time.Minute,
	}
}

// Supervisor starts the scraper and contact services, watches their health
// and tears both down when either fails or the context ends.
type Supervisor struct {
	services []Service
	start    StartFunc
	opts     Options
	insights *services.InsightService
	out      io.Writer
	logger   *utils.Logger
}

// New returns a supervisor. The first service is the scraper, which the
// smoke test targets.
func New(svcs []Service, start StartFunc, opts Options, insights *services.InsightService, out io.Writer, logger *utils.Logger) *Supervisor {
	return &Supervisor{services: svcs, start: start, opts: opts, insights: insights, out: out, logger: logger}
}

// Run blocks until ctx is cancelled (nil) or a child fails (error).
func (s *Supervisor) Run(ctx context.Context) error {
	var (
		mu    sync.Mutex
		procs []Process
	)
	stopAll := func() {
		mu.Lock()
		defer mu.Unlock()
		var wg sync.WaitGroup
		for _, p := range procs {
			wg.Add(1)
			go func(p Process) {
				defer wg.Done()
				p.Stop()
			}(p)
		}
		wg.Wait()
	}

	for _, svc := range s.services {
		s.logger.Info("[supervisor] Starting %s (%s)", svc.Name, svc.URL)
		p, err := s.start(ctx, svc)
		if err != nil {
			stopAll()
			return err
		}
		mu.Lock()
		procs = append(procs, p)
		mu.Unlock()

		if err := s.waitHealthy(ctx, svc); err != nil {
			stopAll()
			return err
		}
		s.logger.Info("[supervisor] ✅ %s is healthy", svc.Name)
	}

	if s.opts.SmokeTest && len(s.services) > 0 {
		if err := s.smoke(ctx, s.services[0]); err != nil {
			s.logger.Warn("[supervisor] Smoke test failed: %v", err)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range procs {
		svc, p := s.services[i], p
		g.Go(func() error {
			err := p.Wait()
			if gCtx.Err() != nil {
				return nil
			}
			return eris.Errorf("%s exited unexpectedly: %v", svc.Name, err)
		})
	}
	g.Go(func() error {
		return s.monitor(gCtx)
	})
	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("[supervisor] Shutting down services")
		stopAll()
		return nil
	})

	return g.Wait()
}

// monitor polls every service's health until one fails or ctx ends.
func (s *Supervisor) monitor(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		for _, svc := range s.services {
			if err := s.check(ctx, svc); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error("[supervisor] ❌ %s stopped responding: %v", svc.Name, err)
				return eris.Wrapf(err, "%s unhealthy", svc.Name)
			}
		}
	}
}

func (s *Supervisor) waitHealthy(ctx context.Context, svc Service) error {
	deadline := time.Now().Add(s.opts.StartupTimeout)
	for {
		err := s.check(ctx, svc)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return eris.Wrapf(err, "%s did not become healthy within %v", svc.Name, s.opts.StartupTimeout)
		}
		select {
		case <-ctx.Done():
			return eris.Wrapf(ctx.Err(), "waiting for %s", svc.Name)
		case <-time.After(250 * time.Millisecond):
		}
	}
}

func (s *Supervisor) check(ctx context.Context, svc Service) error {
	return client.CheckHealth(ctx, &http.Client{Timeout: s.opts.HealthTimeout}, svc.URL)
}

// smoke runs one small scrape through the scraper service and prints the
// insight report.
func (s *Supervisor) smoke(ctx context.Context, svc Service) error {
	s.logger.Info("[supervisor] 🧪 Smoke test: %s in %s", SmokeRequest.SearchTerm, SmokeRequest.AreaName)

	body, err := json.Marshal(SmokeRequest)
	if err != nil {
		return eris.Wrap(err, "marshal smoke request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(svc.URL, "/")+"/scrape", bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "build smoke request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: s.opts.SmokeTimeout}).Do(req)
	if err != nil {
		return eris.Wrap(err, "smoke scrape")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("smoke scrape returned status %d", resp.StatusCode)
	}

	var out dto.ScrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return eris.Wrap(err, "decode smoke response")
	}
	if !out.Success || out.Data == nil {
		return eris.New("smoke scrape reported failure")
	}

	s.logger.Info("[supervisor] ✅ Smoke test found %d businesses", len(out.Data.Businesses))
	s.printSample(out.Data.Businesses)
	s.insights.Render(s.out, s.insights.Generate(out.Data.Businesses))
	return nil
}

func (s *Supervisor) printSample(businesses []*models.Business) {
	for i, b := range businesses {
		if i == 3 {
			break
		}
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, b.Name)
		fmt.Fprintf(s.out, "     Phone: %s\n", orNA(b.Phone))
		fmt.Fprintf(s.out, "     Website: %s\n", orNA(b.Website))
		fmt.Fprintf(s.out, "     Email: %s\n", orNA(b.Email))
		fmt.Fprintf(s.out, "     Facebook: %s\n", orNA(b.Facebook))
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
