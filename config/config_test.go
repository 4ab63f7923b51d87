package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCRAPER_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("ENRICH_WORKERS", "")

	cfg := Load()

	if cfg.ScraperPort != "5000" {
		t.Errorf("ScraperPort: got %q, want %q", cfg.ScraperPort, "5000")
	}
	if cfg.ContactPort != "5001" {
		t.Errorf("ContactPort: got %q, want %q", cfg.ContactPort, "5001")
	}
	if cfg.EnrichWorkers != 5 {
		t.Errorf("EnrichWorkers: got %d, want 5", cfg.EnrichWorkers)
	}
	if cfg.WebsiteTimeout != 15*time.Second {
		t.Errorf("WebsiteTimeout: got %v, want 15s", cfg.WebsiteTimeout)
	}
	if cfg.ContactPageTimeout != 10*time.Second {
		t.Errorf("ContactPageTimeout: got %v, want 10s", cfg.ContactPageTimeout)
	}
	if cfg.MaxContactPages != 5 {
		t.Errorf("MaxContactPages: got %d, want 5", cfg.MaxContactPages)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCRAPER_PORT", "9000")
	t.Setenv("HEADLESS", "false")
	t.Setenv("SCROLL_DELAY", "1500ms")
	t.Setenv("PAGE_LOAD_WAIT", "4")
	t.Setenv("ENRICH_WORKERS", "not-a-number")

	cfg := Load()

	if cfg.ScraperPort != "9000" {
		t.Errorf("ScraperPort: got %q, want %q", cfg.ScraperPort, "9000")
	}
	if cfg.Headless {
		t.Error("Headless: got true, want false")
	}
	if cfg.ScrollDelay != 1500*time.Millisecond {
		t.Errorf("ScrollDelay: got %v, want 1.5s", cfg.ScrollDelay)
	}
	if cfg.PageLoadWait != 4*time.Second {
		t.Errorf("PageLoadWait: got %v, want 4s", cfg.PageLoadWait)
	}
	if cfg.EnrichWorkers != 5 {
		t.Errorf("EnrichWorkers should fall back on bad input, got %d", cfg.EnrichWorkers)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "leads", PostgresSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=leads sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q; want %q", got, want)
	}
}
