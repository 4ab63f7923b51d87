package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ScraperPort      string
	ContactPort      string
	ContactServerURL string

	Headless          bool
	EnableGPU         bool
	WindowWidth       int
	WindowHeight      int
	PageLoadWait      time.Duration
	ScrollAttempts    int
	ScrollDelay       time.Duration
	DetailWait        time.Duration
	MaxRetries        int
	DefaultZoom       int
	UserAgentRotation bool
	ChromeBin         string
	LocationDelay     time.Duration
	Debug             bool

	EnrichWorkers      int
	EnrichRateLimitMs  int
	WebsiteTimeout     time.Duration
	ContactPageTimeout time.Duration
	MaxContactPages    int
	EnrichHopTimeout   time.Duration
	VerifyEmailMX      bool
	DefaultCategory    string

	FirecrawlAPIKey string
	FirecrawlAPIURL string

	CSVOutputPath  string
	XLSXOutputPath string
	DuckDBPath     string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SmokeTest bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ScraperPort:      getEnv("SCRAPER_PORT", getEnv("PORT", "5000")),
		ContactPort:      getEnv("CONTACT_PORT", "5001"),
		ContactServerURL: getEnv("CONTACT_SERVER_URL", "http://127.0.0.1:5001"),

		Headless:          getEnvBool("HEADLESS", true),
		EnableGPU:         getEnvBool("ENABLE_GPU", false),
		WindowWidth:       getEnvInt("WINDOW_WIDTH", 1920),
		WindowHeight:      getEnvInt("WINDOW_HEIGHT", 1080),
		PageLoadWait:      getEnvDuration("PAGE_LOAD_WAIT", 8*time.Second),
		ScrollAttempts:    getEnvInt("SCROLL_ATTEMPTS", 30),
		ScrollDelay:       getEnvDuration("SCROLL_DELAY", time.Second),
		DetailWait:        getEnvDuration("DETAIL_WAIT", 2*time.Second),
		MaxRetries:        getEnvInt("MAX_RETRIES", 3),
		DefaultZoom:       getEnvInt("DEFAULT_ZOOM_LEVEL", 13),
		UserAgentRotation: getEnvBool("USER_AGENT_ROTATION", true),
		ChromeBin:         getEnv("CHROME_BIN", ""),
		LocationDelay:     getEnvDuration("LOCATION_DELAY", 3*time.Second),
		Debug:             getEnvBool("DEBUG", false),

		EnrichWorkers:      getEnvInt("ENRICH_WORKERS", 5),
		EnrichRateLimitMs:  getEnvInt("ENRICH_RATE_LIMIT_MS", 0),
		WebsiteTimeout:     getEnvDuration("WEBSITE_TIMEOUT", 15*time.Second),
		ContactPageTimeout: getEnvDuration("CONTACT_PAGE_TIMEOUT", 10*time.Second),
		MaxContactPages:    getEnvInt("MAX_CONTACT_PAGES", 5),
		EnrichHopTimeout:   getEnvDuration("ENRICH_HOP_TIMEOUT", 60*time.Second),
		VerifyEmailMX:      getEnvBool("VERIFY_EMAIL_MX", false),
		DefaultCategory:    getEnv("DEFAULT_CATEGORY", "Car Rental Agency"),

		FirecrawlAPIKey: getEnv("FIRECRAWL_API_KEY", ""),
		FirecrawlAPIURL: getEnv("FIRECRAWL_API_URL", ""),

		CSVOutputPath:  getEnv("CSV_OUTPUT_PATH", "./output/businesses.csv"),
		XLSXOutputPath: getEnv("XLSX_OUTPUT_PATH", ""),
		DuckDBPath:     getEnv("DUCKDB_PATH", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "leads_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SmokeTest: getEnvBool("LAUNCHER_SMOKE_TEST", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("1500ms", "8s") or a bare
// number of seconds ("8").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(val, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}
