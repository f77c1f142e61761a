package config

import (
	"os"
	"strconv"
)

// Config holds all application-level configuration
type Config struct {
	// Database
	DatabaseURL string

	// Crawl
	PartNumbersFile    string // one part number per line; empty means built-in defaults
	RateLimitDelay     int    // milliseconds between page navigations
	MaxRetries         int
	NavTimeoutSec      int // navigation + network settle
	SelectorTimeoutSec int // wait-for-selector steps
	SettleDelayMs      int // extra wait after navigation for Angular to render
	MaxPricesPerPage   int

	// Output
	CSVFilePath  string
	DebugHTMLDir string // when set, detail pages with no pricing rows are dumped here

	// GSA Advantage
	GSAURL string
}

// Load reads configuration from environment variables or falls back to defaults
func Load() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		PartNumbersFile:    getEnv("PART_NUMBERS_FILE", ""),
		RateLimitDelay:     getEnvInt("RATE_LIMIT_DELAY_MS", 2000),
		MaxRetries:         getEnvInt("MAX_RETRIES", 3),
		NavTimeoutSec:      getEnvInt("NAV_TIMEOUT_SEC", 60),
		SelectorTimeoutSec: getEnvInt("SELECTOR_TIMEOUT_SEC", 10),
		SettleDelayMs:      getEnvInt("SETTLE_DELAY_MS", 2000),
		MaxPricesPerPage:   getEnvInt("MAX_PRICES_PER_PAGE", 10),
		CSVFilePath:        getEnv("CSV_FILE_PATH", "output/price_records.csv"),
		DebugHTMLDir:       getEnv("DEBUG_HTML_DIR", ""),
		GSAURL:             getEnv("GSA_URL", "https://www.gsaadvantage.gov"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
