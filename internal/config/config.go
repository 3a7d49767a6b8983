package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// AppConfig holds everything the service needs, built once at startup and
// passed down explicitly. Business logic never reads the environment itself.
type AppConfig struct {
	// CWAAPIKey authorizes calls to the CWA open-data platform. It may be
	// empty at load time; the fetcher reports a missing key per request
	// instead of crashing the process.
	CWAAPIKey string

	// BaseURL is the CWA datastore API root.
	BaseURL string `validate:"required,url"`

	// DatasetID identifies the township forecast dataset for Taitung County.
	DatasetID string `validate:"required"`

	// TargetCity is the township extracted from the county-wide dataset.
	TargetCity string `validate:"required"`

	// HTTPTimeout applies to the shared outbound HTTP client.
	HTTPTimeout time.Duration

	Port string `validate:"required"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		CWAAPIKey:  os.Getenv("CWA_API_KEY"),
		BaseURL:    getenvDefault("CWA_API_BASE_URL", "https://opendata.cwa.gov.tw/api/v1/rest/datastore"),
		DatasetID:  getenvDefault("CWA_DATASET_ID", "F-D0047-089"),
		TargetCity: getenvDefault("TARGET_CITY", "臺東市"),
		Port:       getenvDefault("PORT", "8080"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
