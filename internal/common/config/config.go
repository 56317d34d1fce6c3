package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	commonerrors "github.com/rakhimovb/staylist/internal/common/errors"
)

const (
	defaultProviderAuthURL     = "https://app.boomnow.com/open_api/v1/auth/token"
	defaultProviderListingsURL = "https://app.boomnow.com/open_api/v1/listings"
)

type APIConfig struct {
	HTTPPort       string
	DatabaseURL    string
	RequestTimeout time.Duration
	Provider       ProviderConfig
}

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	ListingsURL  string
	Timeout      time.Duration
}

type ClientConfig struct {
	APIBaseURL string
}

// LoadDotenv loads a .env file when present. Missing files are not an error;
// the environment itself remains authoritative.
func LoadDotenv() {
	_ = godotenv.Load()
}

func LoadAPIConfig() (APIConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return APIConfig{}, err
	}

	return APIConfig{
		HTTPPort:       getEnv("API_HTTP_PORT", "8080"),
		DatabaseURL:    databaseURL,
		RequestTimeout: getDurationEnv("API_REQUEST_TIMEOUT", 5*time.Second),
		Provider:       loadProviderConfig(),
	}, nil
}

// loadProviderConfig does not require the credentials to be present: the
// listings proxy reports the missing configuration when it is first used,
// and the rest of the API works without it.
func loadProviderConfig() ProviderConfig {
	return ProviderConfig{
		ClientID:     os.Getenv("BOOM_CLIENT_ID"),
		ClientSecret: os.Getenv("BOOM_CLIENT_SECRET"),
		AuthURL:      getEnv("BOOM_AUTH_URL", defaultProviderAuthURL),
		ListingsURL:  getEnv("BOOM_LISTINGS_URL", defaultProviderListingsURL),
		Timeout:      getDurationEnv("BOOM_REQUEST_TIMEOUT", 10*time.Second),
	}
}

func LoadClientConfig() ClientConfig {
	return ClientConfig{
		APIBaseURL: getEnv("STAYLIST_API_URL", "http://localhost:8080"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
