package core

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the relay.
// It is constructed once at startup via LoadConfig and passed into the
// handler stack; nothing reads environment variables after load.
type Config struct {
	// OpenAIAPIKey is the credential for the image generation API (required)
	OpenAIAPIKey string

	// Port is the HTTP listening port (default: 5173)
	Port int

	// ImageModel is the upstream image model identifier (default: gpt-image-1)
	ImageModel string

	// ImageSize is the requested output size string (default: 1024x1024)
	ImageSize string

	// ImageAPIURL is the upstream API base URL (default: https://api.openai.com/v1)
	ImageAPIURL string

	// AITimeout bounds the upstream HTTP call
	AITimeout time.Duration

	// AllowSelfSignedCerts disables TLS verification for the upstream client
	AllowSelfSignedCerts bool

	// LogFile is the path for the rotating log file (default: app.log)
	LogFile string
}

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to parse integer environment variable with default value
func parseIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. Only the image API credential is required; without it the
// process refuses to start.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_KEY") // Legacy support
	}
	if apiKey == "" {
		return nil, fmt.Errorf("missing required environment variable: OPENAI_API_KEY. See .env.example for configuration template")
	}

	// 60s timeout accommodates slow image models while preventing hangs
	aiTimeout := time.Duration(parseIntEnv("AI_TIMEOUT", 60)) * time.Second

	return &Config{
		OpenAIAPIKey:         apiKey,
		Port:                 parseIntEnv("PORT", 5173),
		ImageModel:           getEnvOrDefault("IMAGE_MODEL", "gpt-image-1"),
		ImageSize:            getEnvOrDefault("IMAGE_SIZE", "1024x1024"),
		ImageAPIURL:          getEnvOrDefault("IMAGE_API_URL", "https://api.openai.com/v1"),
		AITimeout:            aiTimeout,
		AllowSelfSignedCerts: getEnvOrDefault("ALLOW_SELF_SIGNED_CERTS", "false") == "true",
		LogFile:              getEnvOrDefault("LOG_FILE", "app.log"),
	}, nil
}

// GetHTTPClient returns an HTTP client configured with TLS settings based on
// AllowSelfSignedCerts. This should be used for all requests to the upstream
// API so TLS configuration is respected.
func GetHTTPClient(cfg *Config, timeout time.Duration) *http.Client {
	client := &http.Client{
		Timeout: timeout,
	}

	if cfg.AllowSelfSignedCerts {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return client
}

// GetDefaultHTTPClient returns an HTTP client with default timeout (30s)
// configured with TLS settings.
func GetDefaultHTTPClient(cfg *Config) *http.Client {
	return GetHTTPClient(cfg, 30*time.Second)
}
