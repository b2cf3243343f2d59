package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/goodabcdef/blog-term/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Duration-like fields are plain integers (minutes/seconds) so the
// file stays editable by hand; after unmarshalling they are converted into
// the runtime Config, which uses time.Duration.
type JsonConfig struct {
	EndpointAddr               string `json:"endpoint_addr"`
	DatabaseDSN                string `json:"database_dsn"`
	RedisAddr                  string `json:"redis_addr"`
	SecretKey                  string `json:"secret_key"`
	AccessTokenValidityMinutes int    `json:"access_token_validity_minutes"`
	RateLimitThreshold         int64  `json:"rate_limit_threshold"`
	RateLimitWindowSeconds     int    `json:"rate_limit_window_seconds"`
	OIDCIssuer                 string `json:"oidc_issuer"`
	OIDCAudience               string `json:"oidc_audience"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityMinutes) * time.Minute
	config.RateLimitThreshold = c.RateLimitThreshold
	config.RateLimitWindow = time.Duration(c.RateLimitWindowSeconds) * time.Second
	config.OIDCIssuer = c.OIDCIssuer
	config.OIDCAudience = c.OIDCAudience
}
