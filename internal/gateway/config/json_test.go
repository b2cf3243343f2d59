package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":                 "www.example:9000",
		"database_dsn":                  "postgres://example/blogterm",
		"redis_addr":                    "localhost:6379",
		"secret_key":                    "my_secret_key",
		"access_token_validity_minutes": 45,
		"rate_limit_threshold":          5,
		"rate_limit_window_seconds":     3,
		"oidc_issuer":                   "https://securetoken.google.com/proj",
		"oidc_audience":                 "proj",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, "postgres://example/blogterm", cfg.DatabaseDSN)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, int64(5), cfg.RateLimitThreshold)
		assert.Equal(t, 3*time.Second, cfg.RateLimitWindow)
		assert.Equal(t, "https://securetoken.google.com/proj", cfg.OIDCIssuer)
		assert.Equal(t, "proj", cfg.OIDCAudience)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddr: "defaults:1234", SecretKey: "keep"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
		assert.Equal(t, "keep", cfg.SecretKey)
	})
}
