package config

import (
	"flag"
	"os"
	"time"

	"github.com/goodabcdef/blog-term/internal/flagx"
)

// parseFlags populates selected gateway Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-r string   Redis address for the rate-limit counter store
//	-s string   session token HMAC secret key
//	-t int      session token validity, minutes
//	-l int      rate limit threshold, requests per window
//	-w int      rate limit window, seconds
//	-i string   OIDC issuer for federated assertions
//	-u string   OIDC audience for federated assertions
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-s", "-t", "-l", "-w", "-i", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.Int64Var(&config.RateLimitThreshold, "l", config.RateLimitThreshold, "rate limit threshold (requests per window)")
	rateLimitWindow := fs.Int("w", int(config.RateLimitWindow.Seconds()), "rate limit window (in seconds)")

	fs.StringVar(&config.OIDCIssuer, "i", config.OIDCIssuer, "OIDC issuer")
	fs.StringVar(&config.OIDCAudience, "u", config.OIDCAudience, "OIDC audience")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RateLimitWindow = time.Duration(*rateLimitWindow) * time.Second
}
