package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path pattern: exact, prefix ending in "/", or segments with "*" wildcards
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_DEFAULT_LIMIT", 1000)
	v.SetDefault("RATE_LIMIT_DEFAULT_WINDOW", time.Minute)
	v.SetDefault("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	v.SetDefault("RATE_LIMIT_WHITELIST", "")
	v.SetDefault("RATE_LIMIT_BLACKLIST", "")

	if !v.GetBool("RATE_LIMIT_ENABLED") {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    v.GetInt("RATE_LIMIT_DEFAULT_LIMIT"),
		DefaultWindow:   v.GetDuration("RATE_LIMIT_DEFAULT_WINDOW"),
		CleanupInterval: v.GetDuration("RATE_LIMIT_CLEANUP_INTERVAL"),
		Whitelist:       parseIPList(v.GetString("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(v.GetString("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Submit writes to the persistence backend (strictest)
		{Path: "/sessions/*/submit", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: Session lifecycle
		{Path: "/sessions", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/sessions/*", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Tier 3: Edits arrive at typing speed
		{Path: "/sessions/", Method: "POST", Limit: 1200, Window: time.Minute, Burst: 100},
		{Path: "/sessions/", Method: "PUT", Limit: 1200, Window: time.Minute, Burst: 100},

		// Tier 4: Reads use the default limit; health and metrics are unlimited (matcher)
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
