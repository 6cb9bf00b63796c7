package config

import (
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/filex"
)

// Config holds runtime settings for the sensorhub CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the sensorhub HTTP API.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: per-request deadline for API calls.
//   - TokenFile: where the bearer token is cached between runs.
//   - LogLevel: minimum level of diagnostic messages written to stderr.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	TokenFile           string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = filex.UserConfigFile("sensorhub", "token")
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
