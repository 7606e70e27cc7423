package config

import (
	"time"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/filex"
)

const defaultBackend = "http://127.0.0.1:8080"

// Config holds runtime settings for the kbclip CLI.
//
// Fields:
//   - VerifyEndpointURL: where one-time login tokens are exchanged for a session.
//   - CaptureEndpointURL: where captured pages are stored.
//   - APIKey: optional value of the "apikey" header sent with captures.
//   - RequestTimeout: upper bound for every remote call.
//   - DatabasePath: SQLite file holding the session; ":memory:" keeps it in memory.
//   - CDPEndpoint: DevTools endpoint of the browser whose active tab is captured.
//   - StaticTabURL, StaticTabTitle: a fixed page to capture instead of a browser tab.
type Config struct {
	VerifyEndpointURL  string
	CaptureEndpointURL string
	APIKey             string
	RequestTimeout     time.Duration
	DatabasePath       string
	CDPEndpoint        string
	StaticTabURL       string
	StaticTabTitle     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.VerifyEndpointURL = defaultBackend + common.VerifyTokenPath
	c.CaptureEndpointURL = defaultBackend + common.KnowledgeBasePath
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = filex.DefaultDataPath("kbclip", "session.db")
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
