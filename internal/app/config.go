package app

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// ClientConfig holds runtime wiring options for the CLI.
type ClientConfig struct {
	Home      string        // config directory, e.g. $HOME/.finder
	ServerURL string        // finder service base URL, e.g. http://localhost:3000
	Timeout   time.Duration // per request; zero means none
	HTTP      *http.Client  // optional; built from Timeout when nil
}

// Validate checks the fields a client cannot work without.
func (c ClientConfig) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("home directory must not be empty")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server URL %q", c.ServerURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (%s)", c.Timeout)
	}
	return nil
}

// ServiceConfig holds the finder service settings.
type ServiceConfig struct {
	Addr             string
	DataDir          string
	Sources          []string
	Resolver         string
	DNSRate          int
	DiscoveryTimeout time.Duration
	Commands         string // ";"-separated tool entries, see discovery.ParseCommands
	LogLevel         string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadServiceConfig reads the service settings from the environment.
func LoadServiceConfig() (ServiceConfig, error) {
	cfg := ServiceConfig{
		Addr:     getenv("FINDER_ADDR", ":3000"),
		DataDir:  getenv("FINDER_DATA_DIR", "./data"),
		Resolver: getenv("FINDER_RESOLVER", "8.8.8.8:53"),
		Commands: strings.TrimSpace(os.Getenv("FINDER_COMMAND")),
		LogLevel: getenv("FINDER_LOG_LEVEL", "info"),
	}

	for _, s := range strings.Split(getenv("FINDER_SOURCES", "crtsh,hackertarget,dns"), ",") {
		if s = strings.TrimSpace(strings.ToLower(s)); s != "" {
			cfg.Sources = append(cfg.Sources, s)
		}
	}
	for _, s := range cfg.Sources {
		switch s {
		case "crtsh", "hackertarget", "dns":
		default:
			return ServiceConfig{}, fmt.Errorf("unknown source %q in FINDER_SOURCES", s)
		}
	}
	if len(cfg.Sources) == 0 && strings.Trim(cfg.Commands, "; ") == "" {
		return ServiceConfig{}, fmt.Errorf("no discovery sources: set FINDER_SOURCES or FINDER_COMMAND")
	}

	rateStr := getenv("FINDER_DNS_RATE", "50")
	rate, err := strconv.Atoi(rateStr)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("invalid FINDER_DNS_RATE=%q: %w", rateStr, err)
	}
	if rate < 1 || rate > 10000 {
		return ServiceConfig{}, fmt.Errorf("FINDER_DNS_RATE out of range (%d), must be 1..10000", rate)
	}
	cfg.DNSRate = rate

	timeoutStr := getenv("FINDER_DISCOVERY_TIMEOUT", "5m")
	d, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("invalid FINDER_DISCOVERY_TIMEOUT=%q: %w", timeoutStr, err)
	}
	if d < 10*time.Second {
		return ServiceConfig{}, fmt.Errorf("FINDER_DISCOVERY_TIMEOUT too small (%s), must be >=10s", d)
	}
	if d > 30*time.Minute {
		return ServiceConfig{}, fmt.Errorf("FINDER_DISCOVERY_TIMEOUT too large (%s), must be <=30m", d)
	}
	cfg.DiscoveryTimeout = d

	if cfg.DataDir == "" {
		return ServiceConfig{}, fmt.Errorf("FINDER_DATA_DIR must not be empty")
	}
	return cfg, nil
}
