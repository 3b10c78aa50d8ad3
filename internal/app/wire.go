package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"finder/internal/discovery"
	"finder/internal/domain"
	"finder/internal/finder"
	"finder/internal/query"
	"finder/internal/server"
	"finder/internal/store"
)

// Client bundles the stores and clients used by the CLI.
type Client struct {
	Finder  *finder.HTTP
	History domain.HistoryStore
}

// NewClient constructs the CLI dependency graph from cfg.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// No timeout unless one was asked for.
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		Finder:  finder.NewHTTP(cfg.ServerURL, httpClient),
		History: store.NewHistoryFileStore(cfg.Home),
	}, nil
}

// NewController returns a fresh Query Controller bound to the finder service.
func (c *Client) NewController() *query.Controller {
	return query.New(c.Finder)
}

// Record appends the outcome of a settled submission to the local history.
func (c *Client) Record(st query.State, at time.Time) error {
	entry := domain.HistoryEntry{Domain: st.Domain, Count: len(st.Results), At: at.UTC()}
	if st.Failed() {
		entry.Count = 0
		entry.Error = st.Message
		if st.Cause != nil {
			entry.Error = st.Cause.Error()
		}
	}
	return c.History.AppendHistory(entry)
}

// Service bundles everything the finder service runs on.
type Service struct {
	Runner  *discovery.Runner
	Records domain.RecordStore
	Server  *server.Server
}

// NewService constructs the service dependency graph from cfg.
func NewService(cfg ServiceConfig, log *slog.Logger) (*Service, error) {
	httpClient := &http.Client{Timeout: 60 * time.Second}

	var sources []domain.Source
	for _, name := range cfg.Sources {
		switch name {
		case "crtsh":
			sources = append(sources, &discovery.CrtSh{HTTP: httpClient})
		case "hackertarget":
			sources = append(sources, &discovery.HackerTarget{HTTP: httpClient})
		case "dns":
			sources = append(sources, &discovery.DNS{Resolver: cfg.Resolver, Rate: cfg.DNSRate})
		default:
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}
	cmds, err := discovery.ParseCommands(cfg.Commands)
	if err != nil {
		return nil, fmt.Errorf("FINDER_COMMAND: %w", err)
	}
	for _, c := range cmds {
		sources = append(sources, c)
	}

	runner := discovery.NewRunner(log.With("component", "discovery"), cfg.DiscoveryTimeout, sources...)
	records := store.NewRecordFileStore(cfg.DataDir)

	return &Service{
		Runner:  runner,
		Records: records,
		Server:  server.New(runner, records, log.With("component", "http")),
	}, nil
}
