package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"finder/internal/domain"
)

// Source is one way of discovering subdomains.
type Source = domain.Source

// ErrNoSources is returned by a Runner with nothing to run.
var ErrNoSources = errors.New("no discovery sources configured")

// Runner runs every source for a domain and merges the results.
type Runner struct {
	sources []Source
	timeout time.Duration
	log     *slog.Logger
}

// NewRunner returns a Runner over sources. timeout bounds a whole run; zero
// means no bound beyond the caller's context.
func NewRunner(log *slog.Logger, timeout time.Duration, sources ...Source) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{sources: sources, timeout: timeout, log: log}
}

// Sources returns the names of the configured sources.
func (r *Runner) Sources() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// Enumerate returns the sorted, deduplicated names under d found by any
// source. d is expected to be normalised already.
func (r *Runner) Enumerate(ctx context.Context, d string) ([]string, error) {
	if len(r.sources) == 0 {
		return nil, ErrNoSources
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	found := make([][]string, len(r.sources))
	errs := make([]error, len(r.sources))

	var g errgroup.Group
	for i, src := range r.sources {
		g.Go(func() error {
			start := time.Now()
			names, err := src.Enumerate(ctx, d)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", src.Name(), err)
				r.log.Warn("discovery source failed",
					"source", src.Name(), "domain", d, "err", err)
				return nil
			}
			found[i] = names
			r.log.Info("discovery source done",
				"source", src.Name(), "domain", d,
				"names", len(names), "took", time.Since(start).Round(time.Millisecond))
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(r.sources) {
		return nil, fmt.Errorf("all discovery sources failed: %w", errors.Join(errs...))
	}
	return merge(d, found...), nil
}

// merge cleans, scopes, deduplicates and sorts names.
func merge(d string, lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, raw := range list {
			name, ok := cleanName(raw)
			if !ok || !InScope(name, d) {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

var _ domain.Enumerator = (*Runner)(nil)
