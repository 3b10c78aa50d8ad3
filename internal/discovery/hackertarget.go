package discovery

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const hackerTargetBase = "https://api.hackertarget.com"

// HackerTarget queries the hostsearch API, which answers "host,ip" lines.
type HackerTarget struct {
	BaseURL string
	HTTP    *http.Client
}

func (s *HackerTarget) Name() string { return "hackertarget" }

func (s *HackerTarget) Enumerate(ctx context.Context, d string) ([]string, error) {
	base := s.BaseURL
	if base == "" {
		base = hackerTargetBase
	}
	resp, err := get(ctx, s.HTTP, base+"/hostsearch/?q="+url.QueryEscape(d))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out []string
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		host, _, _ := strings.Cut(line, ",")
		if strings.HasPrefix(host, "error") || strings.HasPrefix(host, "API count exceeded") {
			return nil, fmt.Errorf("hackertarget: %s", line)
		}
		out = append(out, host)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read hackertarget response: %w", err)
	}
	return out, nil
}

var _ Source = (*HackerTarget)(nil)
