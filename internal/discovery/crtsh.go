package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const crtShBase = "https://crt.sh"

// CrtSh reads names from certificate transparency logs.
type CrtSh struct {
	BaseURL string
	HTTP    *http.Client
}

type crtShEntry struct {
	NameValue string `json:"name_value"`
}

func (s *CrtSh) Name() string { return "crt.sh" }

func (s *CrtSh) Enumerate(ctx context.Context, d string) ([]string, error) {
	base := s.BaseURL
	if base == "" {
		base = crtShBase
	}
	u := fmt.Sprintf("%s/?q=%s&output=json", base, url.QueryEscape("%."+d))

	resp, err := get(ctx, s.HTTP, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var entries []crtShEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode crt.sh response: %w", err)
	}

	var out []string
	for _, e := range entries {
		// One certificate can carry several SANs separated by newlines.
		out = append(out, strings.Split(e.NameValue, "\n")...)
	}
	return out, nil
}

func get(ctx context.Context, hc *http.Client, u string) (*http.Response, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/plain")
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return resp, nil
}

var _ Source = (*CrtSh)(nil)
