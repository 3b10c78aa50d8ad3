package finder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"finder/internal/domain"
)

// DefaultBase is where the finder service listens in development.
const DefaultBase = "http://localhost:3000"

// ErrMalformedResponse is returned when a 2xx body is not of the expected shape.
var ErrMalformedResponse = errors.New("malformed response body")

// StatusError is a non-2xx answer from the finder service.
type StatusError struct {
	Method  string
	Path    string
	Status  string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("finder %s %s: %s: %s", strings.ToLower(e.Method), e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("finder %s %s: %s", strings.ToLower(e.Method), e.Path, e.Status)
}

// HTTP talks to the finder service over JSON. It implements both
// domain.SubdomainFinder and domain.RecordClient.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the service at base. A nil hc means
// http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

type findRequest struct {
	Domain string `json:"domain"`
}

// Find submits domain as-is and returns the service's list. A JSON null
// decodes as an empty list; any element that is not a string is malformed.
func (c *HTTP) Find(ctx context.Context, domain string) ([]string, error) {
	var raw []*string
	if err := c.do(ctx, http.MethodPost, "/find", findRequest{Domain: domain}, &raw); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for i, s := range raw {
		if s == nil {
			return nil, fmt.Errorf("%w: element %d is null", ErrMalformedResponse, i)
		}
		out = append(out, *s)
	}
	return out, nil
}

// Lookup fetches the cached record for d.
func (c *HTTP) Lookup(ctx context.Context, d string) (domain.Record, error) {
	var out domain.Record
	if err := c.do(ctx, http.MethodGet, "/subdomains/"+url.PathEscape(d), nil, &out); err != nil {
		return domain.Record{}, err
	}
	return out, nil
}

// History lists every cached record, newest first.
func (c *HTTP) History(ctx context.Context) ([]domain.Record, error) {
	var out []domain.Record
	if err := c.do(ctx, http.MethodGet, "/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.Status,
			Code:    resp.StatusCode,
			Message: errorText(resp.Body),
		}
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// Exactly one JSON value; only whitespace may follow it.
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON value", ErrMalformedResponse)
	}
	return nil
}

// errorText pulls the "error" field out of a failure body, if there is one.
func errorText(r io.Reader) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4<<10)).Decode(&e); err != nil {
		return ""
	}
	return e.Error
}

var (
	_ domain.SubdomainFinder = (*HTTP)(nil)
	_ domain.RecordClient    = (*HTTP)(nil)
)
