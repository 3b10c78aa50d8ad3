package finder_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finder/internal/domain"
	"finder/internal/finder"
)

func TestFind_RequestShape(t *testing.T) {
	var gotDomain, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/find" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotCT = r.Header.Get("Content-Type")
		var body struct {
			Domain string `json:"domain"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotDomain = body.Domain
		_, _ = w.Write([]byte(`["www.example.com"]`))
	}))
	defer srv.Close()

	c := finder.NewHTTP(srv.URL+"/", srv.Client())
	got, err := c.Find(context.Background(), " Example.COM ")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 1 || got[0] != "www.example.com" {
		t.Fatalf("Find = %v", got)
	}
	if gotDomain != " Example.COM " {
		t.Fatalf("domain sent = %q, want it unchanged", gotDomain)
	}
	if gotCT != "application/json" {
		t.Fatalf("Content-Type = %q", gotCT)
	}
}

func TestFind_NullIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	got, err := finder.NewHTTP(srv.URL, nil).Find(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Find = %#v, want empty non-nil slice", got)
	}
}

func TestFind_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"No subdomains found for this domain"}`))
	}))
	defer srv.Close()

	_, err := finder.NewHTTP(srv.URL, nil).Find(context.Background(), "example.com")
	var se *finder.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusNotFound || se.Message != "No subdomains found for this domain" {
		t.Fatalf("StatusError = %+v", se)
	}
}

func TestFind_Malformed(t *testing.T) {
	bodies := []string{
		`{"subdomains":["a"]}`,
		`["a.example.com"]garbage`,
		`["a.example.com"] {"oops":1}`,
		`["a.example.com"]["b.example.com"]`,
		`[null,"b.example.com"]`,
		`["a.example.com",1]`,
		``,
	}
	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		got, err := finder.NewHTTP(srv.URL, nil).Find(context.Background(), "example.com")
		srv.Close()
		if !errors.Is(err, finder.ErrMalformedResponse) {
			t.Fatalf("body %q: err = %v, want ErrMalformedResponse", body, err)
		}
		if got != nil {
			t.Fatalf("body %q: got %v, want nil", body, got)
		}
	}
}

func TestFind_TrailingWhitespaceIsFine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[\"a.example.com\"]\n\t "))
	}))
	defer srv.Close()

	got, err := finder.NewHTTP(srv.URL, nil).Find(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 1 || got[0] != "a.example.com" {
		t.Fatalf("Find = %v", got)
	}
}

func TestLookupAndHistory(t *testing.T) {
	rec := domain.Record{
		Domain:     "example.com",
		Subdomains: []string{"a.example.com"},
		Timestamp:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/subdomains/example.com", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(rec)
	})
	mux.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.Record{rec})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := finder.NewHTTP(srv.URL, nil)
	got, err := c.Lookup(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Domain != rec.Domain || got.Count() != 1 || !got.Timestamp.Equal(rec.Timestamp) {
		t.Fatalf("Lookup = %+v", got)
	}

	all, err := c.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("History = %v", all)
	}
}
