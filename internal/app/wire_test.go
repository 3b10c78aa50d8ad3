package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finder/internal/query"
)

func TestNewClient_SubmitAndRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["b.example.com","a.example.com"]`))
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{Home: t.TempDir(), ServerURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctrl := c.NewController()
	ctrl.SetDomain("example.com")
	st := ctrl.Submit(context.Background())
	if st.Status != query.StatusSuccess {
		t.Fatalf("status = %v", st.Status)
	}

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := c.Record(st, at); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := c.Record(query.State{Domain: "down.com", Status: query.StatusFailure, Message: query.FailureMessage, Cause: errors.New("dial tcp: refused")}, at); err != nil {
		t.Fatalf("Record failure: %v", err)
	}

	h, err := c.History.LoadHistory(0)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(h) != 2 {
		t.Fatalf("history = %+v", h)
	}
	if h[0].Domain != "down.com" || h[0].Error != "dial tcp: refused" {
		t.Fatalf("newest = %+v", h[0])
	}
	if h[1].Count != 2 || h[1].Failed() {
		t.Fatalf("oldest = %+v", h[1])
	}
}

func TestNewService_BuildsSources(t *testing.T) {
	cfg := ServiceConfig{
		DataDir:          t.TempDir(),
		Sources:          []string{"crtsh", "hackertarget", "dns"},
		Resolver:         "127.0.0.1:53",
		DNSRate:          10,
		DiscoveryTimeout: time.Minute,
		Commands:         "subfinder -d {domain} -silent; /opt/Sublist3r|venv/bin/python sublist3r.py -d {domain}",
	}
	svc, err := NewService(cfg, NewLogger(io.Discard, "info"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	got := svc.Runner.Sources()
	want := []string{"crt.sh", "hackertarget", "dns", "subfinder", "python"}
	if len(got) != len(want) {
		t.Fatalf("sources = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sources = %v, want %v", got, want)
		}
	}

	cfg.Sources = nil
	cfg.Commands = "subfinder -d {domain}; |sublist3r.py"
	if _, err := NewService(cfg, NewLogger(io.Discard, "info")); err == nil {
		t.Fatal("expected error for an entry with an empty working directory")
	}

	cfg.Sources = []string{"nope"}
	cfg.Commands = ""
	if _, err := NewService(cfg, NewLogger(io.Discard, "info")); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
