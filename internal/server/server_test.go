package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finder/internal/domain"
	"finder/internal/store"
)

type fakeEnum struct {
	names []string
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (f *fakeEnum) Enumerate(_ context.Context, d string) ([]string, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.names, f.err
}

func newTestServer(t *testing.T, enum *fakeEnum) (*Server, domain.RecordStore) {
	t.Helper()
	rs := store.NewRecordFileStore(t.TempDir())
	s := New(enum, rs, nil)
	s.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	return s, rs
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e.Error
}

func TestFind_RunsDiscoveryAndCaches(t *testing.T) {
	enum := &fakeEnum{names: []string{"a.example.com", "b.example.com"}}
	s, rs := newTestServer(t, enum)
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/find", `{"domain":"Example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, enum.names, got)

	rec, ok, err := rs.LoadRecord("example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, rec.Count())

	// Second call is served from the cache.
	w = do(t, h, http.MethodPost, "/find", `{"domain":"example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), enum.calls.Load())
}

func TestFind_BadRequests(t *testing.T) {
	s, _ := newTestServer(t, &fakeEnum{})
	h := s.Handler()

	tests := []struct {
		body string
		want string
	}{
		{`not json`, "Invalid request body"},
		{`{"domain":""}`, "Domain is required"},
		{`{"domain":"   "}`, "Domain is required"},
		{`{"domain":"no_dots"}`, "Invalid domain"},
	}
	for _, tt := range tests {
		w := do(t, h, http.MethodPost, "/find", tt.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.body)
		assert.Equal(t, tt.want, errorOf(t, w), tt.body)
	}
}

func TestFind_NothingFoundIsNotCached(t *testing.T) {
	enum := &fakeEnum{names: []string{}}
	s, rs := newTestServer(t, enum)

	w := do(t, s.Handler(), http.MethodPost, "/find", `{"domain":"example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No subdomains found for this domain", errorOf(t, w))

	_, ok, err := rs.LoadRecord("example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFind_DiscoveryError(t *testing.T) {
	s, _ := newTestServer(t, &fakeEnum{err: errors.New("all discovery sources failed")})

	w := do(t, s.Handler(), http.MethodPost, "/find", `{"domain":"example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, errorOf(t, w), "all discovery sources failed")
}

func TestFind_ConcurrentRequestsShareOneRun(t *testing.T) {
	enum := &fakeEnum{names: []string{"a.example.com"}, gate: make(chan struct{})}
	s, _ := newTestServer(t, enum)
	h := s.Handler()

	const n = 5
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = do(t, h, http.MethodPost, "/find", `{"domain":"example.com"}`).Code
		}()
	}
	// Let every request reach the flight before releasing it.
	require.Eventually(t, func() bool { return enum.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(enum.gate)
	wg.Wait()

	for _, c := range codes {
		assert.Equal(t, http.StatusOK, c)
	}
	assert.LessOrEqual(t, enum.calls.Load(), int32(n))
	assert.GreaterOrEqual(t, enum.calls.Load(), int32(1))
}

func TestRecordAndHistory(t *testing.T) {
	s, rs := newTestServer(t, &fakeEnum{})
	h := s.Handler()

	require.NoError(t, rs.SaveRecord(domain.Record{Domain: "old.com", Subdomains: []string{"a.old.com"}, Timestamp: time.Unix(1, 0)}))
	require.NoError(t, rs.SaveRecord(domain.Record{Domain: "new.com", Subdomains: []string{"a.new.com"}, Timestamp: time.Unix(2, 0)}))

	w := do(t, h, http.MethodGet, "/subdomains/NEW.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rec domain.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "new.com", rec.Domain)

	w = do(t, h, http.MethodGet, "/subdomains/missing.com", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []domain.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "new.com", all[0].Domain)
}

func TestStore(t *testing.T) {
	enum := &fakeEnum{}
	s, rs := newTestServer(t, enum)
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/store", `{"domain":"Example.COM","subdomains":["a.example.com"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	rec, ok, err := rs.LoadRecord("example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a.example.com"}, rec.Subdomains)
	assert.True(t, rec.Timestamp.Equal(s.now()))

	// A stored record answers /find without running discovery.
	w = do(t, h, http.MethodPost, "/find", `{"domain":"example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var got []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"a.example.com"}, got)
	assert.Zero(t, enum.calls.Load())

	for body, want := range map[string]string{
		`nope`:                       "Invalid request body",
		`{"subdomains":["a.x.com"]}`: "Domain is required",
		`{"domain":"no_dots"}`:       "Invalid domain",
	} {
		w := do(t, h, http.MethodPost, "/store", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, want, errorOf(t, w), body)
	}
}

func TestHealthzAndCORS(t *testing.T) {
	s, _ := newTestServer(t, &fakeEnum{})
	h := s.Handler()

	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	req := httptest.NewRequest(http.MethodOptions, "/find", nil)
	req.Header.Set("Origin", "http://localhost:3001")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, "*", rw.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s, _ := newTestServer(t, &fakeEnum{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, lis, s.Handler(), s.log) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
