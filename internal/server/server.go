package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/singleflight"

	"finder/internal/discovery"
	"finder/internal/domain"
)

const maxBodyBytes = 1 << 20

// Server serves the finder API.
type Server struct {
	enum    domain.Enumerator
	records domain.RecordStore
	log     *slog.Logger
	now     func() time.Time
	flight  singleflight.Group
}

// New returns a Server that discovers with enum and caches in records.
func New(enum domain.Enumerator, records domain.RecordStore, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{enum: enum, records: records, log: log, now: time.Now}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	r.Post("/find", s.handleFind)
	r.Post("/store", s.handleStore)
	r.Get("/subdomains/{domain}", s.handleRecord)
	r.Get("/history", s.handleHistory)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	d, err := discovery.NormalizeDomain(req.Domain)
	switch {
	case errors.Is(err, discovery.ErrEmptyDomain):
		writeError(w, http.StatusBadRequest, "Domain is required")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "Invalid domain")
		return
	}

	rec, ok, err := s.records.LoadRecord(d)
	if err != nil {
		s.log.Error("load record", "domain", d, "err", err)
		writeError(w, http.StatusInternalServerError, "storage error: "+err.Error())
		return
	}
	if ok {
		s.log.Debug("cache hit", "domain", d, "names", rec.Count())
		writeJSON(w, http.StatusOK, rec.Subdomains)
		return
	}

	// Discovery outlives any single caller; the runner bounds it instead.
	ctx := context.WithoutCancel(r.Context())
	v, err, _ := s.flight.Do(d, func() (any, error) {
		return s.discover(ctx, d)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	names := v.([]string)
	if len(names) == 0 {
		writeError(w, http.StatusNotFound, "No subdomains found for this domain")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// discover runs enumeration for d and caches a non-empty result.
func (s *Server) discover(ctx context.Context, d string) ([]string, error) {
	names, err := s.enum.Enumerate(ctx, d)
	if err != nil {
		s.log.Error("discovery failed", "domain", d, "err", err)
		return nil, err
	}
	if len(names) == 0 {
		s.log.Info("no subdomains found, not caching", "domain", d)
		return names, nil
	}
	rec := domain.Record{Domain: d, Subdomains: names, Timestamp: s.now().UTC()}
	if err := s.records.SaveRecord(rec); err != nil {
		s.log.Warn("failed to cache record", "domain", d, "err", err)
	}
	return names, nil
}

// handleStore writes a record produced elsewhere into the cache.
func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	var rec domain.Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	d, err := discovery.NormalizeDomain(rec.Domain)
	switch {
	case errors.Is(err, discovery.ErrEmptyDomain):
		writeError(w, http.StatusBadRequest, "Domain is required")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "Invalid domain")
		return
	}
	rec.Domain = d
	if rec.Subdomains == nil {
		rec.Subdomains = []string{}
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now().UTC()
	}
	if err := s.records.SaveRecord(rec); err != nil {
		s.log.Error("store record", "domain", d, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to store data: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Subdomains stored successfully"})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "domain")
	d, err := discovery.NormalizeDomain(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid domain")
		return
	}
	rec, ok, err := s.records.LoadRecord(d)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve data: "+err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No data found for domain: "+d)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	recs, err := s.records.ListRecords()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records: "+err.Error())
		return
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// accessLog records method, path, remote, status, bytes and duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
