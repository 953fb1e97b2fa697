// Package timetable runs the sanitize-and-cache pipeline: serve the cached
// sanitized export while it is fresh, otherwise fetch, sanitize, and persist
// a new one. The whole chain sits behind a single error boundary that turns
// every failure into a plain "Error: ..." string, so callers always receive
// a string result and never need dedicated error handling on this path.
package timetable

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/edtlabs/edt-proxy-go/internal/cache"
	"github.com/edtlabs/edt-proxy-go/internal/metrics"
)

// errorPrefix marks a pipeline failure in the string returned to clients.
const errorPrefix = "Error: "

// Fetcher retrieves the raw export from the upstream API.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Sanitizer redacts personal data from a raw export document.
type Sanitizer interface {
	Sanitize(raw string) (string, error)
}

// Service orchestrates the pipeline.
type Service struct {
	fetcher   Fetcher
	sanitizer Sanitizer
	store     *cache.Store
	metrics   *metrics.Metrics

	group singleflight.Group
}

// New creates a Service.
func New(fetcher Fetcher, sanitizer Sanitizer, store *cache.Store, m *metrics.Metrics) *Service {
	return &Service{
		fetcher:   fetcher,
		sanitizer: sanitizer,
		store:     store,
		metrics:   m,
	}
}

// SanitizedXML returns the sanitized export as a string. Any failure in the
// chain (fetch, sanitize, cache I/O) yields a string prefixed "Error: "
// instead of an error value.
func (s *Service) SanitizedXML(ctx context.Context) string {
	text, err := s.sanitizedXML(ctx)
	if err != nil {
		slog.Error("timetable pipeline failed", "err", err)
		return errorPrefix + err.Error()
	}
	return text
}

func (s *Service) sanitizedXML(ctx context.Context) (string, error) {
	text, age, err := s.store.Get()
	switch {
	case err == nil && s.store.Fresh(age):
		s.metrics.CacheHits.Inc()
		return text, nil
	case err != nil && !errors.Is(err, cache.ErrMiss):
		return "", err
	}

	s.metrics.CacheMisses.Inc()

	// Collapse concurrent regenerations: an expired or missing entry
	// triggers exactly one upstream fetch no matter how many requests
	// arrive while it runs.
	v, err, _ := s.group.Do(s.store.Path(), func() (interface{}, error) {
		return s.regenerate(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// regenerate fetches, sanitizes, and persists a new cache entry. A cache
// write failure is fatal to the invocation; the entry left behind (if any)
// will simply be regenerated again next time.
func (s *Service) regenerate(ctx context.Context) (string, error) {
	s.metrics.FetchTotal.Inc()
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.metrics.FetchErrors.Inc()
		return "", err
	}

	clean, err := s.sanitizer.Sanitize(raw)
	if err != nil {
		s.metrics.SanitizeErrors.Inc()
		return "", err
	}

	if err := s.store.Put(clean); err != nil {
		return "", err
	}

	slog.Info("sanitized export regenerated", "bytes", len(clean), "path", s.store.Path())
	return clean, nil
}

// IsError reports whether a result string from SanitizedXML carries the
// error prefix.
func IsError(result string) bool {
	return strings.HasPrefix(result, errorPrefix)
}
