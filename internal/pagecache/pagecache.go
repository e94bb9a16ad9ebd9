package pagecache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/portfoliopro/folio/internal/cache"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/metrics"
)

const keyPrefix = "page_"

type cachedPage struct {
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Cache stores rendered portfolio page bodies per subdomain and path. Only
// successful GET responses are cached; everything else passes through.
type Cache struct {
	store cache.Store
	ttl   time.Duration
}

// New builds the cache. A nil store disables caching and every request
// renders fresh.
func New(store cache.Store, ttl time.Duration) *Cache {
	return &Cache{
		store: store,
		ttl:   ttl,
	}
}

// CachedOrRender serves the page from the cache when possible, otherwise
// runs render and caches the result if it is a 200.
func (c *Cache) CachedOrRender(w http.ResponseWriter, r *http.Request, subdomain string, render http.Handler) {
	if c.store == nil || r.Method != http.MethodGet {
		metrics.PageCacheRequests.WithLabelValues(metrics.OutcomeBypass).Inc()
		render.ServeHTTP(w, r)

		return
	}

	key := pageKey(subdomain, r.URL.Path)
	ctx := r.Context()

	value, err := c.store.Get(ctx, key)
	if err == nil {
		var page cachedPage
		if json.Unmarshal(value, &page) == nil {
			metrics.PageCacheRequests.WithLabelValues(metrics.OutcomeHit).Inc()
			serve(w, page)

			return
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Warn(ctx, "page cache unavailable, rendering", log.ErrorAttr(err))
	}

	metrics.PageCacheRequests.WithLabelValues(metrics.OutcomeMiss).Inc()

	rec := newRecorder()
	render.ServeHTTP(rec, r)

	if rec.status == http.StatusOK {
		payload, err := json.Marshal(cachedPage{
			ContentType: rec.header.Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err == nil {
			err = c.store.Set(ctx, key, payload, c.ttl)
			if err != nil {
				log.Warn(ctx, "failed to populate page cache", log.ErrorAttr(err))
			}
		}
	}

	rec.copyTo(w)
}

// Invalidate evicts every cached path of the subdomain.
func (c *Cache) Invalidate(ctx context.Context, subdomain string) {
	if c.store == nil {
		return
	}

	err := c.store.DeletePrefix(ctx, keyPrefix+strings.ToLower(subdomain)+"_")
	if err != nil {
		log.Warn(ctx, "failed to invalidate page cache", log.ErrorAttr(err))
	}
}

// Flush drops every cached page. Only the explicit admin action uses it.
func (c *Cache) Flush(ctx context.Context) {
	if c.store == nil {
		return
	}

	err := c.store.DeletePrefix(ctx, keyPrefix)
	if err != nil {
		log.Warn(ctx, "failed to flush page cache", log.ErrorAttr(err))
	}
}

func pageKey(subdomain, path string) string {
	return keyPrefix + strings.ToLower(subdomain) + "_" + path
}

func serve(w http.ResponseWriter, page cachedPage) {
	if page.ContentType != "" {
		w.Header().Set("Content-Type", page.ContentType)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page.Body)
}

// recorder buffers the rendered response so a 200 can be cached before it
// is replayed to the client.
type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{
		header: http.Header{},
		status: http.StatusOK,
	}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) { r.status = status }

func (r *recorder) Write(p []byte) (int, error) { return r.body.Write(p) }

func (r *recorder) copyTo(w http.ResponseWriter) {
	for name, values := range r.header {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}

	w.WriteHeader(r.status)
	_, _ = w.Write(r.body.Bytes())
}
