package pagecache_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/cache"
	"github.com/portfoliopro/folio/internal/pagecache"
)

func countingHandler(status int, body string, calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*calls++

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestCachedOrRenderCachesSuccess(t *testing.T) {
	c := pagecache.New(cache.NewMemoryStore(), 5*time.Minute)

	var calls int

	handler := countingHandler(http.StatusOK, `{"ok":true}`, &calls)

	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		c.CachedOrRender(rec, req, "alice", handler)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"ok":true}`, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}

	assert.Equal(t, 1, calls)
}

func TestCachedOrRenderSkipsNonGet(t *testing.T) {
	c := pagecache.New(cache.NewMemoryStore(), 5*time.Minute)

	var calls int

	handler := countingHandler(http.StatusOK, "ok", &calls)

	for range 2 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		c.CachedOrRender(rec, req, "alice", handler)
	}

	assert.Equal(t, 2, calls)
}

func TestCachedOrRenderSkipsErrors(t *testing.T) {
	c := pagecache.New(cache.NewMemoryStore(), 5*time.Minute)

	var calls int

	handler := countingHandler(http.StatusNotFound, "missing", &calls)

	for range 2 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		c.CachedOrRender(rec, req, "alice", handler)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "missing", rec.Body.String())
	}

	assert.Equal(t, 2, calls)
}

func TestCachedOrRenderKeysBySubdomainAndPath(t *testing.T) {
	c := pagecache.New(cache.NewMemoryStore(), 5*time.Minute)

	var aliceCalls, bobCalls int

	alice := countingHandler(http.StatusOK, "alice", &aliceCalls)
	bob := countingHandler(http.StatusOK, "bob", &bobCalls)

	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "alice", alice)
	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "bob", bob)

	rec := httptest.NewRecorder()
	c.CachedOrRender(rec, httptest.NewRequest(http.MethodGet, "/", nil), "bob", bob)
	assert.Equal(t, "bob", rec.Body.String())

	// A different path renders fresh.
	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/other", nil), "alice", alice)

	assert.Equal(t, 2, aliceCalls)
	assert.Equal(t, 1, bobCalls)
}

func TestInvalidateOnlyTouchesOneSubdomain(t *testing.T) {
	c := pagecache.New(cache.NewMemoryStore(), 5*time.Minute)

	var aliceCalls, bobCalls int

	alice := countingHandler(http.StatusOK, "alice", &aliceCalls)
	bob := countingHandler(http.StatusOK, "bob", &bobCalls)

	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "alice", alice)
	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "bob", bob)

	c.Invalidate(t.Context(), "alice")

	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "alice", alice)
	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "bob", bob)

	assert.Equal(t, 2, aliceCalls)
	assert.Equal(t, 1, bobCalls)
}

func TestFlushDropsEverything(t *testing.T) {
	c := pagecache.New(cache.NewMemoryStore(), 5*time.Minute)

	var calls int

	handler := countingHandler(http.StatusOK, "ok", &calls)

	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "alice", handler)
	c.Flush(t.Context())
	c.CachedOrRender(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "alice", handler)

	assert.Equal(t, 2, calls)
}

func TestWithoutStoreRendersEveryTime(t *testing.T) {
	c := pagecache.New(nil, 5*time.Minute)

	var calls int

	handler := countingHandler(http.StatusOK, "ok", &calls)

	for range 2 {
		rec := httptest.NewRecorder()
		c.CachedOrRender(rec, httptest.NewRequest(http.MethodGet, "/", nil), "alice", handler)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2, calls)
}
