package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limoncello/reservation-api/internal/config"
)

func cacheCtx(method, path, rawQuery string) echo.Context {
	e := echo.New()
	target := path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(method, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestCacheKeyStrategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "resv", KeyStrategy: "route_query"}

	a := cacheKey(cfg, cacheCtx(http.MethodGet, "/v1/venues/:id/hours", "date=2026-03-02&party_size=4"))
	b := cacheKey(cfg, cacheCtx(http.MethodGet, "/v1/venues/:id/hours", "date=2026-03-02&party_size=2"))
	assert.NotEqual(t, a, b, "party size must contribute to the key")
	assert.Contains(t, a, "resv:")

	cfg.KeyStrategy = "route"
	a = cacheKey(cfg, cacheCtx(http.MethodGet, "/v1/venues/:id/hours", "date=2026-03-02&party_size=4"))
	b = cacheKey(cfg, cacheCtx(http.MethodGet, "/v1/venues/:id/hours", "date=2026-03-02&party_size=2"))
	assert.Equal(t, a, b, "route strategy ignores the query")

	cfg.KeyStrategy = "method_route"
	a = cacheKey(cfg, cacheCtx(http.MethodGet, "/v1/venues/:id/hours", ""))
	b = cacheKey(cfg, cacheCtx(http.MethodHead, "/v1/venues/:id/hours", ""))
	assert.NotEqual(t, a, b, "method strategy separates verbs")
}

func TestCachedResponseRoundTrip(t *testing.T) {
	in := cachedResponse{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": {"application/json"}},
		Body:   []byte(`{"hours":["12:00","12:15"]}`),
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out cachedResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.Status, out.Status)
	assert.Equal(t, in.Header, out.Header)
	assert.Equal(t, in.Body, out.Body)
}

func TestResponseRecorderLimit(t *testing.T) {
	rec := &responseRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK, limit: 10}

	_, err := rec.Write([]byte("012345"))
	require.NoError(t, err)
	assert.Equal(t, "012345", rec.buf.String())
	assert.False(t, rec.overflow)

	_, err = rec.Write([]byte("6789abcdef"))
	require.NoError(t, err)
	assert.True(t, rec.overflow, "exceeding the limit abandons the copy")
	assert.Zero(t, rec.buf.Len())
}

func TestRedisCacheDisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/venues/2/hours", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
