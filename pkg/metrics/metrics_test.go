package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ExponeContadores(t *testing.T) {
	ObserveRequest("GET", "/api/customers", 200, 15*time.Millisecond)
	CacheHit()
	CacheMiss()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `finans_http_requests_total{method="GET",route="/api/customers",status="200"}`)
	assert.Contains(t, string(body), `finans_query_cache_lookups_total{result="hit"}`)
}
