package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/smitebuilder/server/api/rest"
	"github.com/kasuganosora/smitebuilder/server/cache"
	"github.com/kasuganosora/smitebuilder/server/metrics"
	"github.com/kasuganosora/smitebuilder/server/resource"
	"github.com/kasuganosora/smitebuilder/server/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	catalog *resource.Catalog
	cache   cache.Cache
	metrics *metrics.EligibilityMetrics
}

type serverOpts struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func newTestServer(t *testing.T, opts serverOpts) *testServer {
	t.Helper()
	catalog := testutil.SetupTestCatalog(t)
	if opts.logger == nil {
		opts.logger = zap.NewNop()
	}
	m := metrics.NewEligibilityMetrics("test", prometheus.NewRegistry())
	elig := rest.NewEligibility(catalog, opts.cache, opts.ttl, m, opts.logger)

	r := gin.New()
	rest.RegisterRoutes(r, rest.NewItemHandler(catalog, elig), rest.NewGodHandler(catalog, elig))
	return &testServer{router: r, catalog: catalog, cache: opts.cache, metrics: m}
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *testServer) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// envelope mirrors response.Envelope with the payload left raw.
type envelope struct {
	Status  string          `json:"status"`
	ResData json.RawMessage `json:"resData"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.ResData, out))
	}
	return env
}

func itemIDs(t *testing.T, w *httptest.ResponseRecorder) []int {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []resource.Item
	env := decode(t, w, &items)
	require.Equal(t, "Success", env.Status)
	ids := make([]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

func failureMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var msg string
	env := decode(t, w, &msg)
	require.Equal(t, "Failure", env.Status)
	return msg
}

// brokenCache fails every operation.
type brokenCache struct{}

var errBroken = errors.New("cache down")

func (brokenCache) Get(context.Context, string) (string, error)              { return "", errBroken }
func (brokenCache) Set(context.Context, string, string, time.Duration) error { return errBroken }
func (brokenCache) Close() error                                             { return nil }
