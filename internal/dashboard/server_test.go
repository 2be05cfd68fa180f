package dashboard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ess-tools/atlas-cli/internal/config"
	"github.com/ess-tools/atlas-cli/internal/model"
)

func testObservations() []model.Observation {
	return []model.Observation{
		{ID: 1, RegionCode: "SI042", Region: "Gorenjska", Values: map[string]float64{"stflife": 8}},
		{ID: 2, RegionCode: "SI042", Region: "Gorenjska", Values: map[string]float64{"stflife": 6}},
		{ID: 3, RegionCode: "SI033", Region: "Koroska", Values: map[string]float64{"stflife": 4}},
		{ID: 4, RegionCode: "SI035", Region: "Zasavska", Values: map[string]float64{"stflife": 7}},
	}
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.ServerConfig{EventRateLimit: 1000, EventBurst: 1000}
	srv := New(testObservations(), "stflife", "Life satisfaction", cfg)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])
}

func TestMapClickToggles(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Gorenjska"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode(t, resp)
	assert.Equal(t, []any{"Gorenjska"}, out["selected"])
	assert.Equal(t, float64(2), out["filtered"])

	// A second click on the same region clears the selection.
	resp = postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Gorenjska"})
	out = decode(t, resp)
	assert.Empty(t, out["selected"])
	assert.Equal(t, float64(4), out["filtered"])
}

func TestObservationsFollowSelection(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Koroska"}).Body.Close()

	resp, err := http.Get(ts.URL + "/api/observations")
	require.NoError(t, err)
	out := decode(t, resp)
	assert.Equal(t, float64(1), out["count"])

	obs, ok := out["observations"].([]any)
	require.True(t, ok)
	require.Len(t, obs, 1)
	first, ok := obs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Koroska", first["region"])
}

func TestBrushReplacesSelection(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Zasavska"}).Body.Close()

	// Brush indices refer to the full observation set, so the same brush
	// always names the same rows regardless of the prior selection.
	resp := postJSON(t, ts.URL+"/api/events/brush", map[string][]int{"indices": {3}})
	out := decode(t, resp)
	assert.Equal(t, []any{"Zasavska"}, out["selected"])

	resp = postJSON(t, ts.URL+"/api/events/brush", map[string][]int{"indices": {3}})
	out = decode(t, resp)
	assert.Equal(t, []any{"Zasavska"}, out["selected"])

	// Empty brush clears everything.
	resp = postJSON(t, ts.URL+"/api/events/brush", map[string][]int{"indices": {}})
	out = decode(t, resp)
	assert.Empty(t, out["selected"])
	assert.Equal(t, float64(4), out["filtered"])
}

func TestPointClickStaleIndexIgnored(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Koroska"}).Body.Close()

	// Only one point is in view now; index 3 refers to the old plot.
	idx := 3
	resp := postJSON(t, ts.URL+"/api/events/point-click", map[string]*int{"index": &idx})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode(t, resp)
	assert.Equal(t, []any{"Koroska"}, out["selected"])
}

func TestReset(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Gorenjska"}).Body.Close()
	postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Koroska"}).Body.Close()

	resp := postJSON(t, ts.URL+"/api/events/reset", nil)
	out := decode(t, resp)
	assert.Empty(t, out["selected"])
	assert.Equal(t, float64(4), out["filtered"])
}

func TestSummaryEndpoint(t *testing.T) {
	ts := testServer(t)

	postJSON(t, ts.URL+"/api/events/map-click", map[string]string{"region": "Gorenjska"}).Body.Close()

	resp, err := http.Get(ts.URL + "/api/summary")
	require.NoError(t, err)
	out := decode(t, resp)
	assert.Equal(t, "stflife", out["variable"])
	assert.Contains(t, out["text"], "Gorenjska")

	summaries, ok := out["summaries"].([]any)
	require.True(t, ok)
	require.Len(t, summaries, 1)
	s := summaries[0].(map[string]any)
	assert.Equal(t, "Gorenjska", s["region"])
	assert.Equal(t, float64(2), s["count"])
	assert.InDelta(t, 7.0, s["mean"].(float64), 1e-9)
}

func TestRegionsEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/regions")
	require.NoError(t, err)
	out := decode(t, resp)
	regions, ok := out["regions"].([]any)
	require.True(t, ok)
	assert.Len(t, regions, 3)
}

func TestEventRateLimit(t *testing.T) {
	cfg := config.ServerConfig{EventRateLimit: 1, EventBurst: 1}
	srv := New(testObservations(), "stflife", "Life satisfaction", cfg)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	resp := postJSON(t, ts.URL+"/api/events/reset", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/events/reset", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestMapClickRequiresRegion(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/api/events/map-click", map[string]string{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
