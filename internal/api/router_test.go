package api

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"point-set-service/internal/adapters/repositories"
	"point-set-service/internal/api/dto"
	"point-set-service/internal/services"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, maxBody int64) *httptest.Server {
	t.Helper()

	svc := services.NewPointSetService(repositories.NewMemoryPointSetRepository(), nil)
	srv := httptest.NewServer(NewRouter(svc, maxBody))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	res := do(t, http.MethodGet, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, res))

	res = do(t, http.MethodPost, srv.URL+"/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-1")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "trace-1", res.Header.Get("X-Request-ID"))
}

func TestPointSetLifecycle(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	res := do(t, http.MethodPost, srv.URL+"/point-sets",
		`{"name":"stations","frame":"geographic","geographic":[{"lon":-117.2,"lat":32.9,"dep":0.0}]}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decode[dto.CreatePointSetResponse](t, res)
	assert.Equal(t, 1, created.SetID)
	assert.Equal(t, "/point-sets/1", res.Header.Get("Location"))

	res = do(t, http.MethodPost, srv.URL+"/point-sets",
		`{"name":"mesh","frame":"cartesian","cartesian":[{"x":1.0,"y":2.0,"z":3.0},{"x":4,"y":5,"z":6}]}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res = do(t, http.MethodGet, srv.URL+"/point-sets/1", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	geo := decode[dto.PointSetResponse](t, res)
	assert.Equal(t, "stations", geo.Name)
	assert.Equal(t, []dto.GeographicPoint{{Lon: -117.2, Lat: 32.9, Dep: 0.0}}, geo.Geographic)
	assert.Nil(t, geo.Cartesian)

	res = do(t, http.MethodGet, srv.URL+"/point-sets/2", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	cart := decode[dto.PointSetResponse](t, res)
	assert.Equal(t, []dto.CartesianPoint{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}, cart.Cartesian)

	res = do(t, http.MethodGet, srv.URL+"/point-sets", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	list := decode[dto.ListPointSetsResponse](t, res)
	require.Len(t, list.PointSets, 2)
	assert.Equal(t, 1, list.PointSets[0].Count)
	assert.Equal(t, 2, list.PointSets[1].Count)

	res = do(t, http.MethodDelete, srv.URL+"/point-sets/1", "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res = do(t, http.MethodGet, srv.URL+"/point-sets/1", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = do(t, http.MethodDelete, srv.URL+"/point-sets/1", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCreatePointSetRejections(t *testing.T) {
	srv := newTestServer(t, 256)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{"name":`, http.StatusBadRequest},
		{"unknown field", `{"name":"a","frame":"cartesian","color":"red"}`, http.StatusBadRequest},
		{"trailing object", `{"name":"a","frame":"cartesian"}{}`, http.StatusBadRequest},
		{"blank name", `{"name":" ","frame":"cartesian"}`, http.StatusBadRequest},
		{"unknown frame", `{"name":"a","frame":"polar"}`, http.StatusBadRequest},
		{"mixed frames", `{"name":"a","frame":"cartesian","geographic":[{"lon":1,"lat":2,"dep":3}]}`, http.StatusBadRequest},
		{"too large", `{"name":"a","frame":"cartesian","cartesian":[` + strings.Repeat(`{"x":1,"y":2,"z":3},`, 20) + `{"x":0,"y":0,"z":0}]}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, http.MethodPost, srv.URL+"/point-sets", tt.body)
			assert.Equal(t, tt.status, res.StatusCode)
		})
	}
}

func TestCreatePointSetDuplicate(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	body := `{"name":"dup","frame":"Cartesian"}`
	res := do(t, http.MethodPost, srv.URL+"/point-sets", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res = do(t, http.MethodPost, srv.URL+"/point-sets", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestPointSetItemBadRequests(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	res := do(t, http.MethodGet, srv.URL+"/point-sets/abc", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = do(t, http.MethodGet, srv.URL+"/point-sets/0", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = do(t, http.MethodPut, srv.URL+"/point-sets/abc", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res = do(t, http.MethodPut, srv.URL+"/point-sets/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, "GET, DELETE", res.Header.Get("Allow"))

	res = do(t, http.MethodPatch, srv.URL+"/point-sets", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	res := do(t, http.MethodGet, srv.URL+"/point-sets", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var buf strings.Builder
	_, err := io.Copy(&buf, res.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "obs_operation_duration_seconds")
}

func TestPointSetExactValuesOverHTTP(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	res := do(t, http.MethodPost, srv.URL+"/point-sets",
		`{"name":"edges","frame":"cartesian","cartesian":[`+
			`{"x":-0,"y":5e-324,"z":1.7976931348623157e308},`+
			`{"x":"NaN","y":"+Inf","z":"-Inf"}]}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	id := decode[dto.CreatePointSetResponse](t, res).SetID

	res = do(t, http.MethodGet, srv.URL+"/point-sets/"+strconv.Itoa(id), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	got := decode[dto.PointSetResponse](t, res)
	require.Len(t, got.Cartesian, 2)

	want := [][3]float64{
		{math.Copysign(0, -1), math.SmallestNonzeroFloat64, math.MaxFloat64},
		{math.NaN(), math.Inf(1), math.Inf(-1)},
	}
	for i, p := range got.Cartesian {
		for j, v := range []dto.Float{p.X, p.Y, p.Z} {
			assert.Equal(t, math.Float64bits(want[i][j]), math.Float64bits(float64(v)), "point %d field %d", i, j)
		}
	}
}

func TestCreatePointSetRejectsNonNumericCoordinate(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	res := do(t, http.MethodPost, srv.URL+"/point-sets",
		`{"name":"bad","frame":"geographic","geographic":[{"lon":"east","lat":0,"dep":0}]}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
