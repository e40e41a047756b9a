package modelregistry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	httperr "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/storage/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Registry, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	reg := NewRegistry(store, nil, nil, testConfig, nil)
	ctx := context.Background()

	rec, _, err := reg.Resolve(ctx, "http", "sensor-A", payload(21.5))
	require.NoError(t, err)
	_, _, err = reg.Resolve(ctx, "redis", "Acurite-Tower", map[string]any{"humidity": 40})
	require.NoError(t, err)

	r := gin.New()
	reg.RegisterRoutes(r)
	return r, reg, rec.Fingerprint
}

func TestRegistry_HandleSearch(t *testing.T) {
	r, _, _ := newTestRouter(t)

	tests := []struct {
		name        string
		body        string
		expectedLen int
	}{
		{name: "empty body matches all", body: "", expectedLen: 2},
		{name: "empty filter matches all", body: `{}`, expectedLen: 2},
		{name: "model filter is case-insensitive", body: `{"model":"acurite"}`, expectedLen: 1},
		{name: "source filter", body: `{"source":"HTTP"}`, expectedLen: 1},
		{name: "no match", body: `{"model":"oregon"}`, expectedLen: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/models/search", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, http.StatusOK, resp.Code)
			var got []v1.ModelResource
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			require.Len(t, got, tc.expectedLen)
		})
	}
}

func TestRegistry_HandleFind(t *testing.T) {
	r, _, fp := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/models/sensor-A/"+fp, nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var got v1.ModelResource
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Equal(t, fp, got.Fingerprint)
	require.JSONEq(t, `{"battery_ok":"boolean","id":"string","model":"string","temperature_C":"number"}`, string(got.Structure))

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/models/sensor-A/unknown", nil))
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRegistry_HandleUpdateSensors(t *testing.T) {
	r, _, fp := newTestRouter(t)

	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "updates sensors",
			path:           "/v1/models/sensor-A/" + fp + "/sensors",
			body:           `{"category":"weather","sensors":[{"name":"temperature","property":"temperature_C","unit":"C"}]}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "sensor without property returns 400",
			path:           "/v1/models/sensor-A/" + fp + "/sensors",
			body:           `{"category":"weather","sensors":[{"name":"temperature"}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidJsonError,
		},
		{
			name:           "unknown model returns 404",
			path:           "/v1/models/sensor-Z/" + fp + "/sensors",
			body:           `{"category":"weather"}`,
			expectedStatus: http.StatusNotFound,
			expectedType:   httperr.HttpNotFoundError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)

			if tc.expectedType != "" {
				var body httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				require.Equal(t, tc.expectedType, body.ErrorType)
				return
			}

			var got v1.ModelResource
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			require.Equal(t, "weather", got.Category)
			require.Equal(t, int64(2), got.Version)
			require.Len(t, got.Sensors, 1)
		})
	}
}

func TestRegistry_HandleList(t *testing.T) {
	r, _, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/models", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var got []v1.ModelResource
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got, 2)
}
