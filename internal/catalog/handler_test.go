package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/devicescout/internal/core/storage"
	storagemocks "github.com/aevon-lab/devicescout/internal/mocks/storage"
)

func TestService_HandleFind_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	device := &storage.KnownDevice{
		Fingerprint: "fp-1",
		DeviceID:    "D1",
		Model:       "sensor-A",
		Name:        "Porch",
		CreatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Version:     1,
	}

	tests := []struct {
		name           string
		configure      func(devices *storagemocks.KnownDeviceStore)
		expectedStatus int
	}{
		{
			name: "found returns 200",
			configure: func(devices *storagemocks.KnownDeviceStore) {
				devices.EXPECT().FindKnownDevice(mock.Anything, "fp-1").Return(device, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing returns 404",
			configure: func(devices *storagemocks.KnownDeviceStore) {
				devices.EXPECT().FindKnownDevice(mock.Anything, "fp-1").Return(nil, storage.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "store error returns 503",
			configure: func(devices *storagemocks.KnownDeviceStore) {
				devices.EXPECT().FindKnownDevice(mock.Anything, "fp-1").Return(nil, errors.New("i/o timeout")).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			devices := storagemocks.NewKnownDeviceStore(t)
			tc.configure(devices)

			svc := NewService(devices)
			r := gin.New()
			svc.RegisterRoutes(r)

			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/known-devices/fp-1", nil))

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)

			if tc.expectedStatus == http.StatusOK {
				var got storage.KnownDevice
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
				require.Equal(t, "Porch", got.Name)
			}
		})
	}
}

func TestService_HandleList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	devices := storagemocks.NewKnownDeviceStore(t)
	devices.EXPECT().ListKnownDevices(mock.Anything).Return([]*storage.KnownDevice{
		{Fingerprint: "fp-1", Name: "Porch"},
		{Fingerprint: "fp-2", Name: "Garage"},
	}, nil).Once()

	svc := NewService(devices)
	r := gin.New()
	svc.RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/known-devices", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var got []storage.KnownDevice
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got, 2)
}
