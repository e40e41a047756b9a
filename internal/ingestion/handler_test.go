package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	httperr "github.com/aevon-lab/devicescout/internal/core/errors"
	ingestionmocks "github.com/aevon-lab/devicescout/internal/mocks/ingestion"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIngestHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := []byte(`{"time":"2025-03-01 10:00:10","model":"Acurite-Tower","id":1234,"channel":"A","temperature_C":21.5,"humidity":40}`)

	mockProcessor := ingestionmocks.NewProcessor(t)
	mockProcessor.EXPECT().
		Process(mock.Anything, SourceHTTP, mock.MatchedBy(func(o *v1.Observation) bool {
			return o.Model == "Acurite-Tower" &&
				o.ID == "1234" &&
				o.Properties["channel"] == "A" &&
				o.Properties["humidity"] == int64(40)
		})).
		Return(v1.IngestResult{Fingerprint: "fp-1", BucketStart: 29011860, BucketCount: 1}, nil).
		Once()

	svc := NewService(mockProcessor, 1)

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/v1/observations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusAccepted, resp.Code)
	var result v1.IngestResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "fp-1", result.Fingerprint)
	require.Equal(t, int64(1), result.BucketCount)
}

func TestIngestHandler_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockProcessor := ingestionmocks.NewProcessor(t)
	svc := NewService(mockProcessor, 1)

	r := gin.New()
	svc.RegisterRoutes(r)

	for _, body := range []string{`{"model":`, `[1,2,3]`, `{"model":"m","id":true}`} {
		req := httptest.NewRequest(http.MethodPost, "/v1/observations", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusBadRequest, resp.Code, body)
		var errResp httperr.ErrorResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
		require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
	}
}

func TestIngestHandler_FailureMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "validation failure returns 400",
			err:            httperr.Invalid("id is required"),
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidRequestError,
		},
		{
			name:           "store failure returns 503",
			err:            httperr.Transient("failed to record observation", errors.New("connection reset")),
			expectedStatus: http.StatusServiceUnavailable,
			expectedType:   httperr.HttpStoreUnavailable,
		},
		{
			name:           "unclassified failure returns 500",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockProcessor := ingestionmocks.NewProcessor(t)
			mockProcessor.EXPECT().
				Process(mock.Anything, SourceHTTP, mock.Anything).
				Return(v1.IngestResult{}, tc.err).
				Once()

			svc := NewService(mockProcessor, 1)
			r := gin.New()
			svc.RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodPost, "/v1/observations", bytes.NewReader([]byte(`{"model":"sensor-A"}`)))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, tc.expectedStatus, resp.Code)
			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, tc.expectedType, errResp.ErrorType)
		})
	}
}

func TestIngestHandler_BodySizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockProcessor := ingestionmocks.NewProcessor(t)
	svc := NewService(mockProcessor, 1)
	svc.maxBodySizeBytes = 10 // Very small limit

	r := gin.New()
	svc.RegisterRoutes(r)

	body := []byte(`{"model":"sensor-A","id":"D1","temperature_C":21.5}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/observations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}
