//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
)

func TestCoreAPI_SweeperDrainWritesSuppressedCounts(t *testing.T) {
	h := startHarness(t, harnessOptions{suppressionTTL: time.Hour})
	defer h.close(t)

	require.NoError(t, resetDatabase(t, h.db))

	t.Run("start sweeper over http", func(t *testing.T) {
		status, body := postJSON(t, h.client, h.baseURL+"/v1/services/sweeper/start", nil)
		require.Equal(t, http.StatusAccepted, status, string(body))
		require.Eventually(t, h.scheduler.IsRunning, 2*time.Second, 20*time.Millisecond)
	})

	reading := map[string]any{"model": "sensor-B", "id": 42, "battery_ok": 1}

	var last v1.IngestResult
	for i := 0; i < 5; i++ {
		status, body := postJSON(t, h.client, h.baseURL+"/v1/observations", reading)
		require.Equal(t, http.StatusAccepted, status, string(body))
		require.NoError(t, json.Unmarshal(body, &last))
	}
	require.Equal(t, int64(5), last.BucketCount)

	t.Run("suppressed repeats are not yet durable", func(t *testing.T) {
		require.Equal(t, int64(1), bucketCount(t, h.db, last.Fingerprint))
	})

	t.Run("stopping the sweeper drains pending counts", func(t *testing.T) {
		status, body := postJSON(t, h.client, h.baseURL+"/v1/services/sweeper/stop", nil)
		require.Equal(t, http.StatusAccepted, status, string(body))
		require.Eventually(t, func() bool { return !h.scheduler.IsRunning() }, 2*time.Second, 20*time.Millisecond)
		require.Eventually(t, func() bool {
			return bucketCount(t, h.db, last.Fingerprint) == 5
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("unknown service is accepted and ignored", func(t *testing.T) {
		status, body := postJSON(t, h.client, h.baseURL+"/v1/services/nope/start", nil)
		require.Equal(t, http.StatusAccepted, status, string(body))
	})
}
