package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/devicescout/internal/core/cache"
	"github.com/aevon-lab/devicescout/internal/ingestion"
	"github.com/aevon-lab/devicescout/internal/observation"
	"github.com/aevon-lab/devicescout/internal/recommendation"
	"github.com/aevon-lab/devicescout/internal/sweeper"
)

var (
	_ cache.Recorder           = (*Metrics)(nil)
	_ observation.Recorder     = (*Metrics)(nil)
	_ recommendation.Recorder  = (*Metrics)(nil)
	_ ingestion.SourceRecorder = (*Metrics)(nil)
	_ sweeper.Recorder         = (*Metrics)(nil)
)

func TestMetricsRecordLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CacheResult("models", "l1")
	m.CacheResult("models", "l1")
	m.CacheResult("models", "loader")
	m.Observation(observation.OutcomeSuppressed)
	m.Recommendation("upserted")
	m.SourceMessage(ingestion.MessageRejected)

	require.Equal(t, 2.0, testutil.ToFloat64(m.CacheResults.WithLabelValues("models", "l1")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CacheResults.WithLabelValues("models", "loader")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Observations.WithLabelValues(observation.OutcomeSuppressed)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Recommendations.WithLabelValues("upserted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SourceMessages.WithLabelValues(ingestion.MessageRejected)))
}

func TestMetricsSweeperRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SweeperRun(sweeper.TaskPurgeBuckets, 7, nil)
	m.SweeperRun(sweeper.TaskPurgeBuckets, 0, errors.New("db down"))

	require.Equal(t, 1.0, testutil.ToFloat64(m.SweeperRuns.WithLabelValues(sweeper.TaskPurgeBuckets, "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SweeperRuns.WithLabelValues(sweeper.TaskPurgeBuckets, "error")))
	require.Equal(t, 7.0, testutil.ToFloat64(m.SweeperAffected.WithLabelValues(sweeper.TaskPurgeBuckets)))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
