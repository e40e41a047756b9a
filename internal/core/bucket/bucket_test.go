package bucket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartEpochMinutes(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 35, 42, 0, time.UTC)
	baseMinutes := base.Unix() / 60

	tests := []struct {
		name  string
		t     time.Time
		width int
		want  int64
	}{
		{"one minute truncates seconds", base, 1, baseMinutes},
		{"five minutes floors to boundary", base, 5, baseMinutes - baseMinutes%5},
		{"exact boundary stays", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), 15, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC).Unix() / 60},
		{"non-positive width treated as one", base, 0, baseMinutes},
		{"before epoch floors downward", time.Unix(-30, 0), 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StartEpochMinutes(tt.t, tt.width))
		})
	}
}

func TestStartEpochMinutes_BoundaryChangesKey(t *testing.T) {
	before := time.Date(2024, 3, 1, 10, 35, 59, 0, time.UTC)
	after := before.Add(time.Second)

	a := Key("fp", StartEpochMinutes(before, 1))
	b := Key("fp", StartEpochMinutes(after, 1))
	require.NotEqual(t, a, b)
	require.Equal(t, "fp#28488155", a)
}

func TestTime_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 35, 0, 0, time.UTC)
	require.Equal(t, ts, Time(StartEpochMinutes(ts, 1)))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"90s", 90 * time.Second, false},
		{"1h", time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"", 0, true},
		{"0d", 0, true},
		{"-5m", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
