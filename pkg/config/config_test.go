package config

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FN_STR", "suva")
	t.Setenv("FN_INT", " 42 ")
	t.Setenv("FN_BAD_INT", "4.2")
	t.Setenv("FN_BOOL", "true")
	t.Setenv("FN_DUR", "1m30s")
	t.Setenv("FN_BAD_DUR", "soon")

	assert.Equal(t, "suva", GetEnvString("FN_STR", "nadi"))
	assert.Equal(t, "nadi", GetEnvString("FN_UNSET", "nadi"))
	assert.Equal(t, 42, GetEnvInt("FN_INT", 1))
	assert.Equal(t, 1, GetEnvInt("FN_BAD_INT", 1))
	assert.True(t, GetEnvBool("FN_BOOL", false))
	assert.False(t, GetEnvBool("FN_UNSET", false))
	assert.Equal(t, 90*time.Second, GetEnvDuration("FN_DUR", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("FN_BAD_DUR", time.Second))
}

func TestLoadWithFallback(t *testing.T) {
	inRange := func(v int) error { return ValidateRange(v, 1024, 65535) }

	tests := []struct {
		name         string
		value        string
		want         int
		wantFallback bool
	}{
		{name: "unset", value: "", want: 9091},
		{name: "valid", value: "9191", want: 9191},
		{name: "unparseable", value: "ninety", want: 9091, wantFallback: true},
		{name: "out of range", value: "80", want: 9091, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FN_PORT", tt.value)
			got := LoadInt("FN_PORT", 9091, inRange)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, got.Warning, "FN_PORT")
			} else {
				assert.Empty(t, got.Warning)
			}
		})
	}
}

func TestLoadString_NilValidator(t *testing.T) {
	t.Setenv("FN_ZONE", "Pacific/Fiji")
	got := LoadString("FN_ZONE", "UTC", nil)
	assert.Equal(t, "Pacific/Fiji", got.Value)
	assert.False(t, got.FallbackApplied)
}

func TestLoadDuration_ValidatorRejects(t *testing.T) {
	t.Setenv("FN_TIMEOUT", "-5m")
	got := LoadDuration("FN_TIMEOUT", time.Minute, ValidateNonNegativeDuration)
	assert.Equal(t, time.Minute, got.Value)
	assert.True(t, got.FallbackApplied)
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "cron every six hours", err: ValidateCronSchedule("0 */6 * * *")},
		{name: "cron weekdays", err: ValidateCronSchedule("30 9 * * 1-5")},
		{name: "cron empty", err: ValidateCronSchedule(""), wantErr: true},
		{name: "cron six fields", err: ValidateCronSchedule("0 0 */6 * * *"), wantErr: true},
		{name: "cron words", err: ValidateCronSchedule("every day"), wantErr: true},
		{name: "timezone fiji", err: ValidateTimezone("Pacific/Fiji")},
		{name: "timezone utc", err: ValidateTimezone("UTC")},
		{name: "timezone empty", err: ValidateTimezone(""), wantErr: true},
		{name: "timezone unknown", err: ValidateTimezone("Mars/Olympus"), wantErr: true},
		{name: "range inside", err: ValidateRange(5, 1, 10)},
		{name: "range edge", err: ValidateRange(10, 1, 10)},
		{name: "range below", err: ValidateRange(0, 1, 10), wantErr: true},
		{name: "range inverted", err: ValidateRange(5, 10, 1), wantErr: true},
		{name: "range duration", err: ValidateRange(30*time.Minute, time.Minute, 4*time.Hour)},
		{name: "duration zero", err: ValidateNonNegativeDuration(0)},
		{name: "duration negative", err: ValidateNonNegativeDuration(-time.Second), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, tt.err)
			} else {
				assert.NoError(t, tt.err)
			}
		})
	}
}

func TestLoadMetrics(t *testing.T) {
	m := newLoadMetrics(promauto.With(prometheus.NewRegistry()), "test")

	m.Observe("timezone", false)
	m.Observe("cron_schedule", true)
	m.Observe("cron_schedule", true)
	m.Loaded(true)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("timezone")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))
	assert.Greater(t, testutil.ToFloat64(m.LoadTimestamp), 0.0)

	m.Loaded(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))
}
