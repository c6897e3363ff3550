package fitsource

import (
	"math"
	"testing"
	"time"

	"github.com/tormoder/fit"

	"github.com/ridegrid/ridegrid"
)

func TestConvertRecordExtractsMetrics(t *testing.T) {
	msg := fit.NewRecordMsg()
	msg.Power = 200
	msg.HeartRate = 150
	msg.Cadence = 90
	msg.Speed = 5000      // 5.0 m/s after scale 1000
	msg.Altitude = 3000   // 100 m after scale 5 offset 500
	msg.Distance = 100000 // 1000 m after scale 100
	msg.Temperature = 21

	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	sample := convertRecord(msg, ts)

	if sample.TS != ts.UnixMilli() {
		t.Fatalf("timestamp: got %d, want %d", sample.TS, ts.UnixMilli())
	}
	if v := sample.Values[ridegrid.MetricPower]; v != 200 {
		t.Fatalf("power: got %v, want 200", v)
	}
	if v := sample.Values[ridegrid.MetricHeartRate]; v != 150 {
		t.Fatalf("heart rate: got %v, want 150", v)
	}
	if v := sample.Values[ridegrid.MetricCadence]; v != 90 {
		t.Fatalf("cadence: got %v, want 90", v)
	}
	if v := sample.Values[ridegrid.MetricSpeed]; v != 5.0 {
		t.Fatalf("speed: got %v, want 5.0", v)
	}
	if v := sample.Values[ridegrid.MetricAltitude]; v != 100 {
		t.Fatalf("altitude: got %v, want 100", v)
	}
	if sample.Distance == nil || *sample.Distance != 1000 {
		t.Fatalf("distance: got %v, want 1000", sample.Distance)
	}
	if sample.Temperature == nil || *sample.Temperature != 21 {
		t.Fatalf("temperature: got %v, want 21", sample.Temperature)
	}
}

func TestExtractorTableCoversEveryMetric(t *testing.T) {
	for _, m := range ridegrid.Metrics {
		if extractors[m] == nil {
			t.Fatalf("metric %s has no record extractor", m)
		}
	}
}

func TestConvertRecordSkipsInvalidSentinels(t *testing.T) {
	// A fresh record message carries the FIT invalid sentinel in every
	// field.
	msg := fit.NewRecordMsg()
	sample := convertRecord(msg, time.Unix(1000, 0))

	if len(sample.Values) != 0 {
		t.Fatalf("all-invalid record must produce no metric values, got %v", sample.Values)
	}
	if sample.Distance != nil || sample.Temperature != nil {
		t.Fatalf("invalid distance/temperature must stay nil")
	}
}

func TestConvertRecordInvalidPowerSentinel(t *testing.T) {
	msg := fit.NewRecordMsg()
	msg.Power = math.MaxUint16
	msg.HeartRate = 140
	sample := convertRecord(msg, time.Unix(1000, 0))

	if _, ok := sample.Values[ridegrid.MetricPower]; ok {
		t.Fatalf("power sentinel must not be read as 65535 watts")
	}
	if v := sample.Values[ridegrid.MetricHeartRate]; v != 140 {
		t.Fatalf("heart rate: got %v, want 140", v)
	}
}

func TestValidTimeOrZero(t *testing.T) {
	if got := validTimeOrZero(time.Time{}); !got.IsZero() {
		t.Fatalf("zero time must stay zero")
	}
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if got := validTimeOrZero(ts); !got.Equal(ts) {
		t.Fatalf("valid time must pass through")
	}
}
