// Package fitsource adapts decoded FIT activity files into ridegrid sample
// streams. It owns the decoder-side validation: a recording that carries no
// recognized metric at all is rejected here, before the combine pipeline
// ever sees it.
package fitsource

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tormoder/fit"

	"github.com/ridegrid/ridegrid"
)

// Recording is one decoded source: its samples sorted by timestamp plus the
// set of metrics the file actually carried.
type Recording struct {
	Name    string
	Sport   string
	Samples []ridegrid.Sample
	Metrics []ridegrid.Metric
}

// Load decodes a FIT activity file from disk.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()
	return Decode(filepath.Base(path), f)
}

// Decode decodes a FIT activity stream into a Recording.
func Decode(name string, r io.Reader) (*Recording, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}

	rec := &Recording{Name: name}
	if len(activity.Sessions) > 0 {
		rec.Sport = fmt.Sprint(activity.Sessions[0].Sport)
	}

	seen := make(map[ridegrid.Metric]bool)
	for _, msg := range activity.Records {
		if msg == nil {
			continue
		}
		ts := validTimeOrZero(msg.Timestamp)
		if ts.IsZero() {
			continue
		}
		sample := convertRecord(msg, ts)
		for m := range sample.Values {
			seen[m] = true
		}
		rec.Samples = append(rec.Samples, sample)
	}

	sort.SliceStable(rec.Samples, func(i, j int) bool {
		return rec.Samples[i].TS < rec.Samples[j].TS
	})

	for _, m := range ridegrid.Metrics {
		if seen[m] {
			rec.Metrics = append(rec.Metrics, m)
		}
	}
	if len(rec.Metrics) == 0 {
		return nil, fmt.Errorf("recording %s carries no recognized metrics", name)
	}
	return rec, nil
}

// extractors maps each metric to its record reader. FIT marks unset fields
// with an all-ones sentinel per field width; the scaled getters return NaN
// for them.
var extractors = map[ridegrid.Metric]func(*fit.RecordMsg) (float64, bool){
	ridegrid.MetricPower: func(msg *fit.RecordMsg) (float64, bool) {
		return float64(msg.Power), msg.Power != math.MaxUint16
	},
	ridegrid.MetricHeartRate: func(msg *fit.RecordMsg) (float64, bool) {
		return float64(msg.HeartRate), msg.HeartRate != math.MaxUint8
	},
	ridegrid.MetricSpeed:    extractSpeed,
	ridegrid.MetricCadence:  extractCadence,
	ridegrid.MetricAltitude: extractAltitude,
}

func convertRecord(msg *fit.RecordMsg, ts time.Time) ridegrid.Sample {
	sample := ridegrid.Sample{
		TS:     ts.UnixMilli(),
		Values: make(map[ridegrid.Metric]float64, len(ridegrid.Metrics)),
	}

	for _, m := range ridegrid.Metrics {
		if v, ok := extractors[m](msg); ok {
			sample.Values[m] = v
		}
	}

	if d := msg.GetDistanceScaled(); isFinite(d) && d > 0 {
		sample.Distance = &d
	}
	if msg.Temperature != math.MaxInt8 {
		t := float64(msg.Temperature)
		sample.Temperature = &t
	}
	return sample
}

// extractCadence prefers the high-resolution cadence_256 field and falls
// back to the whole-rpm one.
func extractCadence(msg *fit.RecordMsg) (float64, bool) {
	cad256 := msg.GetCadence256Scaled()
	if isFinite(cad256) && cad256 > 0 {
		return cad256, true
	}
	return float64(msg.Cadence), msg.Cadence != math.MaxUint8
}

// extractSpeed prefers the enhanced_speed field and falls back to the
// 16-bit one.
func extractSpeed(msg *fit.RecordMsg) (float64, bool) {
	speed := msg.GetEnhancedSpeedScaled()
	if isFinite(speed) && speed >= 0 {
		return speed, true
	}
	speed = msg.GetSpeedScaled()
	return speed, isFinite(speed) && speed >= 0
}

// extractAltitude applies the FIT record altitude scaling (scale 5, offset
// 500). A raw zero reads as no data, matching how barometric units report.
func extractAltitude(msg *fit.RecordMsg) (float64, bool) {
	if msg.Altitude == math.MaxUint16 || msg.Altitude == 0 {
		return 0, false
	}
	return float64(msg.Altitude)/5.0 - 500.0, true
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
