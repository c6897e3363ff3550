package ridegrid

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stat holds one metric's aggregate over the combined grid, rounded to the
// metric's display precision.
type Stat struct {
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// Summary is the aggregate view handed to the rendering layer alongside the
// grid. Metrics with no resolved values are missing from Stats rather than
// reported as zero. DistanceMeters and AvgTemperature come from source-only
// fields and are absent (zero / nil) when no source carried them.
type Summary struct {
	DurationSeconds float64         `json:"duration_s"`
	Available       []Metric        `json:"available_metrics"`
	Stats           map[Metric]Stat `json:"stats"`
	ElevationGain   float64         `json:"elevation_gain_m"`
	DistanceMeters  float64         `json:"distance_m"`
	AvgTemperature  *float64        `json:"avg_temperature_c,omitempty"`
}

// Summarize computes per-metric avg/max/min over the non-absent grid values
// plus the derived elevation gain. Absent cells are excluded from the
// aggregates, never counted as zero.
func Summarize(frames []Frame, available []Metric, pool Pool) Summary {
	sum := Summary{
		DurationSeconds: pool.DurationSeconds(),
		Available:       available,
		Stats:           make(map[Metric]Stat, len(available)),
	}

	for _, m := range available {
		values := collectColumn(frames, m)
		if len(values) == 0 {
			continue
		}
		dec := Spec(m).Decimals
		sum.Stats[m] = Stat{
			Avg: roundTo(stat.Mean(values, nil), dec),
			Max: roundTo(floats.Max(values), dec),
			Min: roundTo(floats.Min(values), dec),
		}
	}

	sum.ElevationGain = elevationGain(collectColumn(frames, MetricAltitude))
	return sum
}

func collectColumn(frames []Frame, m Metric) []float64 {
	var values []float64
	for _, f := range frames {
		if v, ok := f.Values[m]; ok {
			values = append(values, v)
		}
	}
	return values
}

// elevationGain sums the positive deltas of the chronological altitude
// series. Descents never subtract, so the result is always >= 0.
func elevationGain(altitudes []float64) float64 {
	gain := 0.0
	for i := 1; i < len(altitudes); i++ {
		if d := altitudes[i] - altitudes[i-1]; d > 0 {
			gain += d
		}
	}
	return gain
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
