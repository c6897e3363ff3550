package ridegrid

import "math"

// Metric identifies one tracked channel of a recording.
type Metric string

const (
	MetricPower     Metric = "power"
	MetricHeartRate Metric = "heart_rate"
	MetricSpeed     Metric = "speed"
	MetricCadence   Metric = "cadence"
	MetricAltitude  Metric = "altitude"
)

// Metrics lists every tracked metric in display order.
var Metrics = []Metric{
	MetricPower,
	MetricHeartRate,
	MetricSpeed,
	MetricCadence,
	MetricAltitude,
}

// SmoothMethod selects the smoothing algorithm applied to one metric.
type SmoothMethod int

const (
	SmoothMovingAverage SmoothMethod = iota
	SmoothMedian
	SmoothExponential
)

// Smoothing configures one metric's smoothing pass.
type Smoothing struct {
	Method SmoothMethod
	Window int
	Alpha  float64
}

// DefaultAlpha is the exponential smoothing factor used when none is set.
const DefaultAlpha = 0.3

// MetricSpec holds the per-metric rules used across the pipeline: which raw
// values count as readings at all, the hard physical range intersected with
// the statistical outlier fence, the display rounding precision, and the
// default smoothing setup.
type MetricSpec struct {
	Valid     func(v float64) bool
	HardMin   float64
	HardMax   float64
	Decimals  int
	Smoothing Smoothing
}

// specTable is the single per-metric configuration table. Adding a metric is
// a one-place change here plus a constant above.
var specTable = map[Metric]MetricSpec{
	MetricPower: {
		// Zero watts is a real coasting reading.
		Valid:     func(v float64) bool { return isFinite(v) && v >= 0 },
		HardMin:   0,
		HardMax:   2000,
		Decimals:  0,
		Smoothing: Smoothing{Method: SmoothMovingAverage, Window: 3},
	},
	MetricHeartRate: {
		Valid:     func(v float64) bool { return isFinite(v) && v > 0 },
		HardMin:   40,
		HardMax:   220,
		Decimals:  0,
		Smoothing: Smoothing{Method: SmoothMovingAverage, Window: 7},
	},
	MetricSpeed: {
		Valid:     func(v float64) bool { return isFinite(v) && v >= 0 },
		HardMin:   0,
		HardMax:   80,
		Decimals:  1,
		Smoothing: Smoothing{Method: SmoothMedian, Window: 5},
	},
	MetricCadence: {
		Valid:     func(v float64) bool { return isFinite(v) && v >= 0 },
		HardMin:   0,
		HardMax:   200,
		Decimals:  0,
		Smoothing: Smoothing{Method: SmoothMovingAverage, Window: 5},
	},
	MetricAltitude: {
		// Altitude keeps the IQR fence only; no hard physical clamp.
		Valid:     isFinite,
		HardMin:   math.Inf(-1),
		HardMax:   math.Inf(1),
		Decimals:  0,
		Smoothing: Smoothing{Method: SmoothMovingAverage, Window: 9},
	},
}

// Spec returns the configuration for one metric.
func Spec(m Metric) MetricSpec {
	return specTable[m]
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
