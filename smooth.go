package ridegrid

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Smooth returns a same-length smoothed copy of values using the configured
// method. Inputs shorter than the window are returned unchanged: a window
// that cannot fill even once would only distort the series.
func Smooth(values []float64, cfg Smoothing) []float64 {
	out := append([]float64(nil), values...)
	if len(values) == 0 {
		return out
	}

	switch cfg.Method {
	case SmoothMedian:
		if len(values) < cfg.Window {
			return out
		}
		return medianFilter(values, cfg.Window)
	case SmoothExponential:
		alpha := cfg.Alpha
		if alpha <= 0 || alpha > 1 {
			alpha = DefaultAlpha
		}
		return exponentialFilter(values, alpha)
	default:
		if len(values) < cfg.Window {
			return out
		}
		return movingAverage(values, cfg.Window)
	}
}

// movingAverage replaces each value with the mean of a centered window,
// clamped to the array bounds so edge windows shrink instead of padding.
func movingAverage(values []float64, window int) []float64 {
	half := window / 2
	out := make([]float64, len(values))
	for i := range values {
		start := max(0, i-half)
		end := min(len(values), i+half+1)
		out[i] = stat.Mean(values[start:end], nil)
	}
	return out
}

// medianFilter uses the same centered clamped window but takes the window
// median, which drops short spikes without dragging the trend.
func medianFilter(values []float64, window int) []float64 {
	half := window / 2
	out := make([]float64, len(values))
	buf := make([]float64, 0, window)
	for i := range values {
		start := max(0, i-half)
		end := min(len(values), i+half+1)
		buf = append(buf[:0], values[start:end]...)
		out[i] = median(buf)
	}
	return out
}

func exponentialFilter(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// median sorts buf in place.
func median(buf []float64) float64 {
	sort.Float64s(buf)
	mid := len(buf) / 2
	if len(buf)%2 == 0 {
		return (buf[mid-1] + buf[mid]) / 2
	}
	return buf[mid]
}
