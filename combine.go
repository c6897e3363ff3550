package ridegrid

// Config tunes the combine pipeline. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// PointBudget caps the timeline length regardless of span. Budgets
	// below 2 are raised to 2 so the timeline can still reach both span
	// endpoints.
	PointBudget int
	// MaxGapMillis is the widest bracket (or neighbor distance) still
	// trusted for interpolation and nearest-neighbor holds.
	MaxGapMillis int64
	// Smoothing overrides the per-metric smoothing defaults.
	Smoothing map[Metric]Smoothing
}

// DefaultConfig returns the standard pipeline tuning: 1-second grid capped
// at 3600 points, 30-second interpolation gap, per-metric smoothing from the
// metric table.
func DefaultConfig() Config {
	return Config{
		PointBudget:  3600,
		MaxGapMillis: 30_000,
	}
}

func (c Config) smoothing(m Metric) Smoothing {
	if s, ok := c.Smoothing[m]; ok {
		return s
	}
	return Spec(m).Smoothing
}

// Result is the combined output: the time-aligned grid plus its summary,
// both sorted ascending by timestamp and ready for the rendering layer.
type Result struct {
	Frames  []Frame
	Summary Summary
}

// Combine runs the full pipeline over any number of sources: clean each
// source per metric, merge onto one time axis, resample to the bounded
// timeline, aggregate. It is a pure function of its inputs; concurrent calls
// with disjoint inputs are safe. Zero sources or zero samples yield the
// explicit empty Result, never an error.
func Combine(cfg Config, sources ...[]Sample) Result {
	cleaned := make([][]Sample, len(sources))
	for i, src := range sources {
		cleaned[i] = CleanSource(src, cfg)
	}

	pool := Merge(cleaned...)
	frames, available := Resample(pool, cfg)
	summary := Summarize(frames, available, pool)
	summary.DistanceMeters = totalDistance(sources)
	summary.AvgTemperature = averageTemperature(sources)

	return Result{Frames: frames, Summary: summary}
}

// totalDistance sums each source's cumulative distance span. Distance is
// monotonic within a source but samples arrive in any order, so the span is
// max minus min rather than last minus first.
func totalDistance(sources [][]Sample) float64 {
	total := 0.0
	for _, src := range sources {
		lo, hi, seen := 0.0, 0.0, false
		for _, s := range src {
			if s.Distance == nil {
				continue
			}
			d := *s.Distance
			if !seen {
				lo, hi, seen = d, d, true
				continue
			}
			if d < lo {
				lo = d
			}
			if d > hi {
				hi = d
			}
		}
		if seen {
			total += hi - lo
		}
	}
	return total
}

func averageTemperature(sources [][]Sample) *float64 {
	sum, count := 0.0, 0
	for _, src := range sources {
		for _, s := range src {
			if s.Temperature != nil {
				sum += *s.Temperature
				count++
			}
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}
