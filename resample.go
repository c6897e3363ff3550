package ridegrid

import "sort"

// stepMillis is the finest timeline granularity. The step only grows beyond
// it when a 1-second grid would blow the point budget.
const stepMillis = 1000

// buildTimeline returns the target timestamps: firstTS, then multiples of
// the step, then exactly lastTS (the final step may be shorter). Length
// never exceeds budget.
func buildTimeline(firstTS, lastTS int64, budget int) []int64 {
	span := lastTS - firstTS
	if span <= 0 {
		return []int64{firstTS}
	}
	// The timeline must reach lastTS even under a degenerate budget.
	if budget < 2 {
		budget = 2
	}

	// The loop below emits ceil(span/step) points before the final
	// lastTS append, so the enlargement check counts the same way: an
	// off-step span costs one extra point.
	step := int64(stepMillis)
	if ceilDiv(span, step)+1 > int64(budget) {
		step = ceilDiv(span, int64(budget-1))
	}

	timeline := make([]int64, 0, min(budget, int(span/step)+2))
	for t := firstTS; t < lastTS; t += step {
		timeline = append(timeline, t)
	}
	return append(timeline, lastTS)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// series is one metric's valid readings in pool order, pre-extracted so each
// timeline point resolves with a binary search instead of a pool scan.
type series struct {
	ts []int64
	vs []float64
}

func buildSeries(pool Pool, m Metric) series {
	var s series
	for _, smp := range pool.Samples {
		if v, ok := smp.Values[m]; ok {
			s.ts = append(s.ts, smp.TS)
			s.vs = append(s.vs, v)
		}
	}
	return s
}

// before returns the index of the latest reading at or before t.
func (s series) before(t int64) (int, bool) {
	i := sort.Search(len(s.ts), func(i int) bool { return s.ts[i] > t })
	return i - 1, i > 0
}

// after returns the index of the earliest reading at or after t.
func (s series) after(t int64) (int, bool) {
	i := sort.Search(len(s.ts), func(i int) bool { return s.ts[i] >= t })
	return i, i < len(s.ts)
}

// A resolveFunc is one strategy for producing a value at a target timestamp.
// Strategies run in a fixed order and the first hit wins.
type resolveFunc func(s series, t, maxGap int64) (float64, bool)

var resolveChain = []resolveFunc{
	resolveExact,
	resolveInterpolated,
	resolveNearest,
}

func (s series) at(t, maxGap int64) (float64, bool) {
	for _, resolve := range resolveChain {
		if v, ok := resolve(s, t, maxGap); ok {
			return v, true
		}
	}
	return 0, false
}

// resolveExact matches a reading at precisely t; the value passes through
// untouched.
func resolveExact(s series, t, _ int64) (float64, bool) {
	if i, ok := s.before(t); ok && s.ts[i] == t {
		return s.vs[i], true
	}
	return 0, false
}

// resolveInterpolated linearly interpolates between the bracketing readings
// when they are close enough together to trust the line between them.
func resolveInterpolated(s series, t, maxGap int64) (float64, bool) {
	b, okB := s.before(t)
	a, okA := s.after(t)
	if !okB || !okA {
		return 0, false
	}
	if s.ts[a]-s.ts[b] > maxGap {
		return 0, false
	}
	frac := float64(t-s.ts[b]) / float64(s.ts[a]-s.ts[b])
	return s.vs[b] + (s.vs[a]-s.vs[b])*frac, true
}

// resolveNearest holds the nearest reading's value when the bracket is too
// wide to interpolate, or when only one side exists, provided that reading
// is itself within the gap limit of t.
func resolveNearest(s series, t, maxGap int64) (float64, bool) {
	b, okB := s.before(t)
	a, okA := s.after(t)

	bestDist := int64(-1)
	best := 0.0
	if okB {
		if d := t - s.ts[b]; d <= maxGap {
			bestDist, best = d, s.vs[b]
		}
	}
	if okA {
		if d := s.ts[a] - t; d <= maxGap && (bestDist < 0 || d < bestDist) {
			bestDist, best = d, s.vs[a]
		}
	}
	return best, bestDist >= 0
}

// Resample builds the unified timeline over the pool's span and resolves
// every (timestamp, metric) cell. Metrics with no valid reading anywhere are
// omitted from the grid and from the returned availability list entirely.
func Resample(pool Pool, cfg Config) ([]Frame, []Metric) {
	if len(pool.Samples) == 0 {
		return nil, nil
	}

	var available []Metric
	perMetric := make(map[Metric]series, len(Metrics))
	for _, m := range Metrics {
		s := buildSeries(pool, m)
		if len(s.ts) == 0 {
			continue
		}
		available = append(available, m)
		perMetric[m] = s
	}

	timeline := buildTimeline(pool.FirstTS, pool.LastTS, cfg.PointBudget)
	frames := make([]Frame, len(timeline))
	for i, t := range timeline {
		values := make(map[Metric]float64, len(available))
		for _, m := range available {
			if v, ok := perMetric[m].at(t, cfg.MaxGapMillis); ok {
				values[m] = v
			}
		}
		frames[i] = Frame{TS: t, Values: values}
	}
	return frames, available
}
