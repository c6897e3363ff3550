package ridegrid

// CleanMetric rewrites one metric across a source's samples: the present and
// valid values are outlier-filtered then smoothed, and the smoothed values
// are written back in order onto the positions whose value survived the
// filter. Positions whose value was rejected (or failed the validity rule)
// lose the metric; samples that never carried it stay without it. Timestamps
// and every other metric are untouched. The input slice is not mutated.
func CleanMetric(samples []Sample, m Metric, spec MetricSpec, smoothing Smoothing) []Sample {
	out := cloneSamples(samples)

	positions := make([]int, 0, len(samples))
	values := make([]float64, 0, len(samples))
	for i, s := range samples {
		v, ok := s.Values[m]
		if !ok {
			continue
		}
		if !spec.Valid(v) {
			delete(out[i].Values, m)
			continue
		}
		positions = append(positions, i)
		values = append(values, v)
	}

	kept := FilterOutliers(values, spec)
	smoothed := Smooth(kept, smoothing)

	// The filter preserves order and keeps a value iff it lies inside the
	// accepted range, so walking both lists in lockstep recovers which
	// positions survived.
	k := 0
	for j, i := range positions {
		if k < len(kept) && values[j] == kept[k] {
			out[i].Values[m] = smoothed[k]
			k++
		} else {
			delete(out[i].Values, m)
		}
	}
	return out
}

// CleanSource applies CleanMetric for every metric in sequence. Each pass
// rewrites only its own metric's field, so the passes compose without
// interference.
func CleanSource(samples []Sample, cfg Config) []Sample {
	out := samples
	for _, m := range Metrics {
		out = CleanMetric(out, m, Spec(m), cfg.smoothing(m))
	}
	return out
}
