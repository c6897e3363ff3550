package ridegrid

import "sort"

// Pool holds every source's cleaned samples merged onto one time axis,
// sorted ascending by timestamp. Duplicate timestamps across sources are
// preserved. A zero Pool is the explicit empty result.
type Pool struct {
	Samples []Sample
	FirstTS int64
	LastTS  int64
}

// DurationSeconds is the merged span in seconds.
func (p Pool) DurationSeconds() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return float64(p.LastTS-p.FirstTS) / 1000.0
}

// Merge concatenates any number of sources and stable-sorts by timestamp.
// Stable so that equal-timestamp samples keep their source order.
func Merge(sources ...[]Sample) Pool {
	total := 0
	for _, src := range sources {
		total += len(src)
	}
	if total == 0 {
		return Pool{}
	}

	merged := make([]Sample, 0, total)
	for _, src := range sources {
		merged = append(merged, src...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TS < merged[j].TS
	})

	return Pool{
		Samples: merged,
		FirstTS: merged[0].TS,
		LastTS:  merged[total-1].TS,
	}
}
