package ridegrid

// Sample is one timestamped reading from a recording. Values holds only the
// metrics the sample actually carries; a missing key is absent, which is a
// distinct state from zero. Distance is the recording's cumulative meters and
// Temperature its sensor reading; both feed derived totals only and are never
// resampled.
type Sample struct {
	TS          int64 // epoch millis
	Values      map[Metric]float64
	Distance    *float64
	Temperature *float64
}

// Frame is one row of the combined output grid: a target timestamp plus a
// resolved value per metric. A metric missing from Values is absent at this
// timestamp, never zero.
type Frame struct {
	TS     int64
	Values map[Metric]float64
}

func cloneSamples(samples []Sample) []Sample {
	out := make([]Sample, len(samples))
	for i, s := range samples {
		c := s
		c.Values = make(map[Metric]float64, len(s.Values))
		for m, v := range s.Values {
			c.Values[m] = v
		}
		out[i] = c
	}
	return out
}
