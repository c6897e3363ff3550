package ridegrid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimelineEndpoints(t *testing.T) {
	timeline := buildTimeline(1000, 10500, 3600)
	assert.Equal(t, int64(1000), timeline[0])
	assert.Equal(t, int64(10500), timeline[len(timeline)-1], "last point must be exactly lastTS even off-step")
	for i := 1; i < len(timeline); i++ {
		assert.Less(t, timeline[i-1], timeline[i], "timeline must be strictly increasing")
	}
}

func TestBuildTimelineRespectsBudget(t *testing.T) {
	// Two hours at 1-second granularity would be 7201 points.
	timeline := buildTimeline(0, 2*3600*1000, 3600)
	assert.LessOrEqual(t, len(timeline), 3600)
	assert.Equal(t, int64(0), timeline[0])
	assert.Equal(t, int64(2*3600*1000), timeline[len(timeline)-1])
}

func TestBuildTimelineRespectsBudgetOffStepSpan(t *testing.T) {
	// 3599.5s span: one point short of the budget at 1s granularity, so
	// the off-step final timestamp must force a larger step rather than
	// spill past the budget.
	timeline := buildTimeline(0, 3_599_500, 3600)
	assert.LessOrEqual(t, len(timeline), 3600)
	assert.Equal(t, int64(0), timeline[0])
	assert.Equal(t, int64(3_599_500), timeline[len(timeline)-1])
	for i := 1; i < len(timeline); i++ {
		assert.Less(t, timeline[i-1], timeline[i])
	}
}

func TestBuildTimelineTinyBudgetStillSpans(t *testing.T) {
	// Even a nonsense budget keeps both span endpoints.
	assert.Equal(t, []int64{0, 5000}, buildTimeline(0, 5000, 1))
	assert.Equal(t, []int64{0, 5000}, buildTimeline(0, 5000, 0))
}

func TestBuildTimelineDegenerate(t *testing.T) {
	assert.Equal(t, []int64{5000}, buildTimeline(5000, 5000, 3600))
}

func resamplePool(t *testing.T, cfg Config, samples ...Sample) ([]Frame, []Metric) {
	t.Helper()
	pool := Merge(samples)
	require.NotEmpty(t, pool.Samples)
	return Resample(pool, cfg)
}

func TestResampleInterpolatesBetweenBracket(t *testing.T) {
	frames, available := resamplePool(t, DefaultConfig(),
		hrSample(0, 100),
		hrSample(10000, 140),
	)
	assert.Equal(t, []Metric{MetricHeartRate}, available)

	var at5000 *Frame
	for i := range frames {
		if frames[i].TS == 5000 {
			at5000 = &frames[i]
		}
	}
	require.NotNil(t, at5000)
	assert.Equal(t, 120.0, at5000.Values[MetricHeartRate])
}

func TestResampleExactMatchIsBitForBit(t *testing.T) {
	v := 123.456789012345
	frames, _ := resamplePool(t, DefaultConfig(),
		Sample{TS: 0, Values: map[Metric]float64{MetricPower: v}},
		Sample{TS: 4000, Values: map[Metric]float64{MetricPower: 98.7654321}},
	)
	assert.Equal(t, v, frames[0].Values[MetricPower], "exact match must pass the value through untouched")
}

func TestResampleInterpolationExactAtBracketEndpoints(t *testing.T) {
	frames, _ := resamplePool(t, DefaultConfig(),
		hrSample(0, 100),
		hrSample(8000, 140),
	)
	assert.Equal(t, 100.0, frames[0].Values[MetricHeartRate])
	assert.Equal(t, 140.0, frames[len(frames)-1].Values[MetricHeartRate])
	for _, f := range frames {
		v, ok := f.Values[MetricHeartRate]
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, 100.0, "interpolated values stay inside the bracket")
		assert.LessOrEqual(t, v, 140.0, "interpolated values stay inside the bracket")
	}
}

func TestResampleNearestFallbackWhenBracketTooWide(t *testing.T) {
	// 90s between samples: too wide to interpolate, but each end is
	// reachable by nearest-neighbor hold within the 30s gap.
	frames, _ := resamplePool(t, DefaultConfig(),
		hrSample(0, 100),
		hrSample(90000, 140),
	)
	byTS := frameIndex(frames)

	assert.Equal(t, 100.0, byTS[10000].Values[MetricHeartRate], "near the left sample: hold it")
	assert.Equal(t, 140.0, byTS[85000].Values[MetricHeartRate], "near the right sample: hold it")

	mid, ok := byTS[45000].Values[MetricHeartRate]
	assert.False(t, ok, "both neighbors beyond the gap: absent, got %v", mid)
}

func TestResampleOneSidedNeighborWithinGap(t *testing.T) {
	// Heart rate exists only in the first 10 seconds of a 2-minute pool.
	frames, _ := resamplePool(t, DefaultConfig(),
		hrSample(0, 100),
		hrSample(10000, 110),
		Sample{TS: 120000, Values: map[Metric]float64{MetricPower: 200}},
	)
	byTS := frameIndex(frames)

	assert.Equal(t, 110.0, byTS[30000].Values[MetricHeartRate], "within 30s of the last reading: hold")
	_, ok := byTS[60000].Values[MetricHeartRate]
	assert.False(t, ok, "beyond the gap on the open side: absent")
}

func TestResampleOmitsMetricWithNoValidSamples(t *testing.T) {
	frames, available := resamplePool(t, DefaultConfig(),
		hrSample(0, 100),
		hrSample(4000, 120),
	)
	assert.NotContains(t, available, MetricPower)
	for _, f := range frames {
		_, ok := f.Values[MetricPower]
		assert.False(t, ok, "a metric with zero valid samples must not appear in the grid")
	}
}

func TestResampleDisjointSourcesNeverFabricateZeros(t *testing.T) {
	a := []Sample{
		{TS: 0, Values: map[Metric]float64{MetricPower: 200}},
		{TS: 10000, Values: map[Metric]float64{MetricPower: 210}},
	}
	b := []Sample{
		hrSample(100000, 120),
		hrSample(110000, 125),
	}
	pool := Merge(a, b)
	frames, available := Resample(pool, DefaultConfig())
	assert.ElementsMatch(t, []Metric{MetricPower, MetricHeartRate}, available)

	byTS := frameIndex(frames)
	// Deep inside B's range, power is long gone.
	_, hasPower := byTS[105000].Values[MetricPower]
	assert.False(t, hasPower)
	// Deep inside A's range, heart rate has not started.
	_, hasHR := byTS[5000].Values[MetricHeartRate]
	assert.False(t, hasHR)
	// The dead middle has neither.
	if f, ok := byTS[55000]; ok {
		assert.Empty(t, f.Values)
	}
}

func TestResampleEmptyPool(t *testing.T) {
	frames, available := Resample(Pool{}, DefaultConfig())
	assert.Nil(t, frames)
	assert.Nil(t, available)
}

func TestResampleGridMatchesTimeline(t *testing.T) {
	frames, _ := resamplePool(t, DefaultConfig(),
		hrSample(0, 100),
		hrSample(3000, 103),
	)
	want := []int64{0, 1000, 2000, 3000}
	got := make([]int64, len(frames))
	for i, f := range frames {
		got[i] = f.TS
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func frameIndex(frames []Frame) map[int64]Frame {
	byTS := make(map[int64]Frame, len(frames))
	for _, f := range frames {
		byTS[f.TS] = f
	}
	return byTS
}
