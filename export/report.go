package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/ridegrid/ridegrid"
)

var metricLabels = map[ridegrid.Metric]string{
	ridegrid.MetricPower:     "Power (W)",
	ridegrid.MetricHeartRate: "Heart rate (bpm)",
	ridegrid.MetricSpeed:     "Speed (m/s)",
	ridegrid.MetricCadence:   "Cadence (rpm)",
	ridegrid.MetricAltitude:  "Altitude (m)",
}

// BuildReport turns a combine result into a short human-readable summary.
func BuildReport(res ridegrid.Result) string {
	var b strings.Builder

	s := res.Summary
	if len(res.Frames) == 0 {
		return "No samples to combine."
	}

	fmt.Fprintf(&b, "Combined %d timeline points over %s\n", len(res.Frames), formatDuration(s.DurationSeconds))
	if s.DistanceMeters > 0 {
		fmt.Fprintf(&b, "Distance %.1f km\n", s.DistanceMeters/1000.0)
	}
	if s.ElevationGain > 0 {
		fmt.Fprintf(&b, "Elevation gain +%.0f m\n", s.ElevationGain)
	}
	if s.AvgTemperature != nil {
		fmt.Fprintf(&b, "Average temperature %.1f C\n", *s.AvgTemperature)
	}

	for _, m := range s.Available {
		st, ok := s.Stats[m]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: avg %s / max %s / min %s\n",
			metricLabels[m],
			formatStat(st.Avg, m),
			formatStat(st.Max, m),
			formatStat(st.Min, m),
		)
	}

	return strings.TrimSpace(b.String())
}

func formatStat(v float64, m ridegrid.Metric) string {
	return fmt.Sprintf("%.*f", ridegrid.Spec(m).Decimals, v)
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	s := int(math.Round(seconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
