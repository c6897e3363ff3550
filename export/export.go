// Package export writes combine results to disk as CSV, Parquet, and JSON
// artifacts for downstream charting. Absent grid cells stay absent in every
// format: blank CSV cells, NaN parquet cells with a false valid flag.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ridegrid/ridegrid"
)

// gridColumns maps the fixed artifact columns to their metrics, in output
// order.
var gridColumns = []struct {
	Header string
	Metric ridegrid.Metric
}{
	{"power_w", ridegrid.MetricPower},
	{"hr_bpm", ridegrid.MetricHeartRate},
	{"speed_mps", ridegrid.MetricSpeed},
	{"cadence_rpm", ridegrid.MetricCadence},
	{"altitude_m", ridegrid.MetricAltitude},
}

// FormatExtension returns the artifact file extension for a grid format.
func FormatExtension(format string) string {
	if format == "csv" {
		return "csv"
	}
	return "parquet"
}

// WriteGridCSV writes the combined grid with one row per timeline point.
func WriteGridCSV(path string, frames []ridegrid.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"ts_utc_iso", "ts_ms", "elapsed_s"}
	for _, col := range gridColumns {
		header = append(header, col.Header)
	}
	for _, col := range gridColumns {
		header = append(header, "valid_"+string(col.Metric))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	firstTS := int64(0)
	if len(frames) > 0 {
		firstTS = frames[0].TS
	}
	for _, frame := range frames {
		row := []string{
			time.UnixMilli(frame.TS).UTC().Format(time.RFC3339),
			strconv.FormatInt(frame.TS, 10),
			formatFloat(float64(frame.TS-firstTS) / 1000.0),
		}
		for _, col := range gridColumns {
			if v, ok := frame.Values[col.Metric]; ok {
				row = append(row, formatFloat(v))
			} else {
				row = append(row, "")
			}
		}
		for _, col := range gridColumns {
			_, ok := frame.Values[col.Metric]
			row = append(row, strconv.FormatBool(ok))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteSummaryJSON writes the summary artifact.
func WriteSummaryJSON(path string, summary ridegrid.Summary) error {
	return writeJSON(path, summary)
}

// WriteGrid writes the grid in the requested format.
func WriteGrid(path, format string, frames []ridegrid.Frame) error {
	switch format {
	case "csv":
		return WriteGridCSV(path, frames)
	case "parquet":
		return WriteGridParquet(path, frames)
	default:
		return fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
