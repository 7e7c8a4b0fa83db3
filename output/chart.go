package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"flextime/overtime"
)

// SaveChart renders the per-day deviation as a PNG line chart under dir,
// named after the moment the report ran. The directory is created when
// missing. Returns the path of the written file.
func SaveChart(dir string, buckets []overtime.DayBucket, total time.Duration, now time.Time) (string, error) {
	if len(buckets) == 0 {
		return "", errors.New("no data points to chart")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create figure directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("overtime-%s.png", now.Format("2006-01-02-15-04-05")))

	xs := make([]time.Time, 0, len(buckets))
	ys := make([]float64, 0, len(buckets))
	for _, bucket := range buckets {
		xs = append(xs, bucket.Day)
		ys = append(ys, bucket.Deviation.Hours())
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Overtime per day (total %s)", overtime.FormatHM(total)),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          dayRange(xs),
		},
		YAxis: chart.YAxis{
			Name:  "Hours",
			Range: hourRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Deviation",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    3,
				},
			},
		},
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file %s: %w", path, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}

// dayRange pads a single-day axis so the range never collapses to zero,
// which the renderer rejects.
func dayRange(xs []time.Time) chart.Range {
	min, max := xs[0], xs[len(xs)-1]
	if !max.After(min) {
		min = min.Add(-12 * time.Hour)
		max = max.Add(12 * time.Hour)
	}
	return &chart.ContinuousRange{
		Min: chart.TimeToFloat64(min),
		Max: chart.TimeToFloat64(max),
	}
}

func hourRange(ys []float64) chart.Range {
	min, max := ys[0], ys[0]
	for _, y := range ys[1:] {
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	if min == max {
		min--
		max++
	}
	return &chart.ContinuousRange{Min: min, Max: max}
}
