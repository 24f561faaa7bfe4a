package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/yyyoichi/kmeans1d"
)

// renderSSEChart writes a line chart of the SSE of every iteration to outputPath.
func renderSSEChart(history []float64, res *kmeans1d.Result, outputPath string) error {
	line := charts.NewLine()

	xAxisData := make([]string, len(history))
	sseData := make([]opts.LineData, len(history))
	for i, sse := range history {
		xAxisData[i] = strconv.Itoa(i)
		sseData[i] = opts.LineData{
			Value: sse,
			Name:  fmt.Sprintf("iteration %d: SSE=%.6f", i, sse),
		}
	}

	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "SSE by iteration",
			Subtitle: fmt.Sprintf("K=%d, %d iterations, %s", len(res.Centroids), res.Iterations, res.Status),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Iteration",
			Type: "category",
			Data: xAxisData,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "SSE",
			Type: "value",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: 0,
			End:   100,
		}),
	)

	line.SetXAxis(xAxisData)
	line.AddSeries("SSE", sseData,
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
