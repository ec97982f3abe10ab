// Package chart renders the report figures as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kamilpajak/apv/pkg/models"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Output file names inside the figures directory
const (
	BaselineVsAPVFile = "baseline_vs_apv.png"
	CycleGainsFile    = "cycle_gains.png"
)

const (
	width  = 1024
	height = 512
)

// ErrNoData is returned when the report has nothing to plot
var ErrNoData = errors.New("no data to plot")

var (
	baselineColor = drawing.ColorFromHex("4c72b0")
	apvColor      = drawing.ColorFromHex("dd8452")
	gridColor     = drawing.ColorFromHex("dddddd")
)

// barLabels name the table1 rows on the chart axis
var barLabels = []string{"Response Toxicity (lower better)", "Factual Consistency", "Alignment Stability"}

// RenderBaselineVsAPV draws baseline and APV side by side for each metric and
// returns the path of the written image.
func RenderBaselineVsAPV(r *models.Report, outDir string) (string, error) {
	t1 := r.Tables.Table1
	if len(t1.Baseline) == 0 || len(t1.Baseline) != len(t1.APV) {
		return "", fmt.Errorf("baseline vs APV chart: %w", ErrNoData)
	}

	bars := make([]gochart.Value, 0, 2*len(t1.Baseline))
	for i := range t1.Baseline {
		bars = append(bars,
			gochart.Value{Label: metricLabel(t1, i), Value: t1.Baseline[i], Style: barStyle(baselineColor)},
			gochart.Value{Label: " ", Value: t1.APV[i], Style: barStyle(apvColor)},
		)
	}

	c := gochart.BarChart{
		Title:      "Baseline vs APV (simulated / reproduced from paper)",
		Width:      width,
		Height:     height,
		BarWidth:   80,
		BarSpacing: 60,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.Style{
			FontSize: 8,
			TextWrap: gochart.TextWrapWord,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: bars,
		Elements: []gochart.Renderable{
			legend([]legendEntry{{"Baseline", baselineColor}, {"APV", apvColor}}),
		},
	}

	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("failed to render baseline vs APV chart: %w", err)
	}
	return save(outDir, BaselineVsAPVFile, buf.Bytes())
}

// RenderCycleGains plots the average immunization gain of each cycle and
// returns the path of the written image.
func RenderCycleGains(r *models.Report, outDir string) (string, error) {
	t2 := r.Tables.Table2
	if len(t2.Cycles) == 0 || len(t2.Cycles) != len(t2.GainPercent) {
		return "", fmt.Errorf("cycle gains chart: %w", ErrNoData)
	}

	xs := make([]float64, len(t2.Cycles))
	ticks := make([]gochart.Tick, len(t2.Cycles))
	for i, c := range t2.Cycles {
		xs[i] = float64(c)
		ticks[i] = gochart.Tick{Value: float64(c), Label: strconv.Itoa(c)}
	}

	xMin, xMax := xs[0]-0.5, xs[len(xs)-1]+0.5
	top := yMax(t2.GainPercent)
	grid := gochart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	c := gochart.Chart{
		Title:  "Immunization Gains per Cycle (simulated)",
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           "Immunization Cycle",
			Ticks:          ticks,
			Range:          &gochart.ContinuousRange{Min: xMin, Max: xMax},
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:           "Avg Immunization Gain (%)",
			Range:          &gochart.ContinuousRange{Min: 0, Max: top},
			GridMajorStyle: grid,
		},
		Series: []gochart.Series{
			// invisible anchor: go-chart needs two distinct x values
			gochart.ContinuousSeries{
				XValues: []float64{xMin, xMax},
				YValues: []float64{0, top},
				Style: gochart.Style{
					StrokeColor: drawing.ColorTransparent,
					StrokeWidth: 1,
				},
			},
			gochart.ContinuousSeries{
				Name:    "Avg Immunization Gain (%)",
				XValues: xs,
				YValues: t2.GainPercent,
				Style: gochart.Style{
					StrokeColor: baselineColor,
					StrokeWidth: 2,
					DotColor:    baselineColor,
					DotWidth:    5,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("failed to render cycle gains chart: %w", err)
	}
	return save(outDir, CycleGainsFile, buf.Bytes())
}

type legendEntry struct {
	name  string
	color drawing.Color
}

// legend draws a color key in the top right corner of the canvas
func legend(entries []legendEntry) gochart.Renderable {
	return func(r gochart.Renderer, canvas gochart.Box, defaults gochart.Style) {
		font := defaults.Font
		if font == nil {
			f, err := gochart.GetDefaultFont()
			if err != nil {
				return
			}
			font = f
		}

		left := canvas.Right - 110
		for i, e := range entries {
			top := canvas.Top + 10 + i*18
			swatch := gochart.Box{Top: top, Left: left, Right: left + 12, Bottom: top + 12}
			gochart.Draw.Box(r, swatch, gochart.Style{FillColor: e.color, StrokeColor: e.color, StrokeWidth: 1})
			gochart.Draw.Text(r, e.name, left+18, top+11, gochart.Style{
				Font:      font,
				FontSize:  10,
				FontColor: drawing.ColorBlack,
			})
		}
	}
}

func barStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		FillColor:   col,
		StrokeColor: col,
		StrokeWidth: 1,
	}
}

func metricLabel(t1 models.Table1, i int) string {
	if i < len(barLabels) {
		return barLabels[i]
	}
	if i < len(t1.Metric) {
		return t1.Metric[i]
	}
	return "Metric " + strconv.Itoa(i+1)
}

// yMax leaves headroom above the largest value; a zero series still gets a range
func yMax(vs []float64) float64 {
	m := 0.0
	for _, v := range vs {
		m = max(m, v)
	}
	if m == 0 {
		return 1
	}
	return m * 1.2
}

func save(outDir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outDir, err)
	}
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
