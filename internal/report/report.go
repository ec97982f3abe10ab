package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kamilpajak/apv/internal/apv"
	"github.com/kamilpajak/apv/pkg/models"
)

// Build assembles the report document from a simulation run
func Build(baseline, final models.Metrics, cycles []models.Cycle, comparison models.Table3, examples []models.VaccineExample) *models.Report {
	if examples == nil {
		examples = []models.VaccineExample{}
	}
	return &models.Report{
		Baseline: baseline,
		Cycles:   cycles,
		FinalAPV: final,
		Tables: models.Tables{
			Table1: buildTable1(baseline, final),
			Table2: buildTable2(cycles),
			Table3: comparison,
		},
		VaccineSnippet: examples,
	}
}

func buildTable1(baseline, final models.Metrics) models.Table1 {
	return models.Table1{
		Metric:              append([]string(nil), models.MetricLabels...),
		Baseline:            baseline.Values(),
		APV:                 final.Values(),
		RelativeGainPercent: RelativeGains(baseline, final),
	}
}

func buildTable2(cycles []models.Cycle) models.Table2 {
	t := models.Table2{
		Cycles:            make([]int, 0, len(cycles)),
		GainPercent:       make([]float64, 0, len(cycles)),
		FalseAlarmPercent: make([]float64, 0, len(cycles)),
	}
	for _, c := range cycles {
		t.Cycles = append(t.Cycles, c.Cycle)
		t.GainPercent = append(t.GainPercent, c.GainPercent)
		t.FalseAlarmPercent = append(t.FalseAlarmPercent, c.FalseAlarmPercent)
	}
	return t
}

// RelativeGains returns the percent improvement of each metric, rounded to one
// decimal. Toxicity improves by going down, the others by going up.
func RelativeGains(baseline, final models.Metrics) []float64 {
	return []float64{
		apv.Round(relative(baseline.ResponseToxicity, baseline.ResponseToxicity-final.ResponseToxicity), 1),
		apv.Round(relative(baseline.FactualConsistency, final.FactualConsistency-baseline.FactualConsistency), 1),
		apv.Round(relative(baseline.AlignmentStability, final.AlignmentStability-baseline.AlignmentStability), 1),
	}
}

func relative(base, delta float64) float64 {
	if base == 0 {
		return 0
	}
	return delta / base * 100
}

// Summarize extracts the headline numbers of a report
func Summarize(r *models.Report) models.Summary {
	return models.Summary{
		Baseline:             r.Baseline,
		FinalAPV:             r.FinalAPV,
		RelativeGainsPercent: r.Tables.Table1.RelativeGainPercent,
	}
}

// WriteJSON writes the report as indented JSON, replacing any existing file
func WriteJSON(r *models.Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a report previously written by WriteJSON
func ReadJSON(path string) (*models.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r models.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
