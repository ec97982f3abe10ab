package models

// Metrics is a point-in-time snapshot of the three tracked quality metrics
type Metrics struct {
	ResponseToxicity   float64 `json:"response_toxicity" yaml:"response_toxicity"`
	FactualConsistency float64 `json:"factual_consistency" yaml:"factual_consistency"`
	AlignmentStability float64 `json:"alignment_stability" yaml:"alignment_stability"`
}

// Values returns the metrics in display order: toxicity, consistency, stability
func (m Metrics) Values() []float64 {
	return []float64{m.ResponseToxicity, m.FactualConsistency, m.AlignmentStability}
}

// Cycle is the record of one immunization cycle
type Cycle struct {
	Cycle             int     `json:"cycle"`
	GainPercent       float64 `json:"avg_immunization_gain_percent"`
	FalseAlarmPercent float64 `json:"false_alarm_rate_percent"`
	Metrics           Metrics `json:"metrics"`
}

// VaccineExample pairs an adversarial prompt with a safe correction
type VaccineExample struct {
	Prompt     string `json:"prompt" yaml:"prompt"`
	Correction string `json:"correction" yaml:"correction"`
}

// Table1 compares baseline and APV metrics
type Table1 struct {
	Metric              []string  `json:"metric"`
	Baseline            []float64 `json:"baseline"`
	APV                 []float64 `json:"apv"`
	RelativeGainPercent []float64 `json:"relative_gain_percent"`
}

// Table2 lists per-cycle gains and false alarm rates
type Table2 struct {
	Cycles            []int     `json:"cycles"`
	GainPercent       []float64 `json:"avg_immunization_gain_percent"`
	FalseAlarmPercent []float64 `json:"false_alarm_rate_percent"`
}

// Table3 compares APV against other hardening methods
type Table3 struct {
	Method              []string  `json:"method" yaml:"method"`
	RobustnessScore     []float64 `json:"robustness_score" yaml:"robustness_score"`
	EstimatedComputeHrs []int     `json:"estimated_compute_hrs" yaml:"estimated_compute_hrs"`
}

// Tables groups the display tables of a report
type Tables struct {
	Table1 Table1 `json:"table1"`
	Table2 Table2 `json:"table2"`
	Table3 Table3 `json:"table3"`
}

// Report is the document written to results.json
type Report struct {
	Baseline       Metrics          `json:"baseline"`
	Cycles         []Cycle          `json:"cycles"`
	FinalAPV       Metrics          `json:"final_apv"`
	Tables         Tables           `json:"tables"`
	VaccineSnippet []VaccineExample `json:"example_vaccine_snippet"`
}

// Summary is the short form of a report printed at the end of a run
type Summary struct {
	Baseline             Metrics   `json:"baseline"`
	FinalAPV             Metrics   `json:"final_apv"`
	RelativeGainsPercent []float64 `json:"relative_gains_percent"`
}

// MetricLabels are the table1 row names, in Values order
var MetricLabels = []string{"Response Toxicity", "Factual Consistency", "Alignment Stability"}
