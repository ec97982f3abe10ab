package apv

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/kamilpajak/apv/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed paper.yaml
var paperYAML []byte

type falseAlarmCurve struct {
	Base  float64 `yaml:"base"`
	Step  float64 `yaml:"step"`
	Floor float64 `yaml:"floor"`
}

// paper holds the reference numbers the demo reproduces
type paper struct {
	Baseline     models.Metrics  `yaml:"baseline"`
	Target       models.Metrics  `yaml:"target"`
	GainsPercent []float64       `yaml:"gains_percent"`
	FalseAlarm   falseAlarmCurve `yaml:"false_alarm"`
	Comparison   models.Table3   `yaml:"comparison"`
	Prompts      []string        `yaml:"prompts"`
	Corrections  []string        `yaml:"corrections"`
}

var reference = mustParsePaper(paperYAML)

func parsePaper(data []byte) (*paper, error) {
	var p paper
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse reference numbers: %w", err)
	}
	if len(p.GainsPercent) == 0 {
		return nil, errors.New("reference numbers: gains_percent is empty")
	}
	if len(p.Prompts) == 0 || len(p.Corrections) == 0 {
		return nil, errors.New("reference numbers: prompts and corrections must not be empty")
	}
	n := len(p.Comparison.Method)
	if len(p.Comparison.RobustnessScore) != n || len(p.Comparison.EstimatedComputeHrs) != n {
		return nil, fmt.Errorf("reference numbers: comparison columns differ in length (method=%d, robustness=%d, compute=%d)",
			n, len(p.Comparison.RobustnessScore), len(p.Comparison.EstimatedComputeHrs))
	}
	return &p, nil
}

func mustParsePaper(data []byte) *paper {
	p, err := parsePaper(data)
	if err != nil {
		panic(err)
	}
	return p
}

// Baseline returns the metrics before any immunization cycle
func Baseline() models.Metrics {
	return reference.Baseline
}

// Target returns the APV metrics every run reports as final
func Target() models.Metrics {
	return reference.Target
}

// GainTable returns the per-cycle gain percentages
func GainTable() []float64 {
	return slices.Clone(reference.GainsPercent)
}

// Comparison returns the method comparison shown in table3
func Comparison() models.Table3 {
	c := reference.Comparison
	return models.Table3{
		Method:              slices.Clone(c.Method),
		RobustnessScore:     slices.Clone(c.RobustnessScore),
		EstimatedComputeHrs: slices.Clone(c.EstimatedComputeHrs),
	}
}
