package apv

import (
	"errors"
	"fmt"
	"math"

	"github.com/kamilpajak/apv/pkg/models"
)

// DefaultCycles is the number of immunization cycles in a demo run
const DefaultCycles = 4

// ErrCycleCount is returned when the cycle count has no entry in the gain table
var ErrCycleCount = errors.New("cycle count out of range")

// Simulate runs the immunization loop for the given number of cycles.
//
// Each cycle moves every metric toward Target by the cycle's gain fraction of
// the remaining gap. The returned final metrics are always Target: the
// interpolated end state is not reported.
func Simulate(cycles int) ([]models.Cycle, models.Metrics, error) {
	gains := reference.GainsPercent
	if cycles < 1 || cycles > len(gains) {
		return nil, models.Metrics{}, fmt.Errorf("%w: %d (want 1-%d)", ErrCycleCount, cycles, len(gains))
	}

	target := Target()
	current := Baseline()
	records := make([]models.Cycle, 0, cycles)

	for i := range cycles {
		next := interpolate(current, target, gains[i]/100)
		records = append(records, models.Cycle{
			Cycle:             i + 1,
			GainPercent:       gains[i],
			FalseAlarmPercent: Round(falseAlarmRate(i)*100, 2),
			Metrics:           roundMetrics(next, 3),
		})
		current = next
	}

	return records, target, nil
}

func interpolate(cur, target models.Metrics, gain float64) models.Metrics {
	step := func(c, t float64) float64 { return c + gain*(t-c) }
	return models.Metrics{
		ResponseToxicity:   step(cur.ResponseToxicity, target.ResponseToxicity),
		FactualConsistency: step(cur.FactualConsistency, target.FactualConsistency),
		AlignmentStability: step(cur.AlignmentStability, target.AlignmentStability),
	}
}

// falseAlarmRate is the synthetic false alarm fraction for the zero-based cycle i
func falseAlarmRate(i int) float64 {
	fa := reference.FalseAlarm
	return math.Max(fa.Base-float64(i)*fa.Step, fa.Floor)
}

func roundMetrics(m models.Metrics, places int) models.Metrics {
	return models.Metrics{
		ResponseToxicity:   Round(m.ResponseToxicity, places),
		FactualConsistency: Round(m.FactualConsistency, places),
		AlignmentStability: Round(m.AlignmentStability, places),
	}
}

// Round rounds v to the given number of decimal places, half away from zero
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
