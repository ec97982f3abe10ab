package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/kamilpajak/apv/internal/apv"
	"github.com/kamilpajak/apv/internal/report"
	"github.com/kamilpajak/apv/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func sampleReport(t *testing.T) *models.Report {
	t.Helper()
	cycles, final, err := apv.Simulate(apv.DefaultCycles)
	require.NoError(t, err)
	return report.Build(apv.Baseline(), final, cycles, apv.Comparison(), nil)
}

func TestPrintSummary_Table(t *testing.T) {
	var stderr, stdout bytes.Buffer

	require.NoError(t, printSummary(&stderr, &stdout, sampleReport(t)))

	out := stderr.String()
	assert.Contains(t, out, "━")
	assert.Contains(t, out, "Response Toxicity")
	assert.Contains(t, out, "0.076 -> 0.023")
	assert.Contains(t, out, "+69.7%")
	assert.Contains(t, out, "0.821 -> 0.918")
	assert.Contains(t, out, "+11.8%")
	assert.Contains(t, out, "0.732 -> 0.886")
	assert.Contains(t, out, "+21.0%")
	assert.Contains(t, out, "Summary (from results.json):")
}

func TestPrintSummary_JSON(t *testing.T) {
	var stderr, stdout bytes.Buffer

	require.NoError(t, printSummary(&stderr, &stdout, sampleReport(t)))

	var decoded models.Summary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, apv.Baseline(), decoded.Baseline)
	assert.Equal(t, apv.Target(), decoded.FinalAPV)
	assert.Equal(t, []float64{69.7, 11.8, 21.0}, decoded.RelativeGainsPercent)
	assert.Contains(t, stdout.String(), "\n  \"final_apv\": {")
}

func TestPrintSummary_EmptyTable(t *testing.T) {
	var stderr, stdout bytes.Buffer

	require.NoError(t, printSummary(&stderr, &stdout, &models.Report{}))

	assert.NotContains(t, stderr.String(), "->")
	assert.Contains(t, stdout.String(), "relative_gains_percent")
}

func TestPrintGain(t *testing.T) {
	tests := []struct {
		gain float64
		want string
	}{
		{69.7, "+69.7%\n"},
		{0, "+0.0%\n"},
		{-4.3, "-4.3%\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		printGain(&buf, tt.gain)
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{"extra"})
	assert.Error(t, err)
}
