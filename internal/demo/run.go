package demo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/kamilpajak/apv/internal/apv"
	"github.com/kamilpajak/apv/internal/chart"
	"github.com/kamilpajak/apv/internal/progress"
	"github.com/kamilpajak/apv/internal/report"
	"github.com/kamilpajak/apv/pkg/models"
)

// Output locations relative to Params.OutDir
const (
	ResultsFile = "results.json"
	FiguresDir  = "figures"
)

const totalSteps = 4

// Params configures a demo run. Zero values select the defaults.
type Params struct {
	OutDir      string
	Cycles      int
	SnippetSize int
	Rand        apv.Source
	Emitter     progress.Emitter
}

// Run executes the full demo pipeline: simulate the immunization cycles, build
// the report, write results.json, and render both figures. The first failure
// aborts the run and is reported to the emitter before it is returned.
func Run(ctx context.Context, p Params) (*models.Report, error) {
	p = withDefaults(p)
	r, err := run(ctx, p)
	if err != nil && p.Emitter != nil {
		p.Emitter.Emit(progress.Event{Type: progress.TypeError, Message: err.Error()})
	}
	return r, err
}

func run(ctx context.Context, p Params) (*models.Report, error) {
	start := time.Now()

	emitStep(p.Emitter, 1, "Simulating immunization cycles...")
	cycles, final, err := apv.Simulate(p.Cycles)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	emitInfo(p.Emitter, fmt.Sprintf("%d cycles simulated", len(cycles)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emitStep(p.Emitter, 2, "Writing results...")
	examples := apv.VaccineExamples(p.Rand, p.SnippetSize)
	r := report.Build(apv.Baseline(), final, cycles, apv.Comparison(), examples)

	resultsPath := filepath.Join(p.OutDir, ResultsFile)
	if err := report.WriteJSON(r, resultsPath); err != nil {
		return nil, err
	}
	emitFile(p.Emitter, resultsPath)

	figures := filepath.Join(p.OutDir, FiguresDir)
	renderers := []struct {
		msg    string
		render func(*models.Report, string) (string, error)
	}{
		{"Rendering baseline vs APV chart...", chart.RenderBaselineVsAPV},
		{"Rendering cycle gains chart...", chart.RenderCycleGains},
	}
	for i, rd := range renderers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		emitStep(p.Emitter, 3+i, rd.msg)
		path, err := rd.render(r, figures)
		if err != nil {
			return nil, err
		}
		emitFile(p.Emitter, path)
	}

	if p.Emitter != nil {
		p.Emitter.Emit(progress.Event{Type: progress.TypeDone, ElapsedMs: int(time.Since(start).Milliseconds())})
	}
	return r, nil
}

func withDefaults(p Params) Params {
	if p.OutDir == "" {
		p.OutDir = "."
	}
	if p.Cycles == 0 {
		p.Cycles = apv.DefaultCycles
	}
	if p.SnippetSize == 0 {
		p.SnippetSize = apv.DefaultSnippetSize
	}
	if p.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		p.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return p
}

func emitStep(e progress.Emitter, step int, msg string) {
	if e != nil {
		e.Emit(progress.Event{Type: progress.TypeStep, Step: step, MaxStep: totalSteps, Message: msg})
	}
}

func emitInfo(e progress.Emitter, msg string) {
	if e != nil {
		e.Emit(progress.Event{Type: progress.TypeInfo, Message: msg})
	}
}

func emitFile(e progress.Emitter, path string) {
	if e != nil {
		e.Emit(progress.Event{Type: progress.TypeFile, Path: path})
	}
}
