package demo

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/kamilpajak/apv/internal/apv"
	"github.com/kamilpajak/apv/internal/chart"
	"github.com/kamilpajak/apv/internal/progress"
	"github.com/kamilpajak/apv/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []progress.Event
}

func (r *recorder) Emit(ev progress.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) ofType(typ string) []progress.Event {
	var out []progress.Event
	for _, ev := range r.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(3, 5))
}

func TestRun_WritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}

	r, err := Run(context.Background(), Params{OutDir: dir, Rand: seeded(), Emitter: rec})
	require.NoError(t, err)

	for _, p := range []string{
		filepath.Join(dir, ResultsFile),
		filepath.Join(dir, FiguresDir, chart.BaselineVsAPVFile),
		filepath.Join(dir, FiguresDir, chart.CycleGainsFile),
	} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}

	assert.Len(t, r.Cycles, apv.DefaultCycles)
	assert.Len(t, r.VaccineSnippet, apv.DefaultSnippetSize)
	assert.Equal(t, apv.Target(), r.FinalAPV)

	written, err := report.ReadJSON(filepath.Join(dir, ResultsFile))
	require.NoError(t, err)
	assert.Equal(t, r, written)
}

func TestRun_EmitsProgress(t *testing.T) {
	rec := &recorder{}

	_, err := Run(context.Background(), Params{OutDir: t.TempDir(), Rand: seeded(), Emitter: rec})
	require.NoError(t, err)

	steps := rec.ofType(progress.TypeStep)
	require.Len(t, steps, totalSteps)
	for i, s := range steps {
		assert.Equal(t, i+1, s.Step)
		assert.Equal(t, totalSteps, s.MaxStep)
	}
	assert.Len(t, rec.ofType(progress.TypeFile), 3)
	assert.Len(t, rec.ofType(progress.TypeDone), 1)
}

func TestRun_SameSeedSameSnippet(t *testing.T) {
	a, err := Run(context.Background(), Params{OutDir: t.TempDir(), Rand: seeded()})
	require.NoError(t, err)
	b, err := Run(context.Background(), Params{OutDir: t.TempDir(), Rand: seeded()})
	require.NoError(t, err)

	assert.Equal(t, a.VaccineSnippet, b.VaccineSnippet)
}

func TestRun_CustomSizes(t *testing.T) {
	r, err := Run(context.Background(), Params{OutDir: t.TempDir(), Cycles: 2, SnippetSize: 3, Rand: seeded()})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, r.Tables.Table2.Cycles)
	assert.Len(t, r.VaccineSnippet, 3)
}

func TestRun_InvalidCycles(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(context.Background(), Params{OutDir: dir, Cycles: 5, Rand: seeded()})
	assert.ErrorIs(t, err, apv.ErrCycleCount)

	_, statErr := os.Stat(filepath.Join(dir, ResultsFile))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Params{OutDir: t.TempDir(), Rand: seeded()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_UnwritableOutDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := Run(context.Background(), Params{OutDir: dir, Rand: seeded()})
	assert.Error(t, err)
}

func TestWithDefaults(t *testing.T) {
	p := withDefaults(Params{})

	assert.Equal(t, ".", p.OutDir)
	assert.Equal(t, apv.DefaultCycles, p.Cycles)
	assert.Equal(t, apv.DefaultSnippetSize, p.SnippetSize)
	assert.NotNil(t, p.Rand)
	assert.Nil(t, p.Emitter)
}

func TestRun_SingleCycle(t *testing.T) {
	dir := t.TempDir()

	r, err := Run(context.Background(), Params{OutDir: dir, Cycles: 1, Rand: seeded()})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, r.Tables.Table2.Cycles)
	_, err = os.Stat(filepath.Join(dir, FiguresDir, chart.CycleGainsFile))
	assert.NoError(t, err)
}

func TestRun_ReportsErrorEvent(t *testing.T) {
	rec := &recorder{}

	_, err := Run(context.Background(), Params{OutDir: t.TempDir(), Cycles: 9, Rand: seeded(), Emitter: rec})
	require.Error(t, err)

	errs := rec.ofType(progress.TypeError)
	require.Len(t, errs, 1)
	assert.Equal(t, err.Error(), errs[0].Message)
	assert.Empty(t, rec.ofType(progress.TypeDone))
}

func TestRun_NoErrorEventOnSuccess(t *testing.T) {
	rec := &recorder{}

	_, err := Run(context.Background(), Params{OutDir: t.TempDir(), Rand: seeded(), Emitter: rec})
	require.NoError(t, err)
	assert.Empty(t, rec.ofType(progress.TypeError))
}
