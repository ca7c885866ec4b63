package benchmark

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/app/domains/entity/etcatalog/catalogtest"
	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/domains/tools/inventory"
	"printshop/internal/app/domains/tools/pricing"
	"printshop/internal/app/domains/tools/resolution"
	"printshop/pkg/logger"
)

func newRunner(t *testing.T) *Runner {
	catalog, table := catalogtest.New(t)
	pipeline := guardrail.NewPipeline(
		catalog,
		inventory.NewChecker(catalog),
		resolution.NewChecker(catalog.FileRequirements(), resolution.Limits{}, nil),
		pricing.NewCalculator(table),
		logger.NewNop(),
	)
	return NewRunner(pipeline, t.TempDir(), logger.NewNop())
}

func TestShippedCasesAreAllCaught(t *testing.T) {
	cases, err := LoadCases("../../../config/benchmark_orders.yaml")
	require.NoError(t, err)

	report, err := newRunner(t).Run(context.Background(), cases)
	require.NoError(t, err)

	for _, res := range report.Results {
		if res.Case.ExpectsRejection() {
			assert.Equal(t, OutcomeCaught, res.Outcome, "case %s: %v %s", res.Case.ID, res.Errors, res.Detail)
		} else {
			assert.Equal(t, OutcomePassed, res.Outcome, "case %s: %v %s", res.Case.ID, res.Errors, res.Detail)
		}
	}
	assert.True(t, report.OK())
	assert.Equal(t, 1.0, report.CatchRate())
}

func TestClassify(t *testing.T) {
	r := newRunner(t)
	ctx := context.Background()

	cases := []Case{
		{ID: "missed", Size: "8x10", Artwork: &Artwork{Width: 2400, Height: 3000}, ExpectLayer: guardrail.LayerSpecCheck},
		{ID: "wrong", Size: "8x10", ExpectLayer: guardrail.LayerSpecCheck},
		{ID: "false-reject", Size: "30x40"},
		{ID: "invalid", Size: "huge"},
	}
	report, err := r.Run(ctx, cases)
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	assert.Equal(t, OutcomeMissed, report.Results[0].Outcome)
	assert.Equal(t, OutcomeWrongLayer, report.Results[1].Outcome)
	assert.Equal(t, guardrail.LayerPreflight, report.Results[1].Layer)
	assert.Equal(t, OutcomeFalseReject, report.Results[2].Outcome)
	assert.Equal(t, OutcomeInvalid, report.Results[3].Outcome)
	assert.Contains(t, report.Results[3].Detail, etorder.ErrInvalidSize.Error())

	assert.False(t, report.OK())
	assert.Equal(t, 0.5, report.CatchRate())
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newRunner(t).Run(ctx, []Case{{ID: "a", Size: "8x10"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Total())
}

func TestParseCasesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "cases: []"},
		{"missing id", "cases:\n  - size: 8x10\n"},
		{"duplicate id", "cases:\n  - id: a\n  - id: a\n"},
		{"unknown layer", "cases:\n  - id: a\n    expect_layer: billing\n"},
		{"file and artwork", "cases:\n  - id: a\n    file: x.png\n    artwork: {width: 1, height: 1}\n"},
		{"not yaml", "cases: [:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCases([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCasesResolvesRelativeFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cases:\n  - id: a\n    file: art/a.png\n  - id: b\n    file: /abs/b.png\n"), 0o600))

	cases, err := LoadCases(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "art", "a.png"), cases[0].File)
	assert.Equal(t, "/abs/b.png", cases[1].File)
}

func TestReportWrite(t *testing.T) {
	report := &Report{}
	report.add(Result{Case: Case{ID: "FAIL-1", Category: "low_res", ExpectLayer: guardrail.LayerPreflight},
		Outcome: OutcomeCaught, Layer: guardrail.LayerPreflight, Errors: []string{"too small"}})
	report.add(Result{Case: Case{ID: "OK-1"}, Outcome: OutcomePassed})

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "FAIL-1")
	assert.Contains(t, out, "too small")
	assert.Contains(t, out, "2 cases, caught 1")
	assert.Contains(t, out, "catch rate 100%")
}
