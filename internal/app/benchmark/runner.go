package benchmark

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/guardrail"
	"printshop/pkg/logger"
)

// Validator 护栏流水线
type Validator interface {
	Run(ctx context.Context, order *etorder.OrderRequest) *guardrail.Verdict
}

// Runner 把历史订单逐条回放到护栏流水线
type Runner struct {
	validator Validator
	workDir   string
	logger    logger.Logger
}

// NewRunner workDir 用于存放生成的稿件
func NewRunner(validator Validator, workDir string, log logger.Logger) *Runner {
	return &Runner{validator: validator, workDir: workDir, logger: log}
}

// Run 按顺序回放，单条用例出错不会中断整体
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	report := &Report{}
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.add(r.runOne(ctx, c))
	}
	r.logger.Infof(ctx, "[Benchmark] %d cases: caught=%d missed=%d wrong_layer=%d",
		report.Total(), report.Count(OutcomeCaught), report.Count(OutcomeMissed), report.Count(OutcomeWrongLayer))
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, c Case) Result {
	res := Result{Case: c}

	path, err := r.artworkFor(c)
	if err != nil {
		res.Outcome = OutcomeInvalid
		res.Detail = err.Error()
		return res
	}

	order, err := c.toOrder(path)
	if err != nil {
		res.Outcome = OutcomeInvalid
		res.Detail = err.Error()
		return res
	}

	verdict := r.validator.Run(ctx, order)
	res.Layer = verdict.Layer()
	res.Errors = verdict.Errors()
	res.Outcome = classify(c, verdict)
	if res.Outcome != OutcomeCaught && res.Outcome != OutcomePassed {
		r.logger.Warnf(ctx, "[Benchmark] case %s: %s (expected %q, got %q)", c.ID, res.Outcome, c.ExpectLayer, res.Layer)
	}
	return res
}

// artworkFor 返回稿件路径；声明了 artwork 的用例在 workDir 中生成空白 PNG
func (r *Runner) artworkFor(c Case) (string, error) {
	if c.Artwork == nil {
		return c.File, nil
	}
	if c.Artwork.Width <= 0 || c.Artwork.Height <= 0 {
		return "", fmt.Errorf("artwork size must be positive, got %dx%d", c.Artwork.Width, c.Artwork.Height)
	}

	path := filepath.Join(r.workDir, c.ID+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artwork failed: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, c.Artwork.Width, c.Artwork.Height))); err != nil {
		return "", fmt.Errorf("encode artwork failed: %w", err)
	}
	return path, nil
}

func classify(c Case, v *guardrail.Verdict) Outcome {
	switch {
	case !c.ExpectsRejection() && v.Valid():
		return OutcomePassed
	case !c.ExpectsRejection():
		return OutcomeFalseReject
	case v.Valid():
		return OutcomeMissed
	case v.Layer() == c.ExpectLayer:
		return OutcomeCaught
	default:
		return OutcomeWrongLayer
	}
}
