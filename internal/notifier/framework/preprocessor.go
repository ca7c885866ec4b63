package framework

import (
	"context"
	"fmt"
)

// Step 函数链中的一步
type Step struct {
	Name string
	Fn   ProcessorFunc
}

// PreProcessor 函数链处理器
type PreProcessor struct {
	steps []Step
}

// NewPreProcessor 创建函数链处理器
func NewPreProcessor(steps ...Step) *PreProcessor {
	return &PreProcessor{steps: steps}
}

// Run 顺序执行，任一步返回 error 立即停止
// 返回的错误保留原始错误链，调用方据此判断是否可重试
func (p *PreProcessor) Run(ctx context.Context) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
		if err := step.Fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}
