package guardrail

import (
	"fmt"
	"strings"
)

// Rejection 某一层拒绝订单
type Rejection struct {
	Layer     Layer
	Reasons   []string
	Violation string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Layer, strings.Join(r.Reasons, "; "))
}

func reject(layer Layer, reasons ...string) *Rejection {
	return &Rejection{Layer: layer, Reasons: reasons}
}
