package benchmark

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"printshop/internal/app/domains/guardrail"
)

// Outcome 单条用例的回放结果
type Outcome string

const (
	OutcomeCaught      Outcome = "caught"
	OutcomeWrongLayer  Outcome = "wrong_layer"
	OutcomeMissed      Outcome = "missed"
	OutcomePassed      Outcome = "passed"
	OutcomeFalseReject Outcome = "false_reject"
	OutcomeInvalid     Outcome = "invalid"
)

// Result 单条用例结果
type Result struct {
	Case    Case
	Outcome Outcome
	Layer   guardrail.Layer
	Errors  []string
	Detail  string
}

// Report 回放汇总
type Report struct {
	Results []Result
	counts  map[Outcome]int
}

func (r *Report) add(res Result) {
	if r.counts == nil {
		r.counts = make(map[Outcome]int)
	}
	r.Results = append(r.Results, res)
	r.counts[res.Outcome]++
}

// Total 用例总数
func (r *Report) Total() int { return len(r.Results) }

// Count 某种结果的数量
func (r *Report) Count(o Outcome) int { return r.counts[o] }

// CatchRate 应拦截的订单中被拦截（任意层）的比例
func (r *Report) CatchRate() float64 {
	expected, caught := 0, 0
	for _, res := range r.Results {
		if !res.Case.ExpectsRejection() || res.Outcome == OutcomeInvalid {
			continue
		}
		expected++
		if res.Outcome != OutcomeMissed {
			caught++
		}
	}
	if expected == 0 {
		return 0
	}
	return float64(caught) / float64(expected)
}

// OK 没有漏拦、误拦或无效用例
func (r *Report) OK() bool {
	return r.Count(OutcomeMissed) == 0 && r.Count(OutcomeFalseReject) == 0 && r.Count(OutcomeInvalid) == 0
}

// Write 以表格形式输出
func (r *Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tEXPECTED\tGOT\tOUTCOME\tDETAIL")
	for _, res := range r.Results {
		detail := res.Detail
		if detail == "" {
			detail = strings.Join(res.Errors, "; ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			res.Case.ID, dash(res.Case.Category), dash(string(res.Case.ExpectLayer)), dash(string(res.Layer)), res.Outcome, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d cases, caught %d, wrong layer %d, missed %d, false reject %d, invalid %d, catch rate %.0f%%\n",
		r.Total(), r.Count(OutcomeCaught), r.Count(OutcomeWrongLayer), r.Count(OutcomeMissed),
		r.Count(OutcomeFalseReject), r.Count(OutcomeInvalid), r.CatchRate()*100)
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
