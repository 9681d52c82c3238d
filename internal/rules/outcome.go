// Package rules holds the rubric checkers. Each checker is a pure function of
// one or more workbook sheets and returns an Outcome listing every deviation
// it found, in the order the rules were evaluated.
package rules

import (
	"math"
	"strconv"
)

// Tolerances are the absolute tolerances shared by the checkers.
type Tolerances struct {
	Eq   float64
	WTO  float64
	Alt  float64
	Mach float64
	Time float64
	Dist float64
}

// Tol is the rubric's tolerance table.
var Tol = Tolerances{
	Eq:   1e-3,
	WTO:  1e-2,
	Alt:  1,
	Mach: 1e-2,
	Time: 1e-2,
	Dist: 1e-3,
}

// Line is one feedback line. Advisory lines are informational and never
// affect Pass.
type Line struct {
	Text     string `json:"text"`
	Advisory bool   `json:"advisory,omitempty"`
}

// Outcome is the result of one checker.
type Outcome struct {
	Name     string `json:"name"`
	Pass     bool   `json:"pass"`
	Failures int    `json:"failures"`
	Lines    []Line `json:"lines"`
}

// Feedback returns the failure lines. Pass is always len(Feedback()) == 0.
func (o Outcome) Feedback() []string {
	var out []string
	for _, l := range o.Lines {
		if !l.Advisory {
			out = append(out, l.Text)
		}
	}
	return out
}

// Messages returns every line, advisory or not, in order.
func (o Outcome) Messages() []string {
	out := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		out = append(out, l.Text)
	}
	return out
}

// ruleList accumulates lines and failures while a checker runs.
type ruleList struct {
	name     string
	lines    []Line
	failures int
}

func newRuleList(name string) *ruleList {
	return &ruleList{name: name}
}

// fail records one failed rule.
func (r *ruleList) fail(msg string) {
	r.failN(1, msg)
}

// failN records n failed rules reported by a single line.
func (r *ruleList) failN(n int, msg string) {
	r.failures += n
	r.lines = append(r.lines, Line{Text: msg})
}

// failIf records msg when cond holds and reports cond.
func (r *ruleList) failIf(cond bool, msg string) bool {
	if cond {
		r.fail(msg)
	}
	return cond
}

// note records an advisory line.
func (r *ruleList) note(msg string) {
	r.lines = append(r.lines, Line{Text: msg, Advisory: true})
}

// conclude appends a summary line that is only meaningful once something
// failed. It does not count as a failure of its own.
func (r *ruleList) conclude(msg string) {
	if r.failures > 0 {
		r.lines = append(r.lines, Line{Text: msg})
	}
}

func (r *ruleList) outcome() Outcome {
	return Outcome{
		Name:     r.name,
		Pass:     r.failures == 0,
		Failures: r.failures,
		Lines:    r.lines,
	}
}

// within reports whether v is finite and |v-want| <= tol.
func within(v, want, tol float64) bool {
	return finite(v) && math.Abs(v-want) <= tol
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Tenth renders v rounded half up to one decimal using the shortest
// representation, so 2 renders as "2" and 0.25 as "0.3". Non-finite values
// render as "0".
func Tenth(v float64) string {
	if !finite(v) {
		return "0"
	}
	r := math.Floor(v*10+0.5) / 10
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// RoundTenth rounds half up to one decimal; non-finite values become 0.
func RoundTenth(v float64) float64 {
	if !finite(v) {
		return 0
	}
	r := math.Floor(v*10+0.5) / 10
	if r == 0 {
		return 0
	}
	return r
}

// num renders v in its shortest form ("400", "1.15").
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fixed renders v with exactly n decimals.
func fixed(v float64, n int) string {
	return strconv.FormatFloat(v, 'f', n, 64)
}
