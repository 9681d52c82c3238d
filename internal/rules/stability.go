package rules

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// CheckStability bounds the static margin and the lateral-directional
// derivatives on the main sheet.
func CheckStability(main workbook.Sheet) Outcome {
	r := newRuleList("stability")
	sm := main.Float("M10")
	clb := main.Float("O10")
	cnb := main.Float("P10")
	ratio := main.Float("Q10")

	if !(sm >= -0.1 && sm <= 0.11) {
		r.fail(fmt.Sprintf("Static margin out of bounds (M10 = %s)", Tenth(sm)))
		if finite(sm) && sm < 0 {
			r.note("Warning: aircraft is statically unstable (SM < 0)")
		}
	}
	r.failIf(!(clb < -0.001), fmt.Sprintf("Clb must be < -0.001 (O10 = %s)", fixed(clb, 6)))
	r.failIf(!(cnb > 0.002), fmt.Sprintf("Cnb must be > 0.002 (P10 = %s)", fixed(cnb, 6)))
	r.failIf(!(ratio >= -1 && ratio <= -0.3), fmt.Sprintf("Cnb/Clb ratio must be between -1 and -0.3 (Q10 = %s)", Tenth(ratio)))

	r.conclude(fmt.Sprintf("Stability criteria failed in %d area(s).", r.failures))
	return r.outcome()
}
