package rules

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// efficiencyGuards are fixed inputs the rest of the workbook is calibrated
// against.
var efficiencyGuards = []struct {
	ref  string
	want float64
	text string
}{
	{"O1", 0.0037, "0.0037"},
	{"Q1", 2.2, "2.2"},
	{"C30", 0.8, "0.8"},
	{"D30", 2.0, "2.0"},
}

// CheckEfficiency verifies the fixed efficiency inputs on the main sheet.
func CheckEfficiency(main workbook.Sheet) Outcome {
	r := newRuleList("efficiency")
	for _, g := range efficiencyGuards {
		v := main.Float(g.ref)
		r.failIf(!within(v, g.want, Tol.Eq), fmt.Sprintf("%s must be %s (found %s)", g.ref, g.text, Tenth(v)))
	}
	return r.outcome()
}

// Thrust table on the miss sheet, 0-based.
const (
	thrustDragRow  = 47
	thrustAvailRow = 48
	thrustFirstCol = 2
	thrustLastCol  = 13
)

// CheckThrust requires available thrust to exceed drag in every mission
// segment of the miss sheet.
func CheckThrust(miss workbook.Sheet) Outcome {
	r := newRuleList("thrust")
	short, missing := 0, 0
	for c := thrustFirstCol; c <= thrustLastCol; c++ {
		drag := miss.FloatValue(thrustDragRow, c)
		avail := miss.FloatValue(thrustAvailRow, c)
		if !finite(drag) || !finite(avail) {
			missing++
			continue
		}
		if drag >= avail-Tol.Eq {
			short++
		}
	}
	if short > 0 {
		r.failN(short, fmt.Sprintf("Thrust shortfall: Tavailable <= Drag for %d mission segment(s).", short))
	}
	if missing > 0 {
		r.failN(missing, fmt.Sprintf("Thrust data missing for %d mission segment(s).", missing))
	}
	return r.outcome()
}
