package rules

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// PayloadResult adds the payload objective to the payload outcome.
type PayloadResult struct {
	Outcome
	ObjectivePass bool `json:"objective_pass"`
}

// CheckPayload requires at least 8 AIM-120Ds (AB3). The objective also asks
// for 2 AIM-9Xs (AB4).
func CheckPayload(main workbook.Sheet) PayloadResult {
	r := newRuleList("payload")
	aim120 := main.Float("AB3")
	aim9 := main.Float("AB4")

	var res PayloadResult
	if !finite(aim120) || aim120 < 8-Tol.Eq {
		r.fail(fmt.Sprintf("Payload missing: need at least 8 AIM-120Ds (found %s)", Tenth(aim120)))
	} else {
		res.ObjectivePass = finite(aim9) && aim9 >= 2-Tol.Eq
	}
	res.Outcome = r.outcome()
	return res
}

// CheckFuel requires fuel available (O18) to cover fuel required (X40).
func CheckFuel(main workbook.Sheet) Outcome {
	r := newRuleList("fuel")
	avail := main.Float("O18")
	required := main.Float("X40")
	if !finite(avail) || !finite(required) || avail+Tol.Eq < required {
		r.fail(fmt.Sprintf("Fuel available (%s) is less than required (%s); check reserves.", Tenth(avail), Tenth(required)))
	}
	return r.outcome()
}

// CheckVolume requires positive remaining internal volume (Q23).
func CheckVolume(main workbook.Sheet) Outcome {
	r := newRuleList("volume")
	remaining := main.Float("Q23")
	if !finite(remaining) || remaining <= 0 {
		r.fail(fmt.Sprintf("Volume remaining must be positive (Q23 = %s).", Tenth(remaining)))
	}
	return r.outcome()
}

// Cost limits in $M per aircraft for a 187-aircraft buy.
const (
	CostFleetSize = 187.0
	CostThreshold = 120.0
	CostObjective = 110.0
)

// CostResult adds the cost objective to the cost outcome.
type CostResult struct {
	Outcome
	ObjectivePass bool `json:"objective_pass"`
}

// CheckCost evaluates the recurring cost (Q31) of the 187-aircraft estimate
// (N31).
func CheckCost(main workbook.Sheet) CostResult {
	r := newRuleList("cost")
	fleet := main.Float("N31")
	cost := main.Float("Q31")

	var res CostResult
	switch {
	case !within(fleet, CostFleetSize, Tol.Eq):
		r.fail(fmt.Sprintf("Number of aircraft (N31) must be 187 to evaluate cost thresholds (found %s).", Tenth(fleet)))
	case !finite(cost):
		r.fail("Recurring cost missing for 187-aircraft estimate.")
	default:
		r.failIf(cost >= CostThreshold+Tol.Eq, fmt.Sprintf("Cost above threshold: $%sM for 187 aircraft (needs <$120M).", Tenth(cost)))
		res.ObjectivePass = cost < CostObjective+Tol.Eq
	}
	res.Outcome = r.outcome()
	return res
}
