package rules

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// Landing gear limits.
const (
	noseGearMin     = 80.0
	noseGearMax     = 95.0
	gearAngleTol    = 1e-2
	rotationSpeedKt = 200.0
)

// CheckGear evaluates the landing gear sheet: the 90/10 load split (J20),
// tipback (L20 < L21), rollover (M20 < M21) and the takeoff rotation speed
// (N20 < 200 kts and below N21, with N21 itself at most 200 kts).
func CheckGear(gear workbook.Sheet) Outcome {
	r := newRuleList("gear")

	split := gear.Float("J20")
	if !finite(split) || split < noseGearMin-Tol.Eq || split > noseGearMax+Tol.Eq {
		r.fail(fmt.Sprintf("Violates nose gear 90/10 rule: %s%% (must be between 80%% and 95%%)", Tenth(split)))
	}

	tipback, tipbackLimit := gear.Float("L20"), gear.Float("L21")
	if !finite(tipback) || !finite(tipbackLimit) || tipback >= tipbackLimit-gearAngleTol {
		r.fail(fmt.Sprintf("Violates tipback angle requirement: upper %s° must be less than lower %s°", Tenth(tipback), Tenth(tipbackLimit)))
	}

	rollover, rolloverLimit := gear.Float("M20"), gear.Float("M21")
	if !finite(rollover) || !finite(rolloverLimit) || rollover >= rolloverLimit-gearAngleTol {
		r.fail(fmt.Sprintf("Violates rollover angle requirement: upper %s° must be less than lower %s°", Tenth(rollover), Tenth(rolloverLimit)))
	}

	rotation, rotationRef := gear.Float("N20"), gear.Float("N21")
	if !finite(rotation) {
		r.fail("Takeoff rotation speed (N20) missing; must be <200 kts and below N21.")
	} else {
		r.failIf(rotation >= rotationSpeedKt-Tol.Eq,
			fmt.Sprintf("Violates takeoff rotation speed: N20 = %s kts (must be < 200 kts)", Tenth(rotation)))
		if !finite(rotationRef) {
			r.fail("Takeoff speed margin failed: N21 missing; N20 must be below N21.")
		} else {
			r.failIf(rotation >= rotationRef-Tol.Eq,
				fmt.Sprintf("Takeoff speed margin failed: N20 must be less than N21 (N20 = %s, N21 = %s)", Tenth(rotation), Tenth(rotationRef)))
			r.failIf(rotationRef > rotationSpeedKt+Tol.Eq,
				fmt.Sprintf("Takeoff speed too high: N21 = %s kts (must be ≤ 200 kts). Reduce your wing loading or T/W ratio.", Tenth(rotationRef)))
		}
	}

	r.conclude(fmt.Sprintf("Landing gear geometry outside limits in %d area(s).", r.failures))
	return r.outcome()
}
