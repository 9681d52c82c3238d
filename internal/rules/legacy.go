package rules

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// LegacyResult is the outcome of one of the older delta-scored rule sets.
// Deduction is what that rule set would have taken off; the grader reports
// it but never applies it.
type LegacyResult struct {
	Outcome
	Deduction int `json:"deduction"`
}

// Legacy mission tolerances are looser than the current table.
const (
	legacyAltTol  = 10
	legacyMachTol = 0.05
	legacyTimeTol = 0.1
	legacyDistTol = 0.5
)

// legacyLegColumns are the 1-based mission columns the legacy set reads:
// legs 1, 2, 3, 4, 6, 8, 9, 12 and 13.
var legacyLegColumns = []int{11, 12, 13, 14, 16, 18, 19, 22, 23}

// LegacyMission runs the older grouped mission-leg rules. Legs 3 and 4 share
// a rule, as do the two supercruise legs; both copies are reported.
func LegacyMission(main workbook.Sheet) LegacyResult {
	r := newRuleList("legacy_mission")

	read := func(row int) []float64 {
		out := make([]float64, len(legacyLegColumns))
		for i, col := range legacyLegColumns {
			out[i] = main.FloatAt(row, col)
		}
		return out
	}
	alt := read(missionAltRow)
	mach := read(missionMachRow)
	ab := read(missionABRow)
	dist := read(missionDistRow)
	tm := read(missionTimeRow)
	cruiseMach := main.Float("U4")

	off := func(v, want, tol float64) bool { return !within(v, want, tol) }
	below := func(v, floor float64) bool { return !finite(v) || v < floor }
	between := func(v, lo, hi, tol float64) bool {
		return finite(v) && finite(lo) && finite(hi) && v >= lo-tol && v <= hi+tol
	}

	r.failIf(off(alt[0], 0, legacyAltTol) || off(ab[0], 100, legacyAltTol),
		"Legacy leg 1 (takeoff): altitude must be 0 ft with 100% AB.")
	r.failIf(!between(alt[1], alt[0], alt[2], legacyAltTol),
		"Legacy leg 2 (climb): altitude must lie between legs 1 and 3.")
	r.failIf(!between(mach[1], mach[0], mach[2], legacyMachTol),
		"Legacy leg 2 (climb): Mach must lie between legs 1 and 3.")
	r.failIf(off(ab[1], 0, legacyAltTol),
		"Legacy leg 2 (climb): AB must be 0%.")

	for i, leg := range []int{3, 4} {
		idx := 2 + i
		r.failIf(below(alt[idx], 35000-legacyAltTol) || off(mach[idx], 0.9, legacyMachTol) || off(ab[idx], 0, legacyAltTol),
			fmt.Sprintf("Legacy leg %d (subsonic cruise): must be at or above 35000 ft at Mach 0.9 with 0%% AB.", leg))
	}

	supercruise := func(idx, leg int) {
		r.failIf(below(alt[idx], 35000-legacyAltTol) || off(mach[idx], cruiseMach, legacyMachTol) ||
			off(ab[idx], 0, legacyAltTol) || below(dist[idx], 150-legacyDistTol),
			fmt.Sprintf("Legacy leg %d (supercruise): must be at or above 35000 ft at the cruise Mach (U4) with 0%% AB for at least 150 nm.", leg))
	}
	supercruise(4, 6)
	r.failIf(below(alt[5], 30000-legacyAltTol) || below(mach[5], 1.2-legacyMachTol) ||
		off(ab[5], 100, legacyAltTol) || below(tm[5], 2-legacyTimeTol),
		"Legacy leg 8 (combat): must be at or above 30000 ft, Mach 1.2 or faster, 100% AB, for at least 2 min.")
	supercruise(6, 9)

	r.failIf(below(alt[7], 35000-legacyAltTol) || off(mach[7], 0.9, legacyMachTol) || off(ab[7], 0, legacyAltTol),
		"Legacy leg 12 (subsonic cruise): must be at or above 35000 ft at Mach 0.9 with 0% AB.")
	r.failIf(off(alt[8], 10000, legacyAltTol) || off(mach[8], 0.4, legacyMachTol) ||
		off(ab[8], 0, legacyAltTol) || off(tm[8], 20, legacyTimeTol),
		"Legacy leg 13 (loiter): must be 10000 ft at Mach 0.4 with 0% AB for 20 min.")

	deduction := min(2, r.failures)
	r.conclude(fmt.Sprintf("Legacy mission table deduction: -%d", deduction))
	return LegacyResult{Outcome: r.outcome(), Deduction: deduction}
}

// Legacy gear tolerances.
const (
	legacyPercentTol = 0.5
	legacyAngleTol   = 0.1
	legacySpeedTol   = 0.5
)

// LegacyGear runs the older landing gear rules, which read the nose gear
// share from J19 and repeat the rotation speed finding as an advisory.
func LegacyGear(gear workbook.Sheet) LegacyResult {
	r := newRuleList("legacy_gear")

	nose := gear.Float("J19")
	r.failIf(!finite(nose) || nose < 10-legacyPercentTol || nose > 20+legacyPercentTol,
		fmt.Sprintf("Legacy nose gear rule: J19 = %s%% (must be between 10%% and 20%%)", Tenth(nose)))

	tipback, tipbackLimit := gear.Float("L20"), gear.Float("L21")
	r.failIf(!finite(tipback) || !finite(tipbackLimit) || tipback >= tipbackLimit-legacyAngleTol,
		fmt.Sprintf("Legacy tipback rule: upper %s° must be less than lower %s°", Tenth(tipback), Tenth(tipbackLimit)))

	rollover, rolloverLimit := gear.Float("M20"), gear.Float("M21")
	r.failIf(!finite(rollover) || !finite(rolloverLimit) || rollover >= rolloverLimit-legacyAngleTol,
		fmt.Sprintf("Legacy rollover rule: upper %s° must be less than lower %s°", Tenth(rollover), Tenth(rolloverLimit)))

	rotation := gear.Float("N20")
	tooFast := !finite(rotation) || rotation >= rotationSpeedKt-legacySpeedTol
	r.failIf(tooFast, fmt.Sprintf("Legacy rotation speed rule: N20 = %s kts (must be < 200 kts)", Tenth(rotation)))
	if tooFast {
		r.note(fmt.Sprintf("Legacy takeoff speed advisory: N20 = %s kts", Tenth(rotation)))
	}

	deduction := min(4, r.failures)
	r.conclude(fmt.Sprintf("Legacy landing gear deduction: -%d", deduction))
	return LegacyResult{Outcome: r.outcome(), Deduction: deduction}
}
