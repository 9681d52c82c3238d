package rules

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// Mission table rows (1-based) on the main sheet. Leg n lives in column 10+n.
const (
	missionAltRow   = 33
	missionMachRow  = 35
	missionABRow    = 36
	missionDistRow  = 38
	missionTimeRow  = 39
	missionFirstCol = 11
)

// missionLeg is the expected profile of one mission leg. Zero-valued
// distance/time mean the leg has no distance or time requirement.
type missionLeg struct {
	alt       float64
	mach      float64
	ab        float64
	checkMach bool
	checkAB   bool
	dist      float64
	time      float64
}

var missionLegs = [14]missionLeg{
	{alt: 0, mach: 0.268473504, ab: 100, checkAB: true},
	{alt: 2000, mach: 0.88, ab: 0, checkMach: true, checkAB: true},
	{alt: 35000, mach: 0.88, ab: 0, checkMach: true, checkAB: true},
	{alt: 35000, mach: 0.88, ab: 0, checkMach: true, checkAB: true},
	{alt: 35000, mach: 0.88, ab: 0, checkMach: true, checkAB: true},
	{alt: 35000, mach: 1.5, ab: 0, checkMach: true, checkAB: true, dist: 400},
	{alt: 35000, mach: 0.8, ab: 0, checkMach: true, checkAB: true},
	{alt: 30000, mach: 0.8, ab: 100, checkMach: true, checkAB: true, time: 2},
	{alt: 35000, mach: 1.5, ab: 0, checkMach: true, checkAB: true, dist: 400},
	{alt: 35000, mach: 0.8, ab: 0, checkMach: true, checkAB: true},
	{alt: 35000, mach: 0.88, ab: 0, checkMach: true, checkAB: true},
	{alt: 35000, mach: 0.88, ab: 0, checkMach: true, checkAB: true},
	{alt: 10000, mach: 0.4, ab: 0, checkMach: true, checkAB: true, time: 20},
	{alt: 0, mach: 0.0, ab: 0, checkMach: true},
}

// Mission radius thresholds in nautical miles.
const (
	RangeThreshold = 500.0
	RangeObjective = 800.0
)

// MissionResult carries the mission-table outcome plus the range sub-results
// that feed the range bucket and the range objective.
type MissionResult struct {
	Outcome
	RangePass          bool `json:"range_pass"`
	RangeObjectivePass bool `json:"range_objective_pass"`
}

// CheckMission compares the 14-leg mission table on the main sheet with the
// reference profile and classifies the mission radius.
func CheckMission(main workbook.Sheet, radius float64) MissionResult {
	r := newRuleList("mission")

	for i, exp := range missionLegs {
		leg := i + 1
		col := missionFirstCol + i

		alt := main.FloatAt(missionAltRow, col)
		if !within(alt, exp.alt, Tol.Alt) {
			r.fail(fmt.Sprintf("Leg %d Altitude must be %s (found %s)", leg, fixed(exp.alt, 0), Tenth(alt)))
		}
		if exp.checkMach {
			mach := main.FloatAt(missionMachRow, col)
			if !within(mach, exp.mach, Tol.Mach) {
				r.fail(fmt.Sprintf("Leg %d Mach must be %s (found %s)", leg, num(exp.mach), Tenth(mach)))
			}
		}
		if exp.checkAB {
			ab := main.FloatAt(missionABRow, col)
			if !within(ab, exp.ab, Tol.Eq) {
				r.fail(fmt.Sprintf("Leg %d AB must be %s%% (found %s%%)", leg, num(exp.ab), Tenth(ab)))
			}
		}
		if exp.dist > 0 {
			dist := main.FloatAt(missionDistRow, col)
			if !within(dist, exp.dist, Tol.Dist) {
				r.fail(fmt.Sprintf("Leg %d Supercruise distance must be %s (found %s)", leg, num(exp.dist), Tenth(dist)))
			}
		}
		if exp.time > 0 {
			tm := main.FloatAt(missionTimeRow, col)
			if !within(tm, exp.time, Tol.Time) {
				r.fail(fmt.Sprintf("Leg %d Time must be %s min (found %s)", leg, fixed(exp.time, 2), Tenth(tm)))
			}
		}
	}

	var res MissionResult
	switch {
	case !finite(radius):
		r.fail("Mission radius missing; unable to verify range requirement.")
	case radius >= RangeObjective-Tol.Dist:
		res.RangePass = true
		res.RangeObjectivePass = true
	case radius >= RangeThreshold-Tol.Dist:
		res.RangePass = true
	default:
		r.fail(fmt.Sprintf("Range below threshold: mission radius = %s nm (needs >= 500 nm)", Tenth(radius)))
	}

	res.Outcome = r.outcome()
	return res
}
