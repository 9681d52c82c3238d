package rules

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Rubric/internal/interp"
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// Constraint table columns (0-based) on the main sheet, S..Y.
const (
	colWTO  = 18
	colAlt  = 19
	colMach = 20
	colN    = 21
	colAB   = 22
	colPs   = 23
	colCDx  = 24
)

// constraintRow is one flight condition of the constraint table.
type constraintRow struct {
	label string
	row   int // 1-based
	alt   float64
	mach  float64
	n     float64
	ab    float64
	ps    float64
	cdx   float64
}

var constraintRows = []constraintRow{
	{label: "MaxMach", row: 3, alt: 35000, mach: 2.0, n: 1, ab: 100, ps: 0, cdx: 0},
	{label: "CruiseMach", row: 4, alt: 35000, mach: 1.5, n: 1, ab: 0, ps: 0, cdx: 0},
	{label: "Supercruise", row: 5, alt: 50000, mach: 1.5, n: 1, ab: 100, ps: 0, cdx: 0},
	{label: "Cmbt Turn1", row: 6, alt: 30000, mach: 1.2, n: 3, ab: 100, ps: 0, cdx: 0},
	{label: "Cmbt Turn2", row: 7, alt: 10000, mach: 0.9, n: 4, ab: 100, ps: 0, cdx: 0},
	{label: "Ps1", row: 8, alt: 30000, mach: 1.15, n: 1, ab: 100, ps: 400, cdx: 0},
	{label: "Ps2", row: 9, alt: 10000, mach: 0.9, n: 1, ab: 0, ps: 400, cdx: 0},
}

// fieldRow is a takeoff or landing row of the constraint table.
type fieldRow struct {
	label    string
	row      int // 1-based
	vStall   float64
	mu       float64
	muTol    float64
	ab       float64
	distRef  string
	distance float64
	cdx      float64
}

var fieldRows = []fieldRow{
	{label: "Takeoff", row: 12, vStall: 1.2, mu: 0.03, muTol: 5e-4, ab: 100, distRef: "X12", distance: 3000, cdx: 0.035},
	{label: "Landing", row: 13, vStall: 1.3, mu: 0.5, muTol: 1e-3, ab: 0, distRef: "X13", distance: 5000, cdx: 0.045},
}

// constraintCurve is a required-T/W curve on the consts sheet, tabulated
// against the W/S axis row.
type constraintCurve struct {
	label string
	row   int // 1-based
}

var constraintCurves = []constraintCurve{
	{"MaxMach", 23},
	{"Supercruise", 24},
	{"CombatTurn1", 26},
	{"CombatTurn2", 27},
	{"Ps1", 28},
	{"Ps2", 29},
	{"Takeoff", 32},
}

// Curve grid on the consts sheet: W/S axis in row 22, columns K..AE.
const (
	curveAxisRow  = 22
	curveFirstCol = 10 // 0-based K
	curveLastCol  = 30 // 0-based AE
)

// Design point cells on the main sheet and the landing W/S limit on consts.
const (
	DesignWSRef  = "P13"
	DesignTWRef  = "Q13"
	landingWSRef = "L33"
)

// CheckConstraints verifies the constraint table on the main sheet and plots
// the design point against the constraint curves on the consts sheet. beta is
// the expected mid-mission weight fraction W/WTO.
func CheckConstraints(main, consts workbook.Sheet, beta float64) Outcome {
	r := newRuleList("constraints")
	tableErrors := 0
	add := func(msg string) {
		r.fail(msg)
		tableErrors++
	}

	for _, row := range constraintRows {
		checkConstraintRow(row, main, beta, add)
	}
	for _, row := range fieldRows {
		checkFieldRow(row, main, add)
	}

	ws, tw := main.Float(DesignWSRef), main.Float(DesignTWRef)
	designOK := finite(ws) && finite(tw)
	if !designOK {
		add(fmt.Sprintf("Design point missing: W/S (%s) and T/W (%s) must be numeric.", DesignWSRef, DesignTWRef))
	}

	var failedCurves []string
	if designOK {
		failedCurves = checkCurves(r, consts, ws, tw)
	}

	switch len(failedCurves) {
	case 0:
	case 1:
		r.conclude(fmt.Sprintf("Design did not meet the following constraint curve: %s.", failedCurves[0]))
	default:
		r.conclude(fmt.Sprintf("Design did not meet the following constraint curves: %s.", strings.Join(failedCurves, ", ")))
	}
	if tableErrors > 0 {
		r.conclude(fmt.Sprintf("Constraint table has %d entry issue(s).", tableErrors))
	}
	r.conclude("Constraint compliance not met; adjust design to satisfy all threshold constraints.")

	return r.outcome()
}

func checkConstraintRow(exp constraintRow, main workbook.Sheet, beta float64, add func(string)) {
	at := func(col int) float64 { return main.FloatValue(exp.row-1, col) }
	alt, mach, n := at(colAlt), at(colMach), at(colN)
	ab, ps, cdx, wto := at(colAB), at(colPs), at(colCDx), at(colWTO)

	if !within(alt, exp.alt, Tol.Alt) {
		add(fmt.Sprintf("%s: Altitude must be %s (found %s)", exp.label, num(exp.alt), Tenth(alt)))
	}
	if !within(mach, exp.mach, Tol.Mach) {
		add(fmt.Sprintf("%s: Mach must be %s (found %s)", exp.label, num(exp.mach), Tenth(mach)))
	}
	if !within(n, exp.n, Tol.Eq) {
		add(fmt.Sprintf("%s: n must be %s (found %s)", exp.label, fixed(exp.n, 3), Tenth(n)))
	}
	if !within(ab, exp.ab, Tol.Eq) {
		add(fmt.Sprintf("%s: AB must be %s%% (found %s%%)", exp.label, num(exp.ab), Tenth(ab)))
	}
	if !within(ps, exp.ps, Tol.Eq) {
		add(fmt.Sprintf("%s: Ps must be %s (found %s)", exp.label, fixed(exp.ps, 0), Tenth(ps)))
	}
	if !within(cdx, exp.cdx, Tol.Eq) {
		add(fmt.Sprintf("%s: CDx must be %s (found %s)", exp.label, fixed(exp.cdx, 3), Tenth(cdx)))
	}
	if !within(wto, beta, Tol.WTO) {
		add(fmt.Sprintf("%s: W/WTO must be set for 50%% fuel load (%s); found %s", exp.label, fixed(beta, 3), Tenth(wto)))
	}
}

func checkFieldRow(exp fieldRow, main workbook.Sheet, add func(string)) {
	at := func(col int) float64 { return main.FloatValue(exp.row-1, col) }
	alt, vStall, mu := at(colAlt), at(colMach), at(colN)
	ab, cdx, wto := at(colAB), at(colCDx), at(colWTO)
	dist := main.Float(exp.distRef)

	if !within(alt, 0, Tol.Alt) {
		add(fmt.Sprintf("%s: Altitude must be 0 (found %s)", exp.label, foundNonZero(alt)))
	}
	if !within(vStall, exp.vStall, Tol.Mach) {
		add(fmt.Sprintf("%s: V/Vstall must be %s (found %s)", exp.label, num(exp.vStall), Tenth(vStall)))
	}
	if !within(mu, exp.mu, exp.muTol) {
		add(fmt.Sprintf("%s: mu must be %s (found %s)", exp.label, num(exp.mu), Tenth(mu)))
	}
	if !within(ab, exp.ab, Tol.Eq) {
		add(fmt.Sprintf("%s: AB must be %s%% (found %s%%)", exp.label, num(exp.ab), Tenth(ab)))
	}
	if !within(dist, exp.distance, Tol.Dist) {
		add(fmt.Sprintf("%s distance must be %s ft (found %s)", exp.label, num(exp.distance), Tenth(dist)))
	}
	if !within(wto, 1, Tol.WTO) {
		add(fmt.Sprintf("%s: W/WTO must be 1.000 within ±%s (found %s)", exp.label, fixed(Tol.WTO, 3), Tenth(wto)))
	}
	if !within(cdx, exp.cdx, Tol.Eq) {
		add(fmt.Sprintf("%s: CDx must be %s (found %s)", exp.label, fixed(exp.cdx, 3), Tenth(cdx)))
	}
}

func foundNonZero(v float64) string {
	if !finite(v) {
		return "missing"
	}
	return "non-zero"
}

// curveInterpolate evaluates a constraint curve at a W/S value.
var curveInterpolate = interp.PCHIP

// checkCurves evaluates every constraint curve at the design W/S and returns
// the labels of the curves the design falls below. Lines are only committed
// once all curves were evaluated; a panic discards them and leaves a note.
func checkCurves(r *ruleList, consts workbook.Sheet, ws, tw float64) (failed []string) {
	var lines []Line

	defer func() {
		if rec := recover(); rec != nil {
			failed = nil
			r.note(fmt.Sprintf("Could not perform constraint curve check due to error: %v", rec))
			return
		}
		for _, l := range lines {
			if l.Advisory {
				r.note(l.Text)
			} else {
				r.fail(l.Text)
			}
		}
	}()

	axis := curveRow(consts, curveAxisRow)
	for _, c := range constraintCurves {
		required, err := curveInterpolate(axis, curveRow(consts, c.row), ws)
		if err != nil {
			lines = append(lines, Line{Text: fmt.Sprintf("Could not verify constraint curve %s: %v", c.label, err), Advisory: true})
			continue
		}
		if tw < required-Tol.Eq {
			failed = append(failed, c.label)
			lines = append(lines, Line{Text: fmt.Sprintf("Constraint curve %s: T/W=%s below required %s at W/S=%s",
				c.label, Tenth(tw), Tenth(required), Tenth(ws))})
		}
	}

	limit := consts.Float(landingWSRef)
	switch {
	case !finite(limit):
		failed = append(failed, "Landing")
		lines = append(lines, Line{Text: fmt.Sprintf("Landing constraint limit (Consts %s) missing; unable to verify landing W/S.", landingWSRef)})
	case ws > limit:
		failed = append(failed, "Landing")
		lines = append(lines, Line{Text: fmt.Sprintf("Landing constraint violated: W/S = %s exceeds limit of %s", Tenth(ws), Tenth(limit))})
	}
	return failed
}

func curveRow(consts workbook.Sheet, row int) []float64 {
	out := make([]float64, 0, curveLastCol-curveFirstCol+1)
	for c := curveFirstCol; c <= curveLastCol; c++ {
		out = append(out, consts.FloatValue(row-1, c))
	}
	return out
}
