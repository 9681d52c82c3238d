package rules

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Rubric/internal/fixture"
	"github.com/MikeSquared-Agency/Rubric/internal/interp"
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// assertConsistent checks the Outcome contract: Pass iff no failure lines.
func assertConsistent(t *testing.T, o Outcome) {
	t.Helper()
	assert.Equal(t, len(o.Feedback()) == 0, o.Pass, "%s: pass=%v feedback=%q", o.Name, o.Pass, o.Feedback())
	assert.Equal(t, o.Failures == 0, o.Pass, "%s: failures=%d", o.Name, o.Failures)
}

func contains(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func sheets(wb *workbook.Workbook) (main, geom workbook.Sheet) {
	return wb.Sheet(workbook.SheetMain), wb.Sheet(workbook.SheetGeom)
}

func TestTenth(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{0.25, "0.3"},
		{812.46, "812.5"},
		{-0.04, "0"},
		{-0.06, "-0.1"},
		{1e-3, "0"},
		{math.NaN(), "0"},
		{math.Inf(-1), "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tenth(tt.in), "Tenth(%v)", tt.in)
	}
	assert.Equal(t, 97.5, RoundTenth(97.45))
	assert.Equal(t, 0.0, RoundTenth(math.NaN()))
}

func TestReferenceWorkbookPassesEveryCheck(t *testing.T) {
	wb := fixture.Reference()
	main, geom := sheets(wb)

	mission := CheckMission(main, main.Float("Y37"))
	assert.True(t, mission.RangePass)
	assert.True(t, mission.RangeObjectivePass)

	payload := CheckPayload(main)
	assert.True(t, payload.ObjectivePass)
	cost := CheckCost(main)
	assert.True(t, cost.ObjectivePass)

	outcomes := []Outcome{
		mission.Outcome,
		CheckEfficiency(main),
		CheckThrust(wb.Sheet(workbook.SheetMiss)),
		CheckControlAttachment(main, geom),
		CheckConstraints(main, wb.Sheet(workbook.SheetConsts), fixture.Beta),
		payload.Outcome,
		CheckStability(main),
		CheckFuel(main),
		CheckVolume(main),
		cost.Outcome,
		CheckGear(wb.Sheet(workbook.SheetGear)),
		CheckAeroFormulas(wb.Sheet(workbook.SheetAero)),
	}
	for _, o := range outcomes {
		assert.True(t, o.Pass, "%s failed: %q", o.Name, o.Messages())
		assert.Empty(t, o.Lines, "%s", o.Name)
		assertConsistent(t, o)
	}

	assert.Empty(t, InvalidCells(main))
	assert.Empty(t, MissingGeometry(main))
}

func TestCheckMission(t *testing.T) {
	t.Run("leg deviations", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "M33", 31000) // leg 3 altitude
		fixture.Set(wb, workbook.SheetMain, "P38", 380)   // leg 6 distance
		fixture.Set(wb, workbook.SheetMain, "R39", 3)     // leg 8 time
		fixture.Set(wb, workbook.SheetMain, "Q35", 0.97)  // leg 7 Mach
		fixture.Set(wb, workbook.SheetMain, "X36", 50)    // leg 14 AB is not checked
		fixture.Set(wb, workbook.SheetMain, "K35", 0.5)   // leg 1 Mach is not checked

		main := wb.Sheet(workbook.SheetMain)
		res := CheckMission(main, fixture.Radius)
		assertConsistent(t, res.Outcome)
		assert.False(t, res.Pass)
		assert.True(t, res.RangePass)
		assert.Equal(t, []string{
			"Leg 3 Altitude must be 35000 (found 31000)",
			"Leg 6 Supercruise distance must be 400 (found 380)",
			"Leg 7 Mach must be 0.8 (found 1)",
			"Leg 8 Time must be 2.00 min (found 3)",
		}, res.Feedback())
	})

	t.Run("missing leg value fails", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.SetCell(wb, workbook.SheetMain, "L33", workbook.Absent())
		res := CheckMission(wb.Sheet(workbook.SheetMain), fixture.Radius)
		assert.Equal(t, []string{"Leg 2 Altitude must be 2000 (found 0)"}, res.Feedback())
	})

	radii := []struct {
		name      string
		radius    float64
		rangePass bool
		objective bool
		line      string
	}{
		{"objective", 800, true, true, ""},
		{"threshold", 650, true, false, ""},
		{"just under threshold within tolerance", 499.9995, true, false, ""},
		{"below threshold", 420.04, false, false, "Range below threshold: mission radius = 420 nm (needs >= 500 nm)"},
		{"missing", math.NaN(), false, false, "Mission radius missing; unable to verify range requirement."},
	}
	for _, tt := range radii {
		t.Run("radius "+tt.name, func(t *testing.T) {
			res := CheckMission(fixture.Reference().Sheet(workbook.SheetMain), tt.radius)
			assertConsistent(t, res.Outcome)
			assert.Equal(t, tt.rangePass, res.RangePass)
			assert.Equal(t, tt.objective, res.RangeObjectivePass)
			if tt.line == "" {
				assert.True(t, res.Pass)
			} else {
				assert.Equal(t, []string{tt.line}, res.Feedback())
			}
		})
	}
}

func TestCheckEfficiency(t *testing.T) {
	wb := fixture.Reference()
	fixture.Set(wb, workbook.SheetMain, "Q1", 2.3)
	fixture.SetCell(wb, workbook.SheetMain, "D30", workbook.ErrorMarker("#REF!"))

	o := CheckEfficiency(wb.Sheet(workbook.SheetMain))
	assertConsistent(t, o)
	assert.Equal(t, []string{"Q1 must be 2.2 (found 2.3)", "D30 must be 2.0 (found 0)"}, o.Feedback())
}

func TestCheckThrust(t *testing.T) {
	t.Run("shortfall", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMiss, "C49", 4000) // available < drag in segment 0
		fixture.Set(wb, workbook.SheetMiss, "N48", 8000) // drag == available in the last segment
		o := CheckThrust(wb.Sheet(workbook.SheetMiss))
		assertConsistent(t, o)
		assert.Equal(t, 2, o.Failures)
		assert.Equal(t, []string{"Thrust shortfall: Tavailable <= Drag for 2 mission segment(s)."}, o.Feedback())
	})

	t.Run("missing sheet", func(t *testing.T) {
		o := CheckThrust(nil)
		assertConsistent(t, o)
		assert.Equal(t, 12, o.Failures)
		assert.Equal(t, []string{"Thrust data missing for 12 mission segment(s)."}, o.Feedback())
	})
}

func TestCheckControlAttachment(t *testing.T) {
	t.Run("pcs too far aft", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "C23", 58)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{"PCS X-location too far aft. Must overlap at least 25% of root chord."}, o.Feedback())
	})

	t.Run("vt off fuselage on the wing", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "H24", 6)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.True(t, o.Pass)
		assert.Equal(t, []string{"Vertical tail mounted off the fuselage; ensure structural support at the wing."}, o.Messages())

		fixture.Set(wb, workbook.SheetGeom, "L41", 55)
		main, geom = sheets(wb)
		o = CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.True(t, contains(o.Feedback(), "must overlap at least 80% of its root chord"))
	})

	t.Run("strake", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "D18", 2)
		main, geom := sheets(wb)
		assert.True(t, CheckControlAttachment(main, geom).Pass)

		fixture.Set(wb, workbook.SheetGeom, "L155", 20)
		main, geom = sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{"Strake disconnected."}, o.Feedback())
	})

	t.Run("aspect ratios", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "C19", 3.2)
		fixture.Set(wb, workbook.SheetMain, "H19", 2.95)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{
			"Pitch control surface aspect ratio (3.20) must be lower than wing aspect ratio (3.00).",
			"Vertical tail aspect ratio (2.95) must be lower than wing aspect ratio (3.00).",
		}, o.Feedback())
	})

	t.Run("engine clearance and protrusion", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "H29", 7.6)
		fixture.Set(wb, workbook.SheetMain, "I29", 35)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{
			"Fuselage minimum width (8.00 ft) must exceed engine diameter + 0.5 ft (8.10 ft).",
			"Engine nacelles protrude 10.00 ft past the fuselage end (limit 7.60 ft).",
		}, o.Feedback())
	})

	t.Run("tip overhang", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetGeom, "L118", 80)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assert.Equal(t, []string{"Pitch control surface extends 20.00 ft beyond the fuselage end (limit 16.00 ft)."}, o.Feedback())
	})

	t.Run("vt too far aft", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "H23", 59)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{"VT X-location too far aft. Must overlap at least 25% of root chord."}, o.Feedback())
	})

	t.Run("pcs outside fuselage height", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "C25", 100)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{"PCS Z-location outside fuselage vertical bounds."}, o.Feedback())
	})

	t.Run("vt lateral position missing", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.SetCell(wb, workbook.SheetMain, "H24", workbook.Absent())
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{"Unable to verify vertical tail lateral placement due to missing geometry data"}, o.Feedback())
	})

	t.Run("component beyond fuselage end", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "E23", 61)
		main, geom := sheets(wb)
		o := CheckControlAttachment(main, geom)
		assertConsistent(t, o)
		assert.Equal(t, []string{"One or more components X-location extend beyond the fuselage end (B32 = 60)"}, o.Feedback())
	})

	t.Run("missing geom sheet", func(t *testing.T) {
		main, _ := sheets(fixture.Reference())
		o := CheckControlAttachment(main, nil)
		assertConsistent(t, o)
		assert.False(t, o.Pass)
		fb := o.Feedback()
		assert.True(t, contains(fb, "Unable to verify PCS placement"))
		assert.True(t, contains(fb, "Unable to verify vertical tail placement"))
		assert.True(t, contains(fb, "Unable to verify pitch control surface tip overhang"))
		assert.True(t, contains(fb, "Unable to verify vertical tail tip overhang"))
	})
}

func TestCheckConstraints(t *testing.T) {
	t.Run("design below a curve", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "Q13", 0.84)
		o := CheckConstraints(wb.Sheet(workbook.SheetMain), wb.Sheet(workbook.SheetConsts), fixture.Beta)
		assertConsistent(t, o)
		assert.Equal(t, 1, o.Failures)
		assert.Equal(t, []string{
			"Constraint curve MaxMach: T/W=0.8 below required 0.9 at W/S=60",
			"Design did not meet the following constraint curve: MaxMach.",
			"Constraint compliance not met; adjust design to satisfy all threshold constraints.",
		}, o.Feedback())
	})

	t.Run("landing limit", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "P13", 90)
		fixture.Set(wb, workbook.SheetMain, "Q13", 2)
		o := CheckConstraints(wb.Sheet(workbook.SheetMain), wb.Sheet(workbook.SheetConsts), fixture.Beta)
		assertConsistent(t, o)
		assert.Equal(t, []string{
			"Landing constraint violated: W/S = 90 exceeds limit of 80",
			"Design did not meet the following constraint curve: Landing.",
			"Constraint compliance not met; adjust design to satisfy all threshold constraints.",
		}, o.Feedback())
	})

	t.Run("table entries", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "S5", 0.9)     // Supercruise W/WTO
		fixture.Set(wb, workbook.SheetMain, "V12", 0.0304) // takeoff mu within 5e-4
		fixture.Set(wb, workbook.SheetMain, "V13", 0.4)    // landing mu
		fixture.SetCell(wb, workbook.SheetMain, "T12", workbook.Absent())
		o := CheckConstraints(wb.Sheet(workbook.SheetMain), wb.Sheet(workbook.SheetConsts), fixture.Beta)
		assertConsistent(t, o)
		assert.Equal(t, []string{
			"Supercruise: W/WTO must be set for 50% fuel load (0.750); found 0.9",
			"Takeoff: Altitude must be 0 (found missing)",
			"Landing: mu must be 0.5 (found 0.4)",
			"Constraint table has 3 entry issue(s).",
			"Constraint compliance not met; adjust design to satisfy all threshold constraints.",
		}, o.Feedback())
	})

	t.Run("missing design point", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.SetCell(wb, workbook.SheetMain, "P13", workbook.Text("tbd"))
		o := CheckConstraints(wb.Sheet(workbook.SheetMain), wb.Sheet(workbook.SheetConsts), fixture.Beta)
		assertConsistent(t, o)
		assert.Equal(t, 1, o.Failures)
		assert.Equal(t, "Design point missing: W/S (P13) and T/W (Q13) must be numeric.", o.Feedback()[0])
	})

	t.Run("missing consts sheet", func(t *testing.T) {
		main := fixture.Reference().Sheet(workbook.SheetMain)
		o := CheckConstraints(main, nil, fixture.Beta)
		assertConsistent(t, o)
		assert.Equal(t, 1, o.Failures, "only the landing limit counts")

		var notes []string
		for _, l := range o.Lines {
			if l.Advisory {
				notes = append(notes, l.Text)
			}
		}
		require.Len(t, notes, len(constraintCurves))
		assert.Equal(t, "Could not verify constraint curve MaxMach: interp: fewer than two finite samples", notes[0])
	})

	t.Run("landing limit missing", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.SetCell(wb, workbook.SheetConsts, "L33", workbook.Absent())
		o := CheckConstraints(wb.Sheet(workbook.SheetMain), wb.Sheet(workbook.SheetConsts), fixture.Beta)
		assertConsistent(t, o)
		assert.False(t, o.Pass)
		assert.Equal(t, 1, o.Failures)
		assert.Equal(t, []string{
			"Landing constraint limit (Consts L33) missing; unable to verify landing W/S.",
			"Design did not meet the following constraint curve: Landing.",
			"Constraint compliance not met; adjust design to satisfy all threshold constraints.",
		}, o.Feedback())
	})

	t.Run("curve evaluation panic", func(t *testing.T) {
		calls := 0
		curveInterpolate = func(xs, ys []float64, x float64) (float64, error) {
			calls++
			if calls == 2 {
				panic("curve row out of range")
			}
			return interp.PCHIP(xs, ys, x)
		}
		t.Cleanup(func() { curveInterpolate = interp.PCHIP })

		// MaxMach fails before the panic; its line must be discarded.
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetMain, "Q13", 0.84)
		o := CheckConstraints(wb.Sheet(workbook.SheetMain), wb.Sheet(workbook.SheetConsts), fixture.Beta)
		assertConsistent(t, o)
		assert.True(t, o.Pass)
		assert.Equal(t, 0, o.Failures)
		assert.Equal(t, []string{"Could not perform constraint curve check due to error: curve row out of range"}, o.Messages())
	})

	t.Run("beta mismatch with workbook fuel", func(t *testing.T) {
		main := fixture.Reference().Sheet(workbook.SheetMain)
		o := CheckConstraints(main, fixture.Reference().Sheet(workbook.SheetConsts), 0.87620980519917)
		assertConsistent(t, o)
		assert.Equal(t, 7, o.Failures)
	})
}

func TestCheckPayload(t *testing.T) {
	wb := fixture.Reference()
	fixture.Set(wb, workbook.SheetMain, "AB4", 1)
	res := CheckPayload(wb.Sheet(workbook.SheetMain))
	assert.True(t, res.Pass)
	assert.False(t, res.ObjectivePass)

	fixture.Set(wb, workbook.SheetMain, "AB3", 6)
	res = CheckPayload(wb.Sheet(workbook.SheetMain))
	assertConsistent(t, res.Outcome)
	assert.Equal(t, []string{"Payload missing: need at least 8 AIM-120Ds (found 6)"}, res.Feedback())
}

func TestCheckStability(t *testing.T) {
	wb := fixture.Reference()
	fixture.Set(wb, workbook.SheetMain, "M10", -0.2)
	fixture.SetCell(wb, workbook.SheetMain, "P10", workbook.Absent())

	o := CheckStability(wb.Sheet(workbook.SheetMain))
	assertConsistent(t, o)
	assert.Equal(t, []string{
		"Static margin out of bounds (M10 = -0.2)",
		"Warning: aircraft is statically unstable (SM < 0)",
		"Cnb must be > 0.002 (P10 = NaN)",
		"Stability criteria failed in 2 area(s).",
	}, o.Messages())
	assert.Len(t, o.Feedback(), 3)
}

func TestCheckFuelAndVolume(t *testing.T) {
	wb := fixture.Reference()
	fixture.Set(wb, workbook.SheetMain, "X40", 5200)
	fixture.Set(wb, workbook.SheetMain, "Q23", 0)
	main := wb.Sheet(workbook.SheetMain)

	fuel := CheckFuel(main)
	assertConsistent(t, fuel)
	assert.Equal(t, []string{"Fuel available (5000) is less than required (5200); check reserves."}, fuel.Feedback())

	vol := CheckVolume(main)
	assertConsistent(t, vol)
	assert.Equal(t, []string{"Volume remaining must be positive (Q23 = 0)."}, vol.Feedback())
}

func TestCheckCost(t *testing.T) {
	tests := []struct {
		name      string
		fleet     float64
		cost      float64
		pass      bool
		objective bool
	}{
		{"objective", 187, 109.99, true, true},
		{"threshold", 187, 115, true, false},
		{"over", 187, 121, false, false},
		{"wrong fleet", 150, 90, false, false},
		{"missing cost", 187, math.NaN(), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := fixture.Reference()
			fixture.Set(wb, workbook.SheetMain, "N31", tt.fleet)
			fixture.Set(wb, workbook.SheetMain, "Q31", tt.cost)
			res := CheckCost(wb.Sheet(workbook.SheetMain))
			assertConsistent(t, res.Outcome)
			assert.Equal(t, tt.pass, res.Pass)
			assert.Equal(t, tt.objective, res.ObjectivePass)
		})
	}
}

func TestCheckGear(t *testing.T) {
	t.Run("rotation chain", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetGear, "N20", 205)
		fixture.Set(wb, workbook.SheetGear, "N21", 204)
		o := CheckGear(wb.Sheet(workbook.SheetGear))
		assertConsistent(t, o)
		assert.Equal(t, 3, o.Failures)
		assert.Equal(t, []string{
			"Violates takeoff rotation speed: N20 = 205 kts (must be < 200 kts)",
			"Takeoff speed margin failed: N20 must be less than N21 (N20 = 205, N21 = 204)",
			"Takeoff speed too high: N21 = 204 kts (must be ≤ 200 kts). Reduce your wing loading or T/W ratio.",
			"Landing gear geometry outside limits in 3 area(s).",
		}, o.Feedback())
	})

	t.Run("missing sheet", func(t *testing.T) {
		o := CheckGear(nil)
		assertConsistent(t, o)
		assert.Equal(t, 4, o.Failures)
		assert.Equal(t, "Takeoff rotation speed (N20) missing; must be <200 kts and below N21.", o.Feedback()[3])
	})

	t.Run("nose split bounds", func(t *testing.T) {
		wb := fixture.Reference()
		fixture.Set(wb, workbook.SheetGear, "J20", 96)
		o := CheckGear(wb.Sheet(workbook.SheetGear))
		assert.Equal(t, "Violates nose gear 90/10 rule: 96% (must be between 80% and 95%)", o.Feedback()[0])
	})
}

func TestPreflight(t *testing.T) {
	wb := fixture.Reference()
	fixture.SetCell(wb, workbook.SheetMain, "Z2", workbook.ErrorMarker("#DIV/0!"))
	fixture.SetCell(wb, workbook.SheetMain, "C1", workbook.ErrorMarker("#N/A"))
	fixture.SetCell(wb, workbook.SheetMain, "A2", workbook.Number(math.Inf(1)))
	assert.Equal(t, []string{"C1", "A2", "Z2"}, InvalidCells(wb.Sheet(workbook.SheetMain)))

	fixture.SetCell(wb, workbook.SheetMain, "E35", workbook.Absent())
	fixture.SetCell(wb, workbook.SheetMain, "C20", workbook.Text("n/a"))
	fixture.SetCell(wb, workbook.SheetMain, "D27", workbook.Absent()) // label cell, skipped
	assert.Equal(t, []string{"C20", "E35"}, MissingGeometry(wb.Sheet(workbook.SheetMain)))

	assert.Len(t, MissingGeometry(nil), 7*10-7+4*20)
}

func TestCheckAeroFormulas(t *testing.T) {
	wb := fixture.Reference()
	fixture.Set(wb, workbook.SheetAero, "G4", 0.1)
	o := CheckAeroFormulas(wb.Sheet(workbook.SheetAero))
	assert.True(t, o.Pass)
	assert.Equal(t, []string{"Aero tab formulas inactive in 1 key cell(s); check A15, G3, and G10."}, o.Messages())

	// Blank pairs compare equal.
	assert.Equal(t, "Aero tab formulas inactive in 3 key cell(s); check A15, G3, and G10.",
		CheckAeroFormulas(workbook.Sheet{}).Messages()[0])
}

func TestLegacyRuleSets(t *testing.T) {
	wb := fixture.Reference()

	mission := LegacyMission(wb.Sheet(workbook.SheetMain))
	assertConsistent(t, mission.Outcome)
	assert.Equal(t, 1, mission.Deduction)
	assert.True(t, contains(mission.Feedback(), "Legacy leg 8 (combat)"))

	// Legs 3 and 4 share a rule; breaking the shared cruise Mach reports both.
	fixture.Set(wb, workbook.SheetMain, "M35", 0.96)
	fixture.Set(wb, workbook.SheetMain, "N35", 0.96)
	mission = LegacyMission(wb.Sheet(workbook.SheetMain))
	assert.Equal(t, 3, mission.Failures)
	assert.Equal(t, 2, mission.Deduction)

	gear := LegacyGear(wb.Sheet(workbook.SheetGear))
	assert.True(t, gear.Pass)
	assert.Zero(t, gear.Deduction)

	fixture.SetCell(wb, workbook.SheetGear, "N20", workbook.Absent())
	gear = LegacyGear(wb.Sheet(workbook.SheetGear))
	assertConsistent(t, gear.Outcome)
	assert.Equal(t, 1, gear.Deduction)
	assert.Equal(t, []string{
		"Legacy rotation speed rule: N20 = 0 kts (must be < 200 kts)",
		"Legacy takeoff speed advisory: N20 = 0 kts",
		"Legacy landing gear deduction: -1",
	}, gear.Messages())
}
