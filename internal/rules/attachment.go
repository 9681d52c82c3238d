package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

const (
	attachTol        = 1e-3
	aspectRatioTol   = 0.1
	rootOverlap      = 0.25
	vtWingFraction   = 0.8
	engineClearance  = 0.5
	strakeGapTol     = 0.5
	fuselageFirstRow = 34
	fuselageLastRow  = 53
)

// CheckControlAttachment verifies that control surfaces, strakes and engines
// are physically attached to (and contained by) the fuselage described on the
// main and geom sheets.
func CheckControlAttachment(main, geom workbook.Sheet) Outcome {
	r := newRuleList("control")

	fuselageEnd := main.Float("B32")

	// PCS and VT must overlap the fuselage by a quarter of their root chord.
	pcsX, pcsRoot := main.Float("C23"), geom.Float("C8")
	switch {
	case !finite(fuselageEnd) || !finite(pcsX) || !finite(pcsRoot):
		r.fail("Unable to verify PCS placement due to missing geometry data")
	case pcsX > fuselageEnd-rootOverlap*pcsRoot:
		r.fail("PCS X-location too far aft. Must overlap at least 25% of root chord.")
	}

	vtX, vtRoot := main.Float("H23"), geom.Float("C10")
	switch {
	case !finite(fuselageEnd) || !finite(vtX) || !finite(vtRoot):
		r.fail("Unable to verify vertical tail placement due to missing geometry data")
	case vtX > fuselageEnd-rootOverlap*vtRoot:
		r.fail("VT X-location too far aft. Must overlap at least 25% of root chord.")
	}

	pcsZ, fuseZ, fuseHeight := main.Float("C25"), main.Float("D52"), main.Float("F52")
	switch {
	case !finite(pcsZ) || !finite(fuseZ) || !finite(fuseHeight):
		r.fail("Unable to verify PCS vertical placement due to missing geometry data")
	case pcsZ < fuseZ-fuseHeight/2 || pcsZ > fuseZ+fuseHeight/2:
		r.fail("PCS Z-location outside fuselage vertical bounds.")
	}

	vtY, fuseWidth := main.Float("H24"), main.Float("E52")
	vtOffFuselage := false
	switch {
	case !finite(vtY) || !finite(fuseWidth):
		r.fail("Unable to verify vertical tail lateral placement due to missing geometry data")
	case math.Abs(vtY) > fuseWidth/2+attachTol:
		vtOffFuselage = true
		r.note("Vertical tail mounted off the fuselage; ensure structural support at the wing.")
	}

	if main.Float("D18") > 1 {
		checkStrake(r, geom)
	}

	// B23..H23 are the component X-locations.
	if !finite(fuselageEnd) {
		r.fail("Unable to verify component X-locations due to missing fuselage end (B32)")
	} else {
		for c := 1; c <= 7; c++ {
			if x := main.FloatValue(22, c); finite(x) && x >= fuselageEnd {
				r.fail(fmt.Sprintf("One or more components X-location extend beyond the fuselage end (B32 = %s)", Tenth(fuselageEnd)))
				break
			}
		}
	}

	if vtOffFuselage {
		checkVTWingOverlap(r, geom)
	}

	checkAspectRatios(r, main)

	engineDiameter := main.Float("H29")
	inletX, compressorX := main.Float("F31"), main.Float("F32")
	checkFuselageClearance(r, main, geom, fuselageEnd, engineDiameter, inletX+compressorX)

	engineLength := main.Float("I29")
	if !finite(engineDiameter) || !finite(fuselageEnd) || !finite(inletX) || !finite(compressorX) || !finite(engineLength) {
		r.fail("Unable to verify engine protrusion due to missing geometry data")
	} else if protrusion := inletX + compressorX + engineLength - fuselageEnd; protrusion > engineDiameter+attachTol {
		r.fail(fmt.Sprintf("Engine nacelles protrude %s ft past the fuselage end (limit %s ft).", fixed(protrusion, 2), fixed(engineDiameter, 2)))
	}

	return r.outcome()
}

// checkStrake requires the wing leading edge at the strake tip to reach the
// strake (geom L155).
func checkStrake(r *ruleList, geom workbook.Sheet) {
	sweep := geom.Float("K15")
	y := geom.Float("M152")
	strake := geom.Float("L155")
	apex := geom.Float("L38")
	if !finite(sweep) || !finite(y) || !finite(strake) || !finite(apex) {
		r.fail("Unable to verify strake attachment due to missing geometry data")
		return
	}
	wingLE := y/math.Tan((90-sweep)*math.Pi/180) + apex
	r.failIf(!(wingLE < strake+strakeGapTol), "Strake disconnected.")
}

// checkVTWingOverlap applies when the vertical tail sits outboard of the
// fuselage: its root chord must overlap the wing trailing edge by 80%.
func checkVTWingOverlap(r *ruleList, geom workbook.Sheet) {
	apexX, apexY := geom.FloatValue(162, 11), geom.FloatValue(162, 12)
	rootTEX, rootTEY := geom.FloatValue(165, 11), geom.FloatValue(165, 12)
	wingTEX, wingTEY := geom.FloatValue(40, 11), geom.FloatValue(40, 12)
	for _, v := range []float64{apexX, apexY, rootTEX, rootTEY, wingTEX, wingTEY} {
		if !finite(v) {
			r.fail("Unable to verify vertical tail overlap with wing due to missing geometry data")
			return
		}
	}
	chord := rootTEX - apexX
	overlap := math.Max(0, math.Min(wingTEX, rootTEX)-apexX)
	if !(chord > 0) || overlap+attachTol < vtWingFraction*chord {
		r.fail("Vertical tail mounted on the wing must overlap at least 80% of its root chord with the wing trailing edge.")
	}
}

func checkAspectRatios(r *ruleList, main workbook.Sheet) {
	wingAR, pcsAR, vtAR := main.Float("B19"), main.Float("C19"), main.Float("H19")
	if !finite(wingAR) || !finite(pcsAR) || !finite(vtAR) {
		r.fail("Unable to verify aspect ratios due to missing geometry data")
		return
	}
	r.failIf(pcsAR > wingAR+aspectRatioTol,
		fmt.Sprintf("Pitch control surface aspect ratio (%s) must be lower than wing aspect ratio (%s).", fixed(pcsAR, 2), fixed(wingAR, 2)))
	r.failIf(vtAR >= wingAR-aspectRatioTol,
		fmt.Sprintf("Vertical tail aspect ratio (%s) must be lower than wing aspect ratio (%s).", fixed(vtAR, 2), fixed(wingAR, 2)))
}

// checkFuselageClearance requires the fuselage aft of the engine face to be
// wider than the engine, and limits how far the PCS and VT tips may overhang
// the fuselage end.
func checkFuselageClearance(r *ruleList, main, geom workbook.Sheet, fuselageEnd, engineDiameter, engineStart float64) {
	var widths []float64
	for row := fuselageFirstRow; row <= fuselageLastRow; row++ {
		station := main.FloatAt(row, 2)
		width := main.FloatAt(row, 5)
		if finite(station) && finite(width) && station >= engineStart {
			widths = append(widths, width)
		}
	}
	if len(widths) == 0 || !finite(engineDiameter) {
		r.fail("Unable to verify fuselage width clearance for engines")
		return
	}

	minWidth, maxWidth := widths[0], widths[0]
	for _, w := range widths[1:] {
		minWidth = math.Min(minWidth, w)
		maxWidth = math.Max(maxWidth, w)
	}
	required := engineDiameter + engineClearance
	r.failIf(minWidth+attachTol <= required,
		fmt.Sprintf("Fuselage minimum width (%s ft) must exceed engine diameter + 0.5 ft (%s ft).", fixed(minWidth, 2), fixed(required, 2)))

	if !finite(fuselageEnd) {
		return
	}
	allowed := 2 * maxWidth
	tips := []struct {
		label string
		x     float64
	}{
		{"Pitch control surface", math.Max(geom.Float("L117"), geom.Float("L118"))},
		{"Vertical tail", math.Max(geom.Float("L165"), geom.Float("L166"))},
	}
	for _, tip := range tips {
		if !finite(tip.x) {
			r.fail(fmt.Sprintf("Unable to verify %s tip overhang due to missing geometry data", strings.ToLower(tip.label)))
			continue
		}
		overhang := tip.x - fuselageEnd
		r.failIf(overhang > allowed+attachTol,
			fmt.Sprintf("%s extends %s ft beyond the fuselage end (limit %s ft).", tip.label, fixed(overhang, 2), fixed(allowed, 2)))
	}
}
