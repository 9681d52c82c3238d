package rules

import (
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// InvalidCells lists, row-major, the A1 references of every error cell on
// the main sheet.
func InvalidCells(main workbook.Sheet) []string {
	var refs []string
	for r, row := range main {
		for c, v := range row {
			if v.IsError() {
				refs = append(refs, workbook.CellRef(r, c))
			}
		}
	}
	return refs
}

// geometrySkips are cells inside B18:H27 that are labels, not inputs.
var geometrySkips = map[string]bool{
	"B24": true, "C24": true, "D27": true, "E27": true, "F27": true, "G27": true, "H26": true,
}

// MissingGeometry lists the non-numeric geometry inputs on the main sheet:
// the block B18:H27 (less its label cells) followed by C34:F53, row-major.
// Any entry gates the whole grade.
func MissingGeometry(main workbook.Sheet) []string {
	var missing []string
	scan := func(firstRow, lastRow, firstCol, lastCol int) {
		for row := firstRow; row <= lastRow; row++ {
			for col := firstCol; col <= lastCol; col++ {
				ref := workbook.CellRef(row-1, col-1)
				if geometrySkips[ref] {
					continue
				}
				if !finite(main.FloatAt(row, col)) {
					missing = append(missing, ref)
				}
			}
		}
	}
	scan(18, 27, 2, 8)
	scan(34, 53, 3, 6)
	return missing
}

// aeroPairs are cells on the aero tab that hold formulas; when a cell equals
// its neighbour the formula was most likely pasted as a value.
var aeroPairs = [][2]string{
	{"G3", "G4"},
	{"G10", "G11"},
	{"A15", "A16"},
}

// CheckAeroFormulas counts aero tab cells whose formulas appear inactive. It
// only ever produces an advisory line.
func CheckAeroFormulas(aero workbook.Sheet) Outcome {
	r := newRuleList("aero")
	inactive := 0
	for _, p := range aeroPairs {
		if aero.Cell(p[0]).Equal(aero.Cell(p[1])) {
			inactive++
		}
	}
	if inactive > 0 {
		r.note(fmt.Sprintf("Aero tab formulas inactive in %d key cell(s); check A15, G3, and G10.", inactive))
	}
	return r.outcome()
}
