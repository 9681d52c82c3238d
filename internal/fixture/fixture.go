// Package fixture builds a reference design workbook that satisfies every
// rubric check. Tests start from it and break one thing at a time; the
// gen_fixture script writes it out as an .xlsx template.
package fixture

import (
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// Reference design values shared with tests.
const (
	FuelAvailable = 5000.0
	FuelCapacity  = 10000.0
	Beta          = 1 - FuelAvailable/(2*FuelCapacity)
	DesignWS      = 60.0
	DesignTW      = 1.2
	Radius        = 850.0
	FuselageEnd   = 60.0
)

// Curve rows (1-based) on the consts sheet, with the flat or sloped T/W the
// reference design has to clear. MaxMach is the binding curve at 0.9.
var curves = map[int]func(ws float64) float64{
	23: func(float64) float64 { return 0.9 },
	24: func(float64) float64 { return 0.7 },
	26: func(ws float64) float64 { return 0.4 + 0.004*ws },
	27: func(ws float64) float64 { return 0.3 + 0.005*ws },
	28: func(float64) float64 { return 0.8 },
	29: func(float64) float64 { return 0.6 },
	32: func(ws float64) float64 { return 0.2 + 0.006*ws },
}

// Reference returns a fresh passing workbook. Callers may mutate it.
func Reference() *workbook.Workbook {
	wb := workbook.New("reference.xlsx")
	wb.Sheets[workbook.SheetMain] = mainSheet()
	wb.Sheets[workbook.SheetAero] = aeroSheet()
	wb.Sheets[workbook.SheetMiss] = missSheet()
	wb.Sheets[workbook.SheetConsts] = constsSheet()
	wb.Sheets[workbook.SheetGear] = gearSheet()
	wb.Sheets[workbook.SheetGeom] = geomSheet()
	return wb
}

// Set writes a number into a sheet of wb at an A1 reference.
func Set(wb *workbook.Workbook, role, ref string, v float64) {
	SetCell(wb, role, ref, workbook.Number(v))
}

// SetCell writes any cell value into a sheet of wb at an A1 reference.
func SetCell(wb *workbook.Workbook, role, ref string, v workbook.CellValue) {
	s := wb.Sheets[role]
	s.SetRef(ref, v)
	wb.Sheets[role] = s
}

func setAll(s *workbook.Sheet, cells map[string]float64) {
	for ref, v := range cells {
		s.SetRef(ref, workbook.Number(v))
	}
}

func mainSheet() workbook.Sheet {
	var s workbook.Sheet

	// Geometry inputs B18:H27 and C34:F53 default to 1, then get real values.
	for row := 18; row <= 27; row++ {
		for col := 2; col <= 8; col++ {
			s.Set(row-1, col-1, workbook.Number(1))
		}
	}
	for row := 34; row <= 53; row++ {
		station := float64(row-34) * 3
		s.Set(row-1, 1, workbook.Number(station)) // B: station x
		s.Set(row-1, 2, workbook.Number(1))       // C
		s.Set(row-1, 3, workbook.Number(0))       // D: z centre
		s.Set(row-1, 4, workbook.Number(8))       // E: width
		s.Set(row-1, 5, workbook.Number(6))       // F: height
	}
	for _, ref := range []string{"B24", "C24", "D27", "E27", "F27", "G27", "H26"} {
		s.SetRef(ref, workbook.Text("label"))
	}

	setAll(&s, map[string]float64{
		"D18": 1, // no strake
		"B19": 3.0, "C19": 2.5, "H19": 1.5,
		"B23": 10, "C23": 50, "D23": 20, "E23": 25, "F23": 30, "G23": 40, "H23": 52,
		"H24": 2,
		"C25": 0,
		"H29": 4, "I29": 20,
		"F31": 30, "F32": 5,
		"B32": FuselageEnd,

		"O1": 0.0037, "Q1": 2.2, "C30": 0.8, "D30": 2.0,

		"M10": 0.05, "O10": -0.01, "P10": 0.01, "Q10": -0.5,

		"O15": FuelCapacity, "O18": FuelAvailable, "X40": 4500,
		"Q23": 10,
		"N31": 187, "Q31": 105,
		"AB3": 8, "AB4": 2,
		"Y37": Radius,

		"P13": DesignWS, "Q13": DesignTW,
	})

	// Constraint table S..Y.
	table := []struct {
		row                       int
		alt, mach, n, ab, ps, cdx float64
	}{
		{3, 35000, 2.0, 1, 100, 0, 0},
		{4, 35000, 1.5, 1, 0, 0, 0},
		{5, 50000, 1.5, 1, 100, 0, 0},
		{6, 30000, 1.2, 3, 100, 0, 0},
		{7, 10000, 0.9, 4, 100, 0, 0},
		{8, 30000, 1.15, 1, 100, 400, 0},
		{9, 10000, 0.9, 1, 0, 400, 0},
	}
	for _, t := range table {
		for i, v := range []float64{Beta, t.alt, t.mach, t.n, t.ab, t.ps, t.cdx} {
			s.Set(t.row-1, 18+i, workbook.Number(v))
		}
	}
	// Takeoff and landing rows: W/WTO, alt, V/Vstall, mu, AB, distance, CDx.
	for i, v := range []float64{1, 0, 1.2, 0.03, 100, 3000, 0.035} {
		s.Set(11, 18+i, workbook.Number(v))
	}
	for i, v := range []float64{1, 0, 1.3, 0.5, 0, 5000, 0.045} {
		s.Set(12, 18+i, workbook.Number(v))
	}

	// Mission legs K..X.
	alt := []float64{0, 2000, 35000, 35000, 35000, 35000, 35000, 30000, 35000, 35000, 35000, 35000, 10000, 0}
	mach := []float64{0.268473504, 0.88, 0.88, 0.88, 0.88, 1.5, 0.8, 0.8, 1.5, 0.8, 0.88, 0.88, 0.4, 0.0}
	ab := []float64{100, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0, 0, 0, 0}
	for i := range alt {
		col := 10 + i
		s.Set(32, col, workbook.Number(alt[i]))
		s.Set(34, col, workbook.Number(mach[i]))
		s.Set(35, col, workbook.Number(ab[i]))
		s.Set(37, col, workbook.Number(150))
		s.Set(38, col, workbook.Number(10))
	}
	setAll(&s, map[string]float64{"P38": 400, "S38": 400, "R39": 2, "W39": 20})

	return s
}

func aeroSheet() workbook.Sheet {
	var s workbook.Sheet
	setAll(&s, map[string]float64{"G3": 0.1, "G4": 0.2, "G10": 1, "G11": 2, "A15": 3, "A16": 4})
	return s
}

func missSheet() workbook.Sheet {
	var s workbook.Sheet
	for c := 2; c <= 13; c++ {
		s.Set(47, c, workbook.Number(5000))
		s.Set(48, c, workbook.Number(8000))
	}
	return s
}

func constsSheet() workbook.Sheet {
	var s workbook.Sheet
	for i := 0; i <= 20; i++ {
		ws := 20 + 5*float64(i)
		s.Set(21, 10+i, workbook.Number(ws))
		for row, tw := range curves {
			s.Set(row-1, 10+i, workbook.Number(tw(ws)))
		}
	}
	s.SetRef("L33", workbook.Number(80))
	return s
}

func gearSheet() workbook.Sheet {
	var s workbook.Sheet
	setAll(&s, map[string]float64{
		"J19": 15, "J20": 88,
		"L20": 10, "L21": 15,
		"M20": 50, "M21": 60,
		"N20": 150, "N21": 170,
	})
	return s
}

func geomSheet() workbook.Sheet {
	var s workbook.Sheet
	setAll(&s, map[string]float64{
		"C8": 10, "C10": 8,
		"K15": 45, "M152": 5, "L155": 30, "L38": 20,
		"L117": 62, "L118": 61,
		"L163": 50, "M163": 6,
		"L165": 63, "L166": 62, "M166": 6,
		"L41": 65, "M41": 10,
	})
	return s
}
