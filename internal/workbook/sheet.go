package workbook

import (
	"github.com/xuri/excelize/v2"
)

// Sheet roles the grader addresses. Loaders map workbook tab names onto these.
const (
	SheetMain   = "main"
	SheetAero   = "aero"
	SheetMiss   = "miss"
	SheetConsts = "consts"
	SheetGear   = "gear"
	SheetGeom   = "geom"
)

// Roles lists every sheet role in a stable order.
var Roles = []string{SheetMain, SheetAero, SheetMiss, SheetConsts, SheetGear, SheetGeom}

// Sheet is a ragged grid of cells. Row and column indexes passed to Value are
// 0-based; CellAt uses 1-based row and column numbers like the A1 notation
// accepted by Cell. Anything outside the grid reads as Absent.
type Sheet [][]CellValue

// Value returns the cell at 0-based (rowIdx, colIdx).
func (s Sheet) Value(rowIdx, colIdx int) CellValue {
	if rowIdx < 0 || rowIdx >= len(s) {
		return Absent()
	}
	row := s[rowIdx]
	if colIdx < 0 || colIdx >= len(row) {
		return Absent()
	}
	return row[colIdx]
}

// CellAt returns the cell at 1-based (row, col); CellAt(1, 1) is A1.
func (s Sheet) CellAt(row, col int) CellValue {
	return s.Value(row-1, col-1)
}

// Cell returns the cell addressed by an A1 reference. Malformed references
// read as Absent.
func (s Sheet) Cell(ref string) CellValue {
	rowIdx, colIdx, err := ParseRef(ref)
	if err != nil {
		return Absent()
	}
	return s.Value(rowIdx, colIdx)
}

// Float is AsNumber(s.Cell(ref)).
func (s Sheet) Float(ref string) float64 { return AsNumber(s.Cell(ref)) }

// FloatAt is AsNumber(s.CellAt(row, col)) with 1-based coordinates.
func (s Sheet) FloatAt(row, col int) float64 { return AsNumber(s.CellAt(row, col)) }

// FloatValue is AsNumber(s.Value(rowIdx, colIdx)) with 0-based coordinates.
func (s Sheet) FloatValue(rowIdx, colIdx int) float64 { return AsNumber(s.Value(rowIdx, colIdx)) }

// Row returns the 0-based row slice, or nil when out of range.
func (s Sheet) Row(rowIdx int) []CellValue {
	if rowIdx < 0 || rowIdx >= len(s) {
		return nil
	}
	return s[rowIdx]
}

// Set writes v at 0-based (rowIdx, colIdx), growing the grid as needed.
// Intended for building sheets; graded workbooks are never mutated.
func (s *Sheet) Set(rowIdx, colIdx int, v CellValue) {
	if rowIdx < 0 || colIdx < 0 {
		return
	}
	for len(*s) <= rowIdx {
		*s = append(*s, nil)
	}
	row := (*s)[rowIdx]
	for len(row) <= colIdx {
		row = append(row, Absent())
	}
	row[colIdx] = v
	(*s)[rowIdx] = row
}

// SetRef writes v at an A1 reference. Malformed references are ignored.
func (s *Sheet) SetRef(ref string, v CellValue) {
	rowIdx, colIdx, err := ParseRef(ref)
	if err != nil {
		return
	}
	s.Set(rowIdx, colIdx, v)
}

// ParseRef converts an A1 reference to 0-based (rowIdx, colIdx).
func ParseRef(ref string) (rowIdx, colIdx int, err error) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0, 0, err
	}
	return row - 1, col - 1, nil
}

// CellRef renders 0-based (rowIdx, colIdx) as an A1 reference.
func CellRef(rowIdx, colIdx int) string {
	name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return ""
	}
	return name
}

// Workbook maps sheet roles to sheets. Name is an optional display name
// (usually the source file name) echoed at the top of the feedback log.
type Workbook struct {
	Name   string
	Sheets map[string]Sheet
}

// New returns an empty workbook with the given display name.
func New(name string) *Workbook {
	return &Workbook{Name: name, Sheets: make(map[string]Sheet)}
}

// Sheet returns the sheet for a role, or nil when the workbook has none.
func (wb *Workbook) Sheet(role string) Sheet {
	if wb == nil || wb.Sheets == nil {
		return nil
	}
	return wb.Sheets[role]
}

// HasSheet reports whether the workbook carries the role at all.
func (wb *Workbook) HasSheet(role string) bool {
	if wb == nil || wb.Sheets == nil {
		return false
	}
	_, ok := wb.Sheets[role]
	return ok
}
