// Package workbook holds the in-memory workbook model the grader reads from,
// plus loaders for .xlsx and .json sources.
package workbook

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a CellValue.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindText
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindError:
		return "error"
	default:
		return "absent"
	}
}

// errorMarkers are the spreadsheet error codes recognised in text cells.
var errorMarkers = map[string]bool{
	"#DIV/0!": true,
	"#VALUE!": true,
	"#REF!":   true,
	"#NAME?":  true,
	"#NUM!":   true,
	"#NULL!":  true,
	"#N/A":    true,
}

// CellValue is a single cell: absent, a finite number, text, or an error marker.
// The zero value is Absent.
type CellValue struct {
	kind Kind
	num  float64
	text string
}

// Absent returns the empty cell.
func Absent() CellValue { return CellValue{} }

// Number wraps v. Non-finite values become error cells so that the numeric
// variant only ever carries finite numbers.
func Number(v float64) CellValue {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return CellValue{kind: KindError, num: v, text: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return CellValue{kind: KindNumber, num: v}
}

// Text wraps s verbatim without classification. Use ParseText for raw sheet input.
func Text(s string) CellValue { return CellValue{kind: KindText, text: s} }

// ErrorMarker wraps a spreadsheet error code such as "#DIV/0!".
func ErrorMarker(code string) CellValue { return CellValue{kind: KindError, text: code} }

// ParseText classifies raw cell text the way a spreadsheet would display it:
// blank is absent, error codes are errors, numerics are numbers.
func ParseText(s string) CellValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Absent()
	}
	if IsErrorMarker(trimmed) {
		return ErrorMarker(trimmed)
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(v)
	}
	return Text(s)
}

// IsErrorMarker reports whether s is one of the spreadsheet error codes.
func IsErrorMarker(s string) bool {
	return errorMarkers[strings.ToUpper(strings.TrimSpace(s))]
}

func (c CellValue) Kind() Kind        { return c.kind }
func (c CellValue) IsAbsent() bool    { return c.kind == KindAbsent }
func (c CellValue) IsError() bool     { return c.kind == KindError }
func (c CellValue) IsNumber() bool    { return c.kind == KindNumber }
func (c CellValue) TextValue() string { return c.text }

// Equal reports whether two cells hold the same variant and value.
func (c CellValue) Equal(o CellValue) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindAbsent:
		return true
	case KindNumber:
		return c.num == o.num
	default:
		return c.text == o.text
	}
}

func (c CellValue) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText, KindError:
		return c.text
	default:
		return ""
	}
}

// AsNumber projects a cell onto the numeric domain. Absent cells, error
// markers and non-numeric text all map to NaN.
func AsNumber(c CellValue) float64 {
	switch c.kind {
	case KindNumber:
		return c.num
	case KindText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return math.NaN()
		}
		return v
	default:
		return math.NaN()
	}
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
