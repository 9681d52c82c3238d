package workbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnknownFormat is returned by Load for files that are neither .xlsx nor .json.
var ErrUnknownFormat = errors.New("workbook: unknown file format")

// SheetNames maps a sheet role to the tab name used in source workbooks.
type SheetNames map[string]string

// DefaultSheetNames returns the tab names used by the course template.
func DefaultSheetNames() SheetNames {
	return SheetNames{
		SheetMain:   "Main",
		SheetAero:   "Aero",
		SheetMiss:   "Miss",
		SheetConsts: "Consts",
		SheetGear:   "Gear",
		SheetGeom:   "Geom",
	}
}

// Load reads a workbook from disk, choosing the decoder by extension.
func Load(path string, names SheetNames) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, names)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()
		wb, err := DecodeJSON(f)
		if err != nil {
			return nil, err
		}
		if wb.Name == "" {
			wb.Name = filepath.Base(path)
		}
		return wb, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
}

// LoadXLSX opens an .xlsx file and reads every mapped tab.
func LoadXLSX(path string, names SheetNames) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return fromExcelize(f, filepath.Base(path), names)
}

// ReadXLSX decodes an .xlsx document from r, e.g. an HTTP upload.
func ReadXLSX(r io.Reader, name string, names SheetNames) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()
	return fromExcelize(f, name, names)
}

func fromExcelize(f *excelize.File, name string, names SheetNames) (*Workbook, error) {
	if names == nil {
		names = DefaultSheetNames()
	}

	// Tab names are matched case-insensitively.
	tabs := make(map[string]string)
	for _, tab := range f.GetSheetList() {
		tabs[strings.ToLower(tab)] = tab
	}

	wb := New(name)
	for _, role := range Roles {
		want, ok := names[role]
		if !ok {
			continue
		}
		tab, ok := tabs[strings.ToLower(want)]
		if !ok {
			continue
		}
		rows, err := f.GetRows(tab, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", tab, err)
		}
		sheet := make(Sheet, len(rows))
		for r, row := range rows {
			cells := make([]CellValue, len(row))
			for c, raw := range row {
				cells[c] = ParseText(raw)
			}
			sheet[r] = cells
		}
		wb.Sheets[role] = sheet
	}
	return wb, nil
}

type jsonWorkbook struct {
	Name     string                     `json:"name"`
	FileName string                     `json:"fileName"`
	Sheets   map[string][][]interface{} `json:"sheets"`
}

// DecodeJSON reads the JSON workbook form:
//
//	{"name": "design.xlsx", "sheets": {"main": [[null, 1.5, "#DIV/0!"]]}}
//
// Sheet keys are roles. Numbers, strings, booleans and nulls are accepted as
// cell values.
func DecodeJSON(r io.Reader) (*Workbook, error) {
	var raw jsonWorkbook
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	name := raw.Name
	if name == "" {
		name = raw.FileName
	}
	wb := New(name)
	for role, rows := range raw.Sheets {
		sheet := make(Sheet, len(rows))
		for r, row := range rows {
			cells := make([]CellValue, len(row))
			for c, v := range row {
				cells[c] = fromJSON(v)
			}
			sheet[r] = cells
		}
		wb.Sheets[strings.ToLower(role)] = sheet
	}
	return wb, nil
}

func fromJSON(v interface{}) CellValue {
	switch t := v.(type) {
	case nil:
		return Absent()
	case float64:
		return Number(t)
	case string:
		return ParseText(t)
	case bool:
		return Text(strings.ToUpper(strconv.FormatBool(t)))
	default:
		return Text(fmt.Sprint(t))
	}
}

// MarshalJSON renders a cell the way DecodeJSON reads it back.
func (c CellValue) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNumber:
		return json.Marshal(c.num)
	case KindText, KindError:
		return json.Marshal(c.text)
	default:
		return []byte("null"), nil
	}
}

// EncodeJSON writes wb in the form accepted by DecodeJSON.
func EncodeJSON(w io.Writer, wb *Workbook) error {
	out := struct {
		Name   string           `json:"name,omitempty"`
		Sheets map[string]Sheet `json:"sheets"`
	}{Name: wb.Name, Sheets: wb.Sheets}
	return json.NewEncoder(w).Encode(out)
}

// SaveXLSX writes wb to path as an .xlsx file, one tab per role present in
// the workbook, named through names.
func SaveXLSX(wb *Workbook, path string, names SheetNames) error {
	if names == nil {
		names = DefaultSheetNames()
	}
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, role := range Roles {
		sheet, ok := wb.Sheets[role]
		if !ok {
			continue
		}
		tab := names[role]
		if tab == "" {
			tab = role
		}
		if first {
			if err := f.SetSheetName("Sheet1", tab); err != nil {
				return fmt.Errorf("name sheet %q: %w", tab, err)
			}
			first = false
		} else if _, err := f.NewSheet(tab); err != nil {
			return fmt.Errorf("add sheet %q: %w", tab, err)
		}
		for r, row := range sheet {
			for c, v := range row {
				if v.IsAbsent() {
					continue
				}
				var val interface{} = v.TextValue()
				if v.IsNumber() {
					val = v.num
				}
				if err := f.SetCellValue(tab, CellRef(r, c), val); err != nil {
					return fmt.Errorf("write %s!%s: %w", tab, CellRef(r, c), err)
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
