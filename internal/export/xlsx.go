package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/pfrederiksen/careerdb/internal/career"
)

// Sheet names of the dataset workbook
const (
	SheetStints      = "Career Stints"
	SheetTransitions = "Team Transitions"
	SheetStats       = "Player Statistics"
)

// WriteXLSX writes ds as a three-sheet workbook
func WriteXLSX(path string, ds career.Dataset) error {
	f := xlsx.NewFile()

	if err := AddSheet(f, SheetStints, ds.Stints); err != nil {
		return err
	}
	if err := AddSheet(f, SheetTransitions, ds.Transitions); err != nil {
		return err
	}
	if err := AddSheet(f, SheetStats, ds.Stats); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

// AddSheet appends a sheet holding rows, one column per csv-tagged field
func AddSheet[T any](f *xlsx.File, name string, rows []T) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "xlsx: add sheet %q", name)
	}

	var zero T
	cols := columns(reflect.TypeOf(zero), nil)

	header := sheet.AddRow()
	for _, c := range cols {
		header.AddCell().SetString(c.name)
	}

	for i := range rows {
		v := reflect.ValueOf(rows[i])
		row := sheet.AddRow()
		for _, c := range cols {
			setCell(row.AddCell(), v.FieldByIndex(c.index))
		}
	}
	return nil
}

type column struct {
	name  string
	index []int
}

// columns lists the csv-tagged fields of t, flattening embedded structs
func columns(t reflect.Type, prefix []int) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int{}, prefix...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			cols = append(cols, columns(f.Type, index)...)
			continue
		}

		name := strings.Split(f.Tag.Get("csv"), ",")[0]
		if name == "" || name == "-" || !f.IsExported() {
			continue
		}
		cols = append(cols, column{name: name, index: index})
	}
	return cols
}

func setCell(cell *xlsx.Cell, v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		cell.SetBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		cell.SetInt64(v.Int())
	case reflect.Float32, reflect.Float64:
		cell.SetFloat(v.Float())
	default:
		cell.SetString(v.String())
	}
}

// ReadSheet returns every row of the named sheet as strings, header included
func ReadSheet(path, name string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	return sheetRows(f, name)
}

// ReadXLSX reads a workbook written by WriteXLSX
func ReadXLSX(path string) (career.Dataset, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return career.Dataset{}, eris.Wrap(err, "xlsx: open file")
	}

	stints, err := decodeSheet[career.Stint](f, SheetStints)
	if err != nil {
		return career.Dataset{}, err
	}
	transitions, err := decodeSheet[career.Transition](f, SheetTransitions)
	if err != nil {
		return career.Dataset{}, err
	}
	stats, err := decodeSheet[career.PlayerStatistics](f, SheetStats)
	if err != nil {
		return career.Dataset{}, err
	}

	return career.Dataset{Stints: stints, Transitions: transitions, Stats: stats}, nil
}

func sheetRows(f *xlsx.File, name string) ([][]string, error) {
	sheet, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Errorf("xlsx: sheet %q not found", name)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// decodeSheet decodes a sheet through the CSV decoder so cells parse the
// same way as CSV fields
func decodeSheet[T any](f *xlsx.File, name string) ([]T, error) {
	rows, err := sheetRows(f, name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	width := 0
	for i, row := range rows {
		if i == 0 {
			width = len(row)
		}
		if blank(row) {
			continue
		}
		for len(row) < width {
			row = append(row, "")
		}
		if err := cw.Write(row[:width]); err != nil {
			return nil, eris.Wrapf(err, "xlsx: sheet %q row %d", name, i+1)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, eris.Wrapf(err, "xlsx: sheet %q", name)
	}

	decoded, err := DecodeRows[T](&buf)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: sheet %q", name)
	}
	return decoded, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
