// Package xlsx renders report tables into a multi-sheet Excel workbook.
package xlsx

import (
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/report"
)

// defaultSheet is the sheet excelize creates in a new workbook; the first
// table takes it over instead of leaving an empty sheet behind.
const defaultSheet = "Sheet1"

// Write renders the tables into a workbook on w, one sheet per table in
// order. Header cells come first on each sheet; numeric-looking cells are
// written as numbers so spreadsheet formulas work on them.
func Write(w io.Writer, tables []report.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table.Name); err != nil {
				return errors.WrapIO("rename sheet", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return errors.WrapIO("create sheet", table.Name, err)
		}
		if err := writeSheet(f, table); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return errors.WrapIO("write workbook", "", err)
	}
	return nil
}

func writeSheet(f *excelize.File, table report.Table) error {
	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return errors.WrapIO("write header", table.Name, err)
	}

	for rowIdx, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cellValue(cell)
		}
		start, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return errors.WrapIO("address row", table.Name, err)
		}
		if err := f.SetSheetRow(table.Name, start, &cells); err != nil {
			return errors.WrapIO("write row", table.Name, err)
		}
	}
	return nil
}

// cellValue converts a display cell into its spreadsheet value. Counts and
// fixed-decimal quantities become numbers; everything else stays text.
func cellValue(cell string) interface{} {
	if cell == "" {
		return cell
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	return cell
}
