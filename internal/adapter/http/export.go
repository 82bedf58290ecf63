package http

import (
	"bytes"
	"fmt"
	"sort"

	"boveda-lols-backend/internal/domain/tabla"

	"github.com/xuri/excelize/v2"
)

// RenderExcel turns query rows into a styled workbook: header row from the
// descriptor labels, one sheet named after the module.
func RenderExcel(rows []tabla.Row, d *tabla.Descriptor) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := d.Modulo
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	cols := columnasExport(rows)
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"305496"}},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, d.Label(col))
	}
	if len(cols) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for r, row := range rows {
		for i, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			_ = f.SetCellValue(sheet, cell, celda(row[col]))
		}
	}

	return f.WriteToBuffer()
}

// columnasExport fixes a stable column order: id first, then the remaining
// keys of the first row alphabetically.
func columnasExport(rows []tabla.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	keys := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return append([]string{"id"}, keys...)
}

func celda(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case bool, string, int64, uint64, float64:
		return t
	default:
		return fmt.Sprint(t)
	}
}
