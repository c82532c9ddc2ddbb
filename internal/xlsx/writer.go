package xlsx

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"mruiz/sales-kpi/internal/models"
)

// WriteTables persists every table as one tab of a new workbook at path,
// in slice order. Tab names go through SafeSheetName, so the workbook is
// written completely or not at all.
func WriteTables(tables []models.Table, path string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	used := make(map[string]bool, len(tables))
	for i, table := range tables {
		sheet, err := SafeSheetName(table.Name, used)
		if err != nil {
			return err
		}
		used[sheet] = true

		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("error renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("error creating sheet %s: %w", sheet, err)
		}

		if err := writeTable(f, sheet, table); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"sheet": sheet, "rows": len(table.Rows)}).Debug("Wrote sheet")
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook %s: %w", path, err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, table models.Table) error {
	for j, column := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return err
		}
	}
	for i, row := range table.Rows {
		for j, value := range row {
			rendered, ok := renderCell(value)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, rendered); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderCell converts a table cell to something excelize can store.
// Null decimals and nil cells are skipped so they stay empty in the tab.
func renderCell(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case decimal.Decimal:
		f, _ := v.Float64()
		return f, true
	case decimal.NullDecimal:
		if !v.Valid {
			return nil, false
		}
		f, _ := v.Decimal.Float64()
		return f, true
	case time.Time:
		return v, true
	default:
		return v, true
	}
}
