// Package xlsx is the workbook boundary of the pipeline: a named-table
// reader for the three source sheets and a named-table writer for the
// report tabs. Everything between the two works on in-memory tables.
package xlsx

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/pipelineerror"
)

// Source sheet names of the input workbook.
const (
	SheetTransactions = "BD"
	SheetDirectory    = "Ciudad-Region"
	SheetBudget       = "Presupuesto"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadNamedTables opens the workbook at path and returns the three source
// sheets as raw tables, in (transactions, directory, budget) order. The
// first row of each sheet is its header. A missing file or missing sheet
// fails with a NotFoundError listing what was required vs available.
func ReadNamedTables(path string, columnRenames map[string]string) (bd, cdrg, pres *models.RawTable, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return nil, nil, nil, &pipelineerror.NotFoundError{Path: path}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error opening workbook %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close workbook")
		}
	}()

	available := f.GetSheetList()
	present := make(map[string]bool, len(available))
	for _, s := range available {
		present[s] = true
	}
	var missing []string
	for _, s := range []string{SheetTransactions, SheetDirectory, SheetBudget} {
		if !present[s] {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return nil, nil, nil, &pipelineerror.NotFoundError{
			Path:      path,
			Missing:   missing,
			Available: available,
		}
	}

	tables := make([]*models.RawTable, 3)
	for i, name := range []string{SheetTransactions, SheetDirectory, SheetBudget} {
		t, readErr := readSheet(f, name)
		if readErr != nil {
			return nil, nil, nil, readErr
		}
		t.RenameColumns(columnRenames)
		log.WithFields(logrus.Fields{"sheet": name, "rows": len(t.Rows)}).Debug("Loaded sheet")
		tables[i] = t
	}
	return tables[0], tables[1], tables[2], nil
}

func readSheet(f *excelize.File, name string) (*models.RawTable, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return models.NewRawTable(name, nil, nil), nil
	}
	return models.NewRawTable(name, rows[0], rows[1:]), nil
}
