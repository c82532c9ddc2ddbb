package root

import (
	"time"

	"github.com/sirupsen/logrus"

	"mruiz/sales-kpi/internal/config"
	"mruiz/sales-kpi/internal/csvexport"
	"mruiz/sales-kpi/internal/kpi"
	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/reconcile"
	"mruiz/sales-kpi/internal/xlsx"
)

// RunAnalysis executes the full workflow: load, reconcile, aggregate,
// write. Any error aborts the run with nothing written.
func RunAnalysis(cfg *config.Config, log *logrus.Logger) error {
	log.WithField("input", cfg.Input).Info("Step 1/5: Loading workbook sheets")
	renames, err := config.LoadColumnMap(cfg.ColumnMapFile)
	if err != nil {
		return err
	}
	bd, cdrg, pres, err := xlsx.ReadNamedTables(cfg.Input, renames)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"bd_rows":   len(bd.Rows),
		"cdrg_rows": len(cdrg.Rows),
		"pres_rows": len(pres.Rows),
	}).Info("Sheets loaded")

	log.Info("Step 2/5: Cleaning data and merging tables")
	records, stats, err := reconcile.Reconcile(bd, cdrg, pres)
	if err != nil {
		return err
	}
	logMergedStats(records, stats, log)

	log.Info("Step 3/5: Calculating KPI tables")
	tables, err := kpi.BuildAllTables(records)
	if err != nil {
		return err
	}
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	log.WithFields(logrus.Fields{"count": len(tables), "sheets": names}).Info("Tables generated")

	if cfg.CSVDir != "" {
		log.WithField("dir", cfg.CSVDir).Info("Step 4/5: Exporting merged base CSV")
		if err := csvexport.WriteMergedBase(records, cfg.CSVDir); err != nil {
			return err
		}
	} else {
		log.Info("Step 4/5: CSV export skipped")
	}

	log.WithField("output", cfg.Output).Info("Step 5/5: Writing report workbook")
	if err := xlsx.WriteTables(tables, cfg.Output); err != nil {
		return err
	}
	log.WithField("output", cfg.Output).Info("Analysis complete")
	return nil
}

func logMergedStats(records []models.MergedRecord, stats reconcile.Stats, log *logrus.Logger) {
	sellers := make(map[string]bool)
	customers := make(map[string]bool)
	var minDate, maxDate time.Time
	for i, r := range records {
		sellers[r.SellerKey] = true
		customers[r.CustomerID] = true
		if i == 0 || r.OperationDate.Before(minDate) {
			minDate = r.OperationDate
		}
		if i == 0 || r.OperationDate.After(maxDate) {
			maxDate = r.OperationDate
		}
	}
	fields := logrus.Fields{
		"merged_rows":      len(records),
		"unique_sellers":   len(sellers),
		"unique_customers": len(customers),
	}
	if len(records) > 0 {
		fields["date_min"] = minDate.Format("2006-01-02")
		fields["date_max"] = maxDate.Format("2006-01-02")
	}
	if stats.DirectoryDuplicates > 0 {
		fields["directory_duplicates"] = stats.DirectoryDuplicates
	}
	if stats.BudgetDuplicates > 0 {
		fields["budget_duplicates"] = stats.BudgetDuplicates
	}
	log.WithFields(fields).Info("Merged base created")
}
