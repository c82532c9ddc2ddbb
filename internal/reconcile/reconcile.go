// Package reconcile validates the three raw sheets and merges them into
// the unified record set every KPI reducer consumes. All identity
// matching happens here through the canonical seller key.
package reconcile

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"mruiz/sales-kpi/internal/identity"
	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/periodutils"
	"mruiz/sales-kpi/internal/pipelineerror"
)

// Column headers of the source sheets.
const (
	ColOperationDate = "Fecha Operación"
	ColSellerName    = "Vendedor"
	ColRevenue       = "Ingreso Operación"
	ColCustomerID    = "No. Cliente"
	ColShipmentID    = "Guia"
	ColDirectoryName = "NOMBRE"
	ColCity          = "CIUDAD"
	ColRegion        = "REGION"
	ColBudget        = "Presupuesto"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// Stats describes one reconciliation run.
type Stats struct {
	TransactionRows     int
	DirectoryRows       int
	BudgetRows          int
	DirectoryDuplicates int
	BudgetDuplicates    int
}

// RequireColumns asserts that every required column exists in the table,
// failing with a SchemaError that names the table and lists both missing
// and available columns. Runs before any row is touched.
func RequireColumns(table *models.RawTable, required []string, label string) error {
	var missing []string
	for _, c := range required {
		if !table.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &pipelineerror.SchemaError{
			Table:     label,
			Missing:   missing,
			Available: table.Columns,
		}
	}
	return nil
}

// Reconcile cleans the three sheets, derives period buckets and seller
// keys, dedupes the lookup sheets on the key (first occurrence wins, the
// collapse count is reported in Stats), and left-joins transactions with
// directory and budget data. Any unparseable operation date fails the
// whole run; revenue coerces to zero on bad input, budget stays null.
func Reconcile(bd, cdrg, pres *models.RawTable) ([]models.MergedRecord, Stats, error) {
	stats := Stats{
		TransactionRows: len(bd.Rows),
		DirectoryRows:   len(cdrg.Rows),
		BudgetRows:      len(pres.Rows),
	}

	if err := RequireColumns(bd, []string{
		ColOperationDate, ColSellerName, ColRevenue, ColCustomerID, ColShipmentID,
	}, bd.Name); err != nil {
		return nil, stats, err
	}
	if err := RequireColumns(cdrg, []string{ColDirectoryName, ColCity, ColRegion}, cdrg.Name); err != nil {
		return nil, stats, err
	}
	if err := RequireColumns(pres, []string{ColSellerName, ColBudget}, pres.Name); err != nil {
		return nil, stats, err
	}

	directory, dirDupes := dedupeDirectory(cdrg)
	budgets, budDupes := dedupeBudgets(pres)
	stats.DirectoryDuplicates = dirDupes
	stats.BudgetDuplicates = budDupes
	if dirDupes > 0 {
		log.WithField("count", dirDupes).Warn("Collapsed duplicate sellers in directory sheet")
	}
	if budDupes > 0 {
		log.WithField("count", budDupes).Warn("Collapsed duplicate sellers in budget sheet")
	}

	merged := make([]models.MergedRecord, 0, len(bd.Rows))
	for i := range bd.Rows {
		date, err := periodutils.ParseDate(bd.Value(i, ColOperationDate))
		if err != nil {
			return nil, stats, &pipelineerror.DataQualityError{
				Table:  bd.Name,
				Field:  ColOperationDate,
				Value:  bd.Value(i, ColOperationDate),
				Reason: "invalid operation date",
				Err:    err,
			}
		}

		key := identity.Normalize(bd.Value(i, ColSellerName), false)
		rec := models.MergedRecord{
			Transaction: models.Transaction{
				OperationDate: date,
				SellerName:    bd.Value(i, ColSellerName),
				Revenue:       parseRevenue(bd.Value(i, ColRevenue)),
				CustomerID:    bd.Value(i, ColCustomerID),
				ShipmentID:    bd.Value(i, ColShipmentID),
			},
			Month:     periodutils.MonthOf(date),
			Quarter:   periodutils.QuarterOf(date),
			SellerKey: key,
		}
		if entry, ok := directory[key]; ok {
			rec.City = entry.City
			rec.Region = entry.Region
		}
		if entry, ok := budgets[key]; ok {
			rec.Budget = entry.Budget
		}
		merged = append(merged, rec)
	}
	return merged, stats, nil
}

func dedupeDirectory(cdrg *models.RawTable) (map[string]models.DirectoryEntry, int) {
	entries := make(map[string]models.DirectoryEntry, len(cdrg.Rows))
	duplicates := 0
	for i := range cdrg.Rows {
		key := identity.Normalize(cdrg.Value(i, ColDirectoryName), true)
		if _, seen := entries[key]; seen {
			duplicates++
			continue
		}
		entries[key] = models.DirectoryEntry{
			SellerName: cdrg.Value(i, ColDirectoryName),
			City:       cdrg.Value(i, ColCity),
			Region:     cdrg.Value(i, ColRegion),
		}
	}
	return entries, duplicates
}

func dedupeBudgets(pres *models.RawTable) (map[string]models.BudgetEntry, int) {
	entries := make(map[string]models.BudgetEntry, len(pres.Rows))
	duplicates := 0
	for i := range pres.Rows {
		key := identity.BudgetKey(pres.Value(i, ColSellerName))
		if _, seen := entries[key]; seen {
			duplicates++
			continue
		}
		entries[key] = models.BudgetEntry{
			SellerName: pres.Value(i, ColSellerName),
			Budget:     parseBudget(pres.Value(i, ColBudget)),
		}
	}
	return entries, duplicates
}

// parseRevenue coerces a revenue cell to a decimal, defaulting invalid or
// missing values to zero. This is the one documented silent coercion.
func parseRevenue(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(normalizeNumber(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseBudget coerces a budget cell to a decimal, leaving invalid or
// missing values null. A null budget must read as undefined compliance
// downstream, never as an always-met budget of zero.
func parseBudget(raw string) decimal.NullDecimal {
	d, err := decimal.NewFromString(normalizeNumber(raw))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func normalizeNumber(raw string) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch r {
		case ' ', ' ', ',':
			// thousands separators as rendered by the workbook
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
