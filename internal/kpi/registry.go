package kpi

import (
	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/reconcile"
)

// BuildAllTables assembles every output table in its fixed tab order: the
// merged base first, then the monthly, quarterly, projection/compliance
// and portfolio/reactivation tables. The order only decides tab layout;
// every reducer reads the same immutable record set.
func BuildAllTables(records []models.MergedRecord) ([]models.Table, error) {
	tables := []models.Table{mergedBase(records)}
	tables = append(tables, MonthlyRevenue(records)...)
	tables = append(tables, QuarterlyGrowth(records)...)

	projection, err := Projection(records)
	if err != nil {
		return nil, err
	}
	tables = append(tables, projection...)
	tables = append(tables, Portfolio(records)...)

	log.WithField("tables", len(tables)).Debug("Assembled output tables")
	return tables, nil
}

// mergedBase renders the merged record set as the first tab, keeping the
// display period texts and dropping the internal sortable period values.
func mergedBase(records []models.MergedRecord) models.Table {
	table := models.Table{
		Name: "Merged_Base",
		Columns: []string{
			reconcile.ColOperationDate, reconcile.ColSellerName, reconcile.ColRevenue,
			reconcile.ColCustomerID, reconcile.ColShipmentID,
			"Mes", "Trimestre", "Vendedor_key",
			reconcile.ColCity, reconcile.ColRegion, reconcile.ColBudget,
		},
	}
	for _, r := range records {
		table.AddRow(r.OperationDate, r.SellerName, r.Revenue, r.CustomerID, r.ShipmentID,
			r.Month.String(), r.Quarter.String(), r.SellerKey, r.City, r.Region, r.Budget)
	}
	return table
}
