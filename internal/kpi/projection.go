package kpi

import (
	"sort"

	"github.com/shopspring/decimal"

	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/periodutils"
	"mruiz/sales-kpi/internal/pipelineerror"
)

type sellerKey struct {
	Seller string
	Region string
	City   string
}

// Projection derives the simple annual projection (monthly average of the
// observed months extrapolated to 12) and the per-seller budget
// compliance table. Fails with a DataQualityError when the record set
// covers zero months, since the average would be undefined.
func Projection(records []models.MergedRecord) ([]models.Table, error) {
	months := groupBy(records, func(r models.MergedRecord) periodutils.Month { return r.Month })
	if len(months) == 0 {
		return nil, &pipelineerror.DataQualityError{
			Table:  "Merged_Base",
			Reason: "no months with data to calculate projection",
		}
	}

	minMonth, maxMonth := months[0].Key, months[0].Key
	for _, g := range months[1:] {
		if g.Key.Index() < minMonth.Index() {
			minMonth = g.Key
		}
		if g.Key.Index() > maxMonth.Index() {
			maxMonth = g.Key
		}
	}

	accumulated := sumRevenue(records)
	average := accumulated.Div(decimal.NewFromInt(int64(len(months))))
	projection := average.Mul(twelve)

	total := models.Table{
		Name: "KPI3_Projection_Total",
		Columns: []string{
			"Start_Month", "End_Month", "Months_With_Data",
			"Accumulated_Revenue", "Avg_Monthly_Revenue", "Annual_Projection",
		},
	}
	total.AddRow(minMonth.String(), maxMonth.String(), len(months), accumulated, average, projection)

	bySeller := models.Table{
		Name: "KPI4_Compliance_Seller",
		Columns: []string{
			"Vendedor_key", "REGION", "CIUDAD", "Accumulated_Revenue", "Months_With_Data",
			"Budget", "Avg_Monthly_Revenue", "Annual_Projection",
			"% Budget_Compliance", "% Projected_Compliance",
		},
	}

	type complianceRow struct {
		key                 sellerKey
		accumulated         decimal.Decimal
		monthsWithData      int
		budget              decimal.NullDecimal
		average             decimal.NullDecimal
		projection          decimal.NullDecimal
		compliance          decimal.NullDecimal
		projectedCompliance decimal.NullDecimal
	}

	sellers := groupBy(records, func(r models.MergedRecord) sellerKey {
		return sellerKey{Seller: r.SellerKey, Region: r.Region, City: r.City}
	})
	rows := make([]complianceRow, 0, len(sellers))
	for _, g := range sellers {
		row := complianceRow{
			key:            g.Key,
			accumulated:    sumRevenue(g.Rows),
			monthsWithData: len(groupBy(g.Rows, func(r models.MergedRecord) periodutils.Month { return r.Month })),
			budget:         g.Rows[0].Budget,
		}
		row.average = divide(row.accumulated, decimal.NewFromInt(int64(row.monthsWithData)))
		row.projection = mulNull(row.average, twelve)
		row.compliance = mulNull(divideNull(
			decimal.NullDecimal{Decimal: row.accumulated, Valid: true}, row.budget), hundred)
		row.projectedCompliance = mulNull(divideNull(row.projection, row.budget), hundred)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return lessNullDesc(rows[i].compliance, rows[j].compliance)
	})
	for _, row := range rows {
		bySeller.AddRow(row.key.Seller, row.key.Region, row.key.City,
			row.accumulated, row.monthsWithData, row.budget,
			row.average, row.projection, row.compliance, row.projectedCompliance)
	}

	return []models.Table{total, bySeller}, nil
}
