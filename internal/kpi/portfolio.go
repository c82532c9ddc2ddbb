package kpi

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"mruiz/sales-kpi/internal/models"
)

type portfolioKey struct {
	Seller string
	City   string
	Region string
}

type sellerCustomerKey struct {
	Seller   string
	Customer string
}

// Portfolio produces the customer-portfolio risk tables: a per-seller
// summary (accumulated revenue, portfolio size, Top-5 customer revenue
// and share, HHI concentration, risk flag) and the reactivation list of
// high-value customers that have gone dormant.
func Portfolio(records []models.MergedRecord) []models.Table {
	sellers := groupBy(records, func(r models.MergedRecord) portfolioKey {
		return portfolioKey{Seller: r.SellerKey, City: r.City, Region: r.Region}
	})
	accumulated := make(map[string]decimal.Decimal, len(sellers))
	for _, g := range sellers {
		accumulated[g.Key.Seller] = sumRevenue(g.Rows)
	}

	// Seller-customer portfolio with each customer's share of the
	// seller's total. A zero seller total leaves the share null.
	type customerRevenue struct {
		key     sellerCustomerKey
		revenue decimal.Decimal
		share   decimal.NullDecimal
	}
	customerGroups := groupBy(records, func(r models.MergedRecord) sellerCustomerKey {
		return sellerCustomerKey{Seller: r.SellerKey, Customer: r.CustomerID}
	})
	customers := make([]customerRevenue, 0, len(customerGroups))
	for _, g := range customerGroups {
		revenue := sumRevenue(g.Rows)
		customers = append(customers, customerRevenue{
			key:     g.Key,
			revenue: revenue,
			share:   divide(revenue, accumulated[g.Key.Seller]),
		})
	}

	perSeller := groupBy(customers, func(c customerRevenue) string { return c.key.Seller })
	hhi := make(map[string]decimal.Decimal, len(perSeller))
	top5 := make(map[string]decimal.Decimal, len(perSeller))
	portfolioSize := make(map[string]int, len(perSeller))
	for _, g := range perSeller {
		concentration := decimal.Zero
		for _, c := range g.Rows {
			if c.share.Valid {
				concentration = concentration.Add(c.share.Decimal.Mul(c.share.Decimal))
			}
		}
		hhi[g.Key] = concentration
		portfolioSize[g.Key] = len(g.Rows)

		// Rank customers by revenue descending; the stable sort keeps
		// first-seen input order as the tie-break.
		ranked := make([]customerRevenue, len(g.Rows))
		copy(ranked, g.Rows)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].revenue.GreaterThan(ranked[j].revenue)
		})
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		sum := decimal.Zero
		for _, c := range ranked {
			sum = sum.Add(c.revenue)
		}
		top5[g.Key] = sum
	}

	summary := models.Table{
		Name: "E3_Seller_Portfolio",
		Columns: []string{
			"Vendedor_key", "CIUDAD", "REGION", "Accumulated_Revenue", "Unique_Customers",
			"Top5_Customer_Revenue", "HHI_Concentration", "% Top5_Revenue", "Risk (Concentration)",
		},
	}
	type summaryRow struct {
		top5Pct decimal.NullDecimal
		cells   []any
	}
	rows := make([]summaryRow, 0, len(sellers))
	for _, g := range sellers {
		total := accumulated[g.Key.Seller]
		top5Revenue := top5[g.Key.Seller]
		top5Pct := mulNull(divide(top5Revenue, total), hundred)
		risk := "NORMAL"
		if top5Pct.Valid && top5Pct.Decimal.GreaterThanOrEqual(decimal.NewFromInt(70)) {
			risk = "HIGH"
		}
		rows = append(rows, summaryRow{
			top5Pct: top5Pct,
			cells: []any{
				g.Key.Seller, g.Key.City, g.Key.Region, total, portfolioSize[g.Key.Seller],
				top5Revenue, hhi[g.Key.Seller], top5Pct, risk,
			},
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return lessNullDesc(rows[i].top5Pct, rows[j].top5Pct)
	})
	for _, row := range rows {
		summary.AddRow(row.cells...)
	}

	return []models.Table{summary, reactivation(records)}
}

// reactivation finds each seller's high-value customers (at or above the
// seller-local 80th percentile of customer revenue) with 30 or more days
// since their last purchase, measured against the latest operation date
// in the whole record set.
func reactivation(records []models.MergedRecord) models.Table {
	table := models.Table{
		Name: "E3_Reactivate_Customers",
		Columns: []string{
			"Vendedor_key", "No. Cliente", "Total_Revenue", "Purchases",
			"Last_Purchase", "First_Purchase", "City", "Region", "Days_Since_Last_Purchase",
		},
	}

	var maxDate time.Time
	for _, r := range records {
		if r.OperationDate.After(maxDate) {
			maxDate = r.OperationDate
		}
	}

	type customerDetail struct {
		key       sellerCustomerKey
		total     decimal.Decimal
		purchases int
		first     time.Time
		last      time.Time
		city      string
		region    string
		dormant   int
	}
	groups := groupBy(records, func(r models.MergedRecord) sellerCustomerKey {
		return sellerCustomerKey{Seller: r.SellerKey, Customer: r.CustomerID}
	})
	details := make([]customerDetail, 0, len(groups))
	for _, g := range groups {
		d := customerDetail{
			key:    g.Key,
			first:  g.Rows[0].OperationDate,
			last:   g.Rows[0].OperationDate,
			city:   g.Rows[0].City,
			region: g.Rows[0].Region,
		}
		for _, r := range g.Rows {
			d.total = d.total.Add(r.Revenue)
			if r.ShipmentID != "" {
				d.purchases++
			}
			if r.OperationDate.Before(d.first) {
				d.first = r.OperationDate
			}
			if r.OperationDate.After(d.last) {
				d.last = r.OperationDate
			}
		}
		d.dormant = int(maxDate.Sub(d.last).Hours() / 24)
		details = append(details, d)
	}

	// High-value threshold per seller: interpolated 80th percentile of
	// that seller's customer totals.
	thresholds := make(map[string]float64)
	for _, g := range groupBy(details, func(d customerDetail) string { return d.key.Seller }) {
		values := make([]float64, len(g.Rows))
		for i, d := range g.Rows {
			values[i], _ = d.total.Float64()
		}
		thresholds[g.Key] = quantile(values, 0.80)
	}

	var candidates []customerDetail
	for _, d := range details {
		total, _ := d.total.Float64()
		if total >= thresholds[d.key.Seller] && d.dormant >= 30 {
			candidates = append(candidates, d)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dormant != candidates[j].dormant {
			return candidates[i].dormant > candidates[j].dormant
		}
		return candidates[i].total.GreaterThan(candidates[j].total)
	})
	for _, d := range candidates {
		table.AddRow(d.key.Seller, d.key.Customer, d.total, d.purchases,
			d.last, d.first, d.city, d.region, d.dormant)
	}
	return table
}

// quantile returns the linearly interpolated q-quantile of values.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
