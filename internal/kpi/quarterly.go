package kpi

import (
	"sort"

	"github.com/shopspring/decimal"

	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/periodutils"
)

type quarterRegionKey struct {
	Quarter periodutils.Quarter
	Region  string
}

type quarterSellerKey struct {
	Quarter periodutils.Quarter
	Region  string
	City    string
	Seller  string
}

// QuarterlyGrowth sums revenue per quarter (total, by region, by seller)
// and adds a quarter-over-quarter growth column computed within each
// group's own quarter sequence: total growth across all quarters, a
// region's growth against its own previous quarter, a seller's against
// theirs. The first quarter of any group has null growth.
func QuarterlyGrowth(records []models.MergedRecord) []models.Table {
	overall := models.Table{
		Name:    "KPI2_Quarterly_Total",
		Columns: []string{"Quarter", "Quarterly_Revenue", "% Quarterly_Growth"},
	}
	total := groupBy(records, func(r models.MergedRecord) periodutils.Quarter { return r.Quarter })
	sort.SliceStable(total, func(i, j int) bool {
		return total[i].Key.Index() < total[j].Key.Index()
	})
	previous := decimal.NullDecimal{}
	for _, g := range total {
		revenue := sumRevenue(g.Rows)
		overall.AddRow(g.Key.String(), revenue, pctChange(revenue, previous))
		previous = decimal.NullDecimal{Decimal: revenue, Valid: true}
	}

	byRegion := models.Table{
		Name:    "KPI2_Quarterly_Region",
		Columns: []string{"Quarter", "REGION", "Quarterly_Revenue", "% Quarterly_Growth"},
	}
	regions := groupBy(records, func(r models.MergedRecord) quarterRegionKey {
		return quarterRegionKey{Quarter: r.Quarter, Region: r.Region}
	})
	// Group-major order so each region's quarters are consecutive and
	// ascending for the growth pass.
	sort.SliceStable(regions, func(i, j int) bool {
		a, b := regions[i].Key, regions[j].Key
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.Quarter.Index() < b.Quarter.Index()
	})
	previous = decimal.NullDecimal{}
	lastRegion := ""
	for i, g := range regions {
		if i == 0 || g.Key.Region != lastRegion {
			previous = decimal.NullDecimal{}
			lastRegion = g.Key.Region
		}
		revenue := sumRevenue(g.Rows)
		byRegion.AddRow(g.Key.Quarter.String(), g.Key.Region, revenue, pctChange(revenue, previous))
		previous = decimal.NullDecimal{Decimal: revenue, Valid: true}
	}

	bySeller := models.Table{
		Name:    "KPI2_Quarterly_Seller",
		Columns: []string{"Quarter", "Vendedor_key", "REGION", "CIUDAD", "Quarterly_Revenue", "% Quarterly_Growth"},
	}
	sellers := groupBy(records, func(r models.MergedRecord) quarterSellerKey {
		return quarterSellerKey{Quarter: r.Quarter, Region: r.Region, City: r.City, Seller: r.SellerKey}
	})
	sort.SliceStable(sellers, func(i, j int) bool {
		a, b := sellers[i].Key, sellers[j].Key
		if a.Seller != b.Seller {
			return a.Seller < b.Seller
		}
		return a.Quarter.Index() < b.Quarter.Index()
	})
	previous = decimal.NullDecimal{}
	lastSeller := ""
	for i, g := range sellers {
		if i == 0 || g.Key.Seller != lastSeller {
			previous = decimal.NullDecimal{}
			lastSeller = g.Key.Seller
		}
		revenue := sumRevenue(g.Rows)
		bySeller.AddRow(g.Key.Quarter.String(), g.Key.Seller, g.Key.Region, g.Key.City,
			revenue, pctChange(revenue, previous))
		previous = decimal.NullDecimal{Decimal: revenue, Valid: true}
	}

	return []models.Table{overall, byRegion, bySeller}
}
