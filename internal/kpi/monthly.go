package kpi

import (
	"sort"

	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/periodutils"
)

type monthRegionKey struct {
	Month  periodutils.Month
	Region string
}

type monthCityKey struct {
	Month  periodutils.Month
	Region string
	City   string
}

type monthSellerKey struct {
	Month  periodutils.Month
	Region string
	City   string
	Seller string
}

// MonthlyRevenue sums revenue per month at four breakdown levels: total,
// region, city and seller. Every table is sorted by month ascending with
// the breakdown keys as secondary sort.
func MonthlyRevenue(records []models.MergedRecord) []models.Table {
	overall := models.Table{Name: "KPI1_Monthly_Total", Columns: []string{"Month", "Monthly_Revenue"}}
	total := groupBy(records, func(r models.MergedRecord) periodutils.Month { return r.Month })
	sort.SliceStable(total, func(i, j int) bool {
		return total[i].Key.Index() < total[j].Key.Index()
	})
	for _, g := range total {
		overall.AddRow(g.Key.String(), sumRevenue(g.Rows))
	}

	byRegion := models.Table{Name: "KPI1_Monthly_Region", Columns: []string{"Month", "REGION", "Monthly_Revenue"}}
	regions := groupBy(records, func(r models.MergedRecord) monthRegionKey {
		return monthRegionKey{Month: r.Month, Region: r.Region}
	})
	sort.SliceStable(regions, func(i, j int) bool {
		a, b := regions[i].Key, regions[j].Key
		if a.Month != b.Month {
			return a.Month.Index() < b.Month.Index()
		}
		return a.Region < b.Region
	})
	for _, g := range regions {
		byRegion.AddRow(g.Key.Month.String(), g.Key.Region, sumRevenue(g.Rows))
	}

	byCity := models.Table{Name: "KPI1_Monthly_City", Columns: []string{"Month", "REGION", "CIUDAD", "Monthly_Revenue"}}
	cities := groupBy(records, func(r models.MergedRecord) monthCityKey {
		return monthCityKey{Month: r.Month, Region: r.Region, City: r.City}
	})
	sort.SliceStable(cities, func(i, j int) bool {
		a, b := cities[i].Key, cities[j].Key
		if a.Month != b.Month {
			return a.Month.Index() < b.Month.Index()
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.City < b.City
	})
	for _, g := range cities {
		byCity.AddRow(g.Key.Month.String(), g.Key.Region, g.Key.City, sumRevenue(g.Rows))
	}

	bySeller := models.Table{Name: "KPI1_Monthly_Seller", Columns: []string{"Month", "Vendedor_key", "REGION", "CIUDAD", "Monthly_Revenue"}}
	sellers := groupBy(records, func(r models.MergedRecord) monthSellerKey {
		return monthSellerKey{Month: r.Month, Region: r.Region, City: r.City, Seller: r.SellerKey}
	})
	sort.SliceStable(sellers, func(i, j int) bool {
		a, b := sellers[i].Key, sellers[j].Key
		if a.Month != b.Month {
			return a.Month.Index() < b.Month.Index()
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Seller < b.Seller
	})
	for _, g := range sellers {
		bySeller.AddRow(g.Key.Month.String(), g.Key.Seller, g.Key.Region, g.Key.City, sumRevenue(g.Rows))
	}

	return []models.Table{overall, byRegion, byCity, bySeller}
}
