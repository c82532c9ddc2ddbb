package kpi

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"mruiz/sales-kpi/internal/models"
	"mruiz/sales-kpi/internal/periodutils"
)

// rec builds one merged record for reducer tests. A negative budget means
// "no budget matched" (null).
func rec(t *testing.T, date, seller, customer string, revenue float64, city, region string, budget float64) models.MergedRecord {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	r := models.MergedRecord{
		Transaction: models.Transaction{
			OperationDate: d,
			SellerName:    seller,
			Revenue:       decimal.NewFromFloat(revenue),
			CustomerID:    customer,
			ShipmentID:    "G-" + customer + "-" + date,
		},
		Month:     periodutils.MonthOf(d),
		Quarter:   periodutils.QuarterOf(d),
		SellerKey: seller,
		City:      city,
		Region:    region,
	}
	if budget >= 0 {
		r.Budget = decimal.NullDecimal{Decimal: decimal.NewFromFloat(budget), Valid: true}
	}
	return r
}

func cellDecimal(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	d, ok := v.(decimal.Decimal)
	require.True(t, ok, "cell %v is not a decimal", v)
	return d
}

func cellNullDecimal(t *testing.T, v any) decimal.NullDecimal {
	t.Helper()
	d, ok := v.(decimal.NullDecimal)
	require.True(t, ok, "cell %v is not a nullable decimal", v)
	return d
}

func tableByName(t *testing.T, tables []models.Table, name string) models.Table {
	t.Helper()
	for _, table := range tables {
		if table.Name == name {
			return table
		}
	}
	t.Fatalf("table %s not produced", name)
	return models.Table{}
}
