package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mruiz/sales-kpi/internal/models"
)

func TestPortfolioHHISingleCustomer(t *testing.T) {
	records := []models.MergedRecord{
		rec(t, "2024-01-10", "ANA LOPEZ", "C1", 500, "Monterrey", "Norte", -1),
	}

	summary := tableByName(t, Portfolio(records), "E3_Seller_Portfolio")
	require.Len(t, summary.Rows, 1)

	row := summary.Rows[0]
	assert.Equal(t, "ANA LOPEZ", row[0])
	assert.Equal(t, 1, row[4])
	assert.Equal(t, "1", cellDecimal(t, row[6]).String(), "one customer with 100%% share means HHI = 1")
	assert.Equal(t, "100", cellNullDecimal(t, row[7]).Decimal.String())
	assert.Equal(t, "HIGH", row[8])
}

func TestPortfolioHHIEqualCustomers(t *testing.T) {
	var records []models.MergedRecord
	for _, customer := range []string{"C1", "C2", "C3", "C4", "C5"} {
		records = append(records, rec(t, "2024-01-10", "ANA LOPEZ", customer, 100, "Monterrey", "Norte", -1))
	}

	summary := tableByName(t, Portfolio(records), "E3_Seller_Portfolio")
	require.Len(t, summary.Rows, 1)
	assert.Equal(t, "0.2", cellDecimal(t, summary.Rows[0][6]).String(),
		"five equal customers give HHI = 5*(0.2)^2 = 0.2")
}

func TestPortfolioTop5AndRisk(t *testing.T) {
	// Beto: six customers; ranks 1-5 sum 500 of a 510 total, HIGH risk.
	// Ana: two equal customers, 100%% in top 5 but only via a small book.
	records := []models.MergedRecord{
		rec(t, "2024-01-10", "BETO DIAZ", "B1", 200, "Merida", "Sur", -1),
		rec(t, "2024-01-11", "BETO DIAZ", "B2", 150, "Merida", "Sur", -1),
		rec(t, "2024-01-12", "BETO DIAZ", "B3", 80, "Merida", "Sur", -1),
		rec(t, "2024-01-13", "BETO DIAZ", "B4", 40, "Merida", "Sur", -1),
		rec(t, "2024-01-14", "BETO DIAZ", "B5", 30, "Merida", "Sur", -1),
		rec(t, "2024-01-15", "BETO DIAZ", "B6", 10, "Merida", "Sur", -1),
		rec(t, "2024-01-10", "ANA LOPEZ", "C1", 50, "Monterrey", "Norte", -1),
		rec(t, "2024-01-11", "ANA LOPEZ", "C2", 50, "Monterrey", "Norte", -1),
	}

	summary := tableByName(t, Portfolio(records), "E3_Seller_Portfolio")
	require.Len(t, summary.Rows, 2)

	// Ana's Top-5 share is 100%, Beto's ~98%: Ana sorts first.
	ana, beto := summary.Rows[0], summary.Rows[1]
	assert.Equal(t, "ANA LOPEZ", ana[0])
	assert.Equal(t, "100", cellNullDecimal(t, ana[7]).Decimal.String())
	assert.Equal(t, "HIGH", ana[8])

	assert.Equal(t, "BETO DIAZ", beto[0])
	assert.Equal(t, 6, beto[4])
	assert.Equal(t, "500", cellDecimal(t, beto[5]).String(), "only ranks 1-5 count")
	assert.Equal(t, "HIGH", beto[8])
}

func TestPortfolioRankTiesKeepInputOrder(t *testing.T) {
	// Six customers with equal revenue: the tie-break is first-seen
	// order, so the sixth never displaces an earlier one from the Top 5.
	var records []models.MergedRecord
	for _, customer := range []string{"C1", "C2", "C3", "C4", "C5", "C6"} {
		records = append(records, rec(t, "2024-01-10", "ANA LOPEZ", customer, 100, "Monterrey", "Norte", -1))
	}

	summary := tableByName(t, Portfolio(records), "E3_Seller_Portfolio")
	require.Len(t, summary.Rows, 1)
	assert.Equal(t, "500", cellDecimal(t, summary.Rows[0][5]).String())
}

func TestPortfolioZeroRevenueSeller(t *testing.T) {
	records := []models.MergedRecord{
		rec(t, "2024-01-10", "ANA LOPEZ", "C1", 0, "Monterrey", "Norte", -1),
	}

	summary := tableByName(t, Portfolio(records), "E3_Seller_Portfolio")
	require.Len(t, summary.Rows, 1)

	row := summary.Rows[0]
	assert.Equal(t, "0", cellDecimal(t, row[5]).String(), "Top-5 revenue defaults to zero")
	assert.False(t, cellNullDecimal(t, row[7]).Valid, "Top-5 %% stays null when accumulated is zero")
	assert.Equal(t, "0", cellDecimal(t, row[6]).String(), "null shares count as zero in HHI")
	assert.Equal(t, "NORMAL", row[8])
}

func TestReactivationCandidates(t *testing.T) {
	records := []models.MergedRecord{
		// Ana: C1 is high value (100 >= 82, the 80th percentile of
		// [10, 100]) and 60 days dormant. C2 is recent and low value.
		rec(t, "2024-01-01", "ANA LOPEZ", "C1", 100, "Monterrey", "Norte", -1),
		rec(t, "2024-03-01", "ANA LOPEZ", "C2", 10, "Monterrey", "Norte", -1),
		// Beto: B2 is high value (500 >= 410) and 40 days dormant; B1 is
		// dormant much longer but below Beto's own percentile.
		rec(t, "2023-11-22", "BETO DIAZ", "B1", 50, "Merida", "Sur", -1),
		rec(t, "2024-01-21", "BETO DIAZ", "B2", 500, "Merida", "Sur", -1),
	}

	reactivate := tableByName(t, Portfolio(records), "E3_Reactivate_Customers")
	require.Len(t, reactivate.Rows, 2)

	// Sorted by days dormant descending.
	first, second := reactivate.Rows[0], reactivate.Rows[1]
	assert.Equal(t, "ANA LOPEZ", first[0])
	assert.Equal(t, "C1", first[1])
	assert.Equal(t, 60, first[8])

	assert.Equal(t, "BETO DIAZ", second[0])
	assert.Equal(t, "B2", second[1])
	assert.Equal(t, 40, second[8])
}

func TestReactivationRequiresDormancy(t *testing.T) {
	records := []models.MergedRecord{
		// High value but bought 10 days before the dataset's max date.
		rec(t, "2024-02-20", "ANA LOPEZ", "C1", 1000, "Monterrey", "Norte", -1),
		rec(t, "2024-03-01", "ANA LOPEZ", "C2", 10, "Monterrey", "Norte", -1),
	}

	reactivate := tableByName(t, Portfolio(records), "E3_Reactivate_Customers")
	assert.Empty(t, reactivate.Rows)
}

func TestReactivationAggregatesPurchases(t *testing.T) {
	records := []models.MergedRecord{
		rec(t, "2024-01-01", "ANA LOPEZ", "C1", 60, "Monterrey", "Norte", -1),
		rec(t, "2024-01-15", "ANA LOPEZ", "C1", 40, "Monterrey", "Norte", -1),
		rec(t, "2024-04-01", "ANA LOPEZ", "C2", 5, "Monterrey", "Norte", -1),
	}

	reactivate := tableByName(t, Portfolio(records), "E3_Reactivate_Customers")
	require.Len(t, reactivate.Rows, 1)

	row := reactivate.Rows[0]
	assert.Equal(t, "C1", row[1])
	assert.Equal(t, "100", cellDecimal(t, row[2]).String())
	assert.Equal(t, 2, row[3], "purchase count")
	assert.Equal(t, 77, row[8], "days from 2024-01-15 to 2024-04-01")
}
