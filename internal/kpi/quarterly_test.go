package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mruiz/sales-kpi/internal/models"
)

func TestQuarterlyGrowthTotal(t *testing.T) {
	// Revenue sequence [100, 150, 90] across three quarters.
	records := []models.MergedRecord{
		rec(t, "2024-01-15", "ANA LOPEZ", "C1", 100, "Monterrey", "Norte", -1),
		rec(t, "2024-04-15", "ANA LOPEZ", "C1", 150, "Monterrey", "Norte", -1),
		rec(t, "2024-07-15", "ANA LOPEZ", "C1", 90, "Monterrey", "Norte", -1),
	}

	tables := QuarterlyGrowth(records)
	require.Len(t, tables, 3)

	total := tableByName(t, tables, "KPI2_Quarterly_Total")
	require.Len(t, total.Rows, 3)

	assert.Equal(t, "2024Q1", total.Rows[0][0])
	assert.False(t, cellNullDecimal(t, total.Rows[0][2]).Valid, "first quarter growth must be null")

	assert.Equal(t, "2024Q2", total.Rows[1][0])
	growth2 := cellNullDecimal(t, total.Rows[1][2])
	require.True(t, growth2.Valid)
	assert.Equal(t, "50", growth2.Decimal.String())

	assert.Equal(t, "2024Q3", total.Rows[2][0])
	growth3 := cellNullDecimal(t, total.Rows[2][2])
	require.True(t, growth3.Valid)
	assert.Equal(t, "-40", growth3.Decimal.String())
}

func TestQuarterlyGrowthPerGroup(t *testing.T) {
	// Each region's growth is computed within its own quarter sequence.
	records := []models.MergedRecord{
		rec(t, "2024-01-15", "ANA LOPEZ", "C1", 100, "Monterrey", "Norte", -1),
		rec(t, "2024-04-15", "ANA LOPEZ", "C1", 200, "Monterrey", "Norte", -1),
		rec(t, "2024-04-15", "BETO DIAZ", "C2", 80, "Merida", "Sur", -1),
		rec(t, "2024-07-15", "BETO DIAZ", "C2", 40, "Merida", "Sur", -1),
	}

	byRegion := tableByName(t, QuarterlyGrowth(records), "KPI2_Quarterly_Region")
	require.Len(t, byRegion.Rows, 4)

	// Group-major order: all Norte quarters, then all Sur quarters.
	assert.Equal(t, "Norte", byRegion.Rows[0][1])
	assert.False(t, cellNullDecimal(t, byRegion.Rows[0][3]).Valid)
	assert.Equal(t, "100", cellNullDecimal(t, byRegion.Rows[1][3]).Decimal.String())

	assert.Equal(t, "Sur", byRegion.Rows[2][1])
	assert.False(t, cellNullDecimal(t, byRegion.Rows[2][3]).Valid,
		"Sur's first quarter must not inherit Norte's revenue as previous period")
	assert.Equal(t, "-50", cellNullDecimal(t, byRegion.Rows[3][3]).Decimal.String())
}

func TestQuarterlyGrowthZeroPrevious(t *testing.T) {
	records := []models.MergedRecord{
		rec(t, "2024-01-15", "ANA LOPEZ", "C1", 0, "Monterrey", "Norte", -1),
		rec(t, "2024-04-15", "ANA LOPEZ", "C1", 50, "Monterrey", "Norte", -1),
	}

	total := tableByName(t, QuarterlyGrowth(records), "KPI2_Quarterly_Total")
	require.Len(t, total.Rows, 2)
	assert.False(t, cellNullDecimal(t, total.Rows[1][2]).Valid,
		"growth over a zero quarter must be null, not a fault")
}
