package xlsx

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mruiz/sales-kpi/internal/pipelineerror"
)

func TestSafeSheetName(t *testing.T) {
	tests := []struct {
		name     string
		desired  string
		used     []string
		expected string
	}{
		{"short name unchanged", "KPI1_Monthly_Total", nil, "KPI1_Monthly_Total"},
		{"trims whitespace", "  Merged_Base ", nil, "Merged_Base"},
		{"replaces slashes", "Revenue/Region", nil, "Revenue_Region"},
		{"truncates to 31", strings.Repeat("A", 40), nil, strings.Repeat("A", 31)},
		{"suffix on collision", "Base", []string{"Base"}, "Base_1"},
		{"second suffix on collision", "Base", []string{"Base", "Base_1"}, "Base_2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			used := make(map[string]bool)
			for _, u := range tc.used {
				used[u] = true
			}
			got, err := SafeSheetName(tc.desired, used)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.LessOrEqual(t, len(got), 31)
		})
	}
}

func TestSafeSheetNameLongCollision(t *testing.T) {
	// Two distinct names that truncate identically must still get two
	// different final names, both within the limit.
	used := make(map[string]bool)
	first, err := SafeSheetName(strings.Repeat("A", 40), used)
	require.NoError(t, err)
	used[first] = true

	second, err := SafeSheetName(strings.Repeat("A", 35)+"XYZ", used)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, len(first), 31)
	assert.LessOrEqual(t, len(second), 31)
	assert.Equal(t, strings.Repeat("A", 29)+"_1", second)
}

func TestSafeSheetNameExhaustion(t *testing.T) {
	used := map[string]bool{"Base": true}
	for i := 1; i < 1000; i++ {
		used["Base_"+strconv.Itoa(i)] = true
	}
	_, err := SafeSheetName("Base", used)
	require.Error(t, err)
	var nameErr *pipelineerror.SheetNameError
	assert.ErrorAs(t, err, &nameErr)
}
