package xlsx

import (
	"fmt"
	"strings"

	"mruiz/sales-kpi/internal/pipelineerror"
)

// maxSheetNameLen is the workbook tab-name limit.
const maxSheetNameLen = 31

// SafeSheetName makes a desired tab name legal and unique: trims, replaces
// forward slashes with underscores, truncates to 31 characters, and on
// collision with an already-used name appends _1, _2, ... (truncating the
// base so the result still fits). Returns a SheetNameError after 999
// failed suffix attempts.
func SafeSheetName(name string, used map[string]bool) (string, error) {
	base := strings.ReplaceAll(strings.TrimSpace(name), "/", "_")
	if len(base) > maxSheetNameLen {
		base = base[:maxSheetNameLen]
	}
	if !used[base] {
		return base, nil
	}
	for i := 1; i < 1000; i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate := base
		if len(candidate) > maxSheetNameLen-len(suffix) {
			candidate = candidate[:maxSheetNameLen-len(suffix)]
		}
		candidate += suffix
		if !used[candidate] {
			return candidate, nil
		}
	}
	return "", &pipelineerror.SheetNameError{Name: name}
}
