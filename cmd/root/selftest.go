package root

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"mruiz/sales-kpi/internal/identity"
	"mruiz/sales-kpi/internal/xlsx"
)

// Selftest runs a fixed set of normalization and sheet-naming checks
// without touching any input file. Returns the first failed assertion.
func Selftest(log *logrus.Logger) error {
	log.Info("Running self-tests")

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"normalize spacing", identity.Normalize("  Juan  Pérez ", false), "JUAN PÉREZ"},
		{"normalize digit prefix", identity.Normalize("001  Juan Pérez", true), "JUAN PÉREZ"},
		{"budget key inversion", identity.BudgetKey("PEREZ JUAN"), "JUAN PEREZ"},
		{"budget key single token", identity.BudgetKey("SOLO"), "SOLO"},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("selftest %s: got %q, want %q", c.name, c.got, c.want)
		}
	}

	used := map[string]bool{}
	long := strings.Repeat("A", 40)
	first, err := xlsx.SafeSheetName(long, used)
	if err != nil {
		return fmt.Errorf("selftest sheet name: %w", err)
	}
	used[first] = true
	second, err := xlsx.SafeSheetName(long, used)
	if err != nil {
		return fmt.Errorf("selftest sheet name: %w", err)
	}
	if first == second || len(first) > 31 || len(second) > 31 {
		return fmt.Errorf("selftest sheet name: got %q then %q", first, second)
	}

	log.Info("All self-tests passed")
	return nil
}
