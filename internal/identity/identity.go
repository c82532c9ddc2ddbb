// Package identity canonicalizes free-text seller names into the single
// comparable key used to join the three source sheets. The three sources
// format the same seller differently: transactions use "Nombre Apellido",
// the city/region directory prefixes a numeric employee code, and the
// budget sheet writes "Apellido Nombre".
package identity

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	leadingDigits = regexp.MustCompile(`^\d+\s*`)
	upper         = cases.Upper(language.Und)
)

// Normalize returns the canonical key for a raw seller name: internal
// whitespace runs collapsed to one space, ends trimmed, uppercased. When
// stripLeadingDigits is set, a leading digit run and the whitespace after
// it are removed first (directory names carry an employee code prefix).
// Idempotent; an empty or all-space input yields "".
func Normalize(raw string, stripLeadingDigits bool) string {
	s := strings.Join(strings.Fields(raw), " ")
	if stripLeadingDigits {
		s = leadingDigits.ReplaceAllString(s, "")
	}
	return upper.String(strings.TrimSpace(s))
}

// BudgetKey converts a budget-sheet name ("APELLIDO NOMBRE") into the
// common key order by moving the first token to the end. Single-token
// names pass through unchanged.
func BudgetKey(raw string) string {
	s := Normalize(raw, false)
	parts := strings.Split(s, " ")
	if len(parts) < 2 {
		return s
	}
	return strings.Join(append(parts[1:], parts[0]), " ")
}
