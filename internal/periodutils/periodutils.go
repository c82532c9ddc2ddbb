// Package periodutils provides operation-date parsing and the orderable
// month/quarter period values derived from it.
package periodutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted for the operation date column. Cells come back
// from the workbook already formatted, so several conventions show up.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutISOSlash = "2006/01/02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutUSShort  = "1/2/2006"
	DateLayoutExcel    = "01-02-06"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is the ordered list of layouts tried when parsing dates.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISOSlash,
	DateLayoutEuropean,
	DateLayoutUS,
	DateLayoutUSShort,
	DateLayoutExcel,
	"02-01-2006",
	"02/01/2006",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a date string using the common layouts.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.Join(strings.Fields(dateStr), " ")
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// Month is a calendar month period. The zero value is invalid.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month period containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Index returns a sortable ordinal (months since year 0).
func (m Month) Index() int {
	return m.Year*12 + int(m.Month) - 1
}

// String renders the display form, e.g. "2024-03".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Quarter is a calendar quarter period. The zero value is invalid.
type Quarter struct {
	Year    int
	Quarter int
}

// QuarterOf returns the quarter period containing t.
func QuarterOf(t time.Time) Quarter {
	return Quarter{Year: t.Year(), Quarter: (int(t.Month())-1)/3 + 1}
}

// Index returns a sortable ordinal (quarters since year 0).
func (q Quarter) Index() int {
	return q.Year*4 + q.Quarter - 1
}

// String renders the display form, e.g. "2024Q1".
func (q Quarter) String() string {
	return fmt.Sprintf("%04dQ%d", q.Year, q.Quarter)
}
