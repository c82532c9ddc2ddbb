// Package kpi derives the report tables from the merged record set. Each
// reducer is a pure function of the full sequence; none depends on
// another's output, so their order never matters for correctness.
package kpi

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"mruiz/sales-kpi/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// group is one bucket of a group-by: the key plus its rows in input order.
type group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// groupBy buckets rows by key, preserving first-seen group order and the
// input order of rows inside each group.
func groupBy[K comparable, T any](rows []T, key func(T) K) []group[K, T] {
	index := make(map[K]int)
	var groups []group[K, T]
	for _, row := range rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

func sumRevenue(rows []models.MergedRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue)
	}
	return total
}

// divide returns num/den, or null when the denominator is zero. Every
// ratio in the report goes through here or divideNull so a zero
// denominator can never fault or silently read as zero.
func divide(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: num.Div(den), Valid: true}
}

// divideNull is divide with a nullable numerator and denominator; null on
// either side propagates.
func divideNull(num, den decimal.NullDecimal) decimal.NullDecimal {
	if !num.Valid || !den.Valid {
		return decimal.NullDecimal{}
	}
	return divide(num.Decimal, den.Decimal)
}

// pctChange returns (current-previous)/previous*100, null when there is
// no previous period or its value is zero.
func pctChange(current decimal.Decimal, previous decimal.NullDecimal) decimal.NullDecimal {
	growth := divideNull(
		decimal.NullDecimal{Decimal: current.Sub(previous.Decimal), Valid: previous.Valid},
		previous,
	)
	if !growth.Valid {
		return growth
	}
	return decimal.NullDecimal{Decimal: growth.Decimal.Mul(hundred), Valid: true}
}

// mulNull multiplies a nullable value by a factor, propagating null.
func mulNull(v decimal.NullDecimal, factor decimal.Decimal) decimal.NullDecimal {
	if !v.Valid {
		return v
	}
	return decimal.NullDecimal{Decimal: v.Decimal.Mul(factor), Valid: true}
}

// lessNullDesc orders nullable values descending with nulls last, for the
// compliance and portfolio sorts.
func lessNullDesc(a, b decimal.NullDecimal) bool {
	switch {
	case a.Valid && b.Valid:
		return a.Decimal.GreaterThan(b.Decimal)
	case a.Valid:
		return true
	default:
		return false
	}
}
