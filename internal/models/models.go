// Package models defines the canonical record types shared across the
// pipeline: the three source record shapes, the merged record produced by
// reconciliation, and the generic output table handed to the sink.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"mruiz/sales-kpi/internal/periodutils"
)

// Transaction is one sales operation from the "BD" sheet, after type
// coercion. One value per source row; never dropped or duplicated.
type Transaction struct {
	OperationDate time.Time
	SellerName    string
	Revenue       decimal.Decimal
	CustomerID    string
	ShipmentID    string
}

// DirectoryEntry maps a seller to a city and region ("Ciudad-Region" sheet).
// The raw name carries a leading numeric employee code.
type DirectoryEntry struct {
	SellerName string
	City       string
	Region     string
}

// BudgetEntry is one annual budget row ("Presupuesto" sheet). The raw name
// uses the last-name-first convention.
type BudgetEntry struct {
	SellerName string
	Budget     decimal.NullDecimal
}

// MergedRecord is a Transaction joined with its directory and budget data
// on the canonical seller key. City and Region are empty when the seller
// has no directory entry; Budget is null (not zero) when no budget matched,
// so a missing budget surfaces as undefined compliance downstream.
type MergedRecord struct {
	Transaction
	Month     periodutils.Month
	Quarter   periodutils.Quarter
	SellerKey string
	City      string
	Region    string
	Budget    decimal.NullDecimal
}
