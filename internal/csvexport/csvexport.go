// Package csvexport writes the merged base as a CSV file for consumers
// that want the flat record set without opening the workbook.
package csvexport

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
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

// mergedBaseRow is the CSV shape of one merged record. Decimals and dates
// are rendered to text here so the CSV layer stays free of cell typing.
type mergedBaseRow struct {
	OperationDate string `csv:"Fecha Operación"`
	SellerName    string `csv:"Vendedor"`
	Revenue       string `csv:"Ingreso Operación"`
	CustomerID    string `csv:"No. Cliente"`
	ShipmentID    string `csv:"Guia"`
	Month         string `csv:"Mes"`
	Quarter       string `csv:"Trimestre"`
	SellerKey     string `csv:"Vendedor_key"`
	City          string `csv:"CIUDAD"`
	Region        string `csv:"REGION"`
	Budget        string `csv:"Presupuesto"`
}

// WriteMergedBase writes the merged record set as Merged_Base.csv inside
// dir, creating the directory if needed.
func WriteMergedBase(records []models.MergedRecord, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating CSV directory %s: %w", dir, err)
	}

	rows := make([]mergedBaseRow, 0, len(records))
	for _, r := range records {
		row := mergedBaseRow{
			OperationDate: r.OperationDate.Format("2006-01-02"),
			SellerName:    r.SellerName,
			Revenue:       r.Revenue.String(),
			CustomerID:    r.CustomerID,
			ShipmentID:    r.ShipmentID,
			Month:         r.Month.String(),
			Quarter:       r.Quarter.String(),
			SellerKey:     r.SellerKey,
			City:          r.City,
			Region:        r.Region,
		}
		if r.Budget.Valid {
			row.Budget = r.Budget.Decimal.String()
		}
		rows = append(rows, row)
	}

	path := filepath.Join(dir, "Merged_Base.csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"file": path, "rows": len(rows)}).Debug("Wrote merged base CSV")
	return nil
}
