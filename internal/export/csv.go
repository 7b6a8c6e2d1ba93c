// Package export writes parsed transactions back out as a normalized CSV,
// useful for inspecting what a statement parsed into before trusting the OFX.
package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"csv2ofx/internal/fileutils"
	"csv2ofx/internal/logging"
	"csv2ofx/internal/models"
)

// Row is the flat CSV representation of a normalized transaction.
type Row struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	RefID       string `csv:"RefID"`
	FITID       string `csv:"FITID"`
}

// WriteTransactionsToCSV writes transactions to a comma-separated CSV file
// with ISO dates and dot-decimal amounts.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, logger logging.Logger) error {
	if len(transactions) == 0 {
		return fmt.Errorf("no transactions to write")
	}

	rows := make([]*Row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, &Row{
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			RefID:       tx.RefID,
			FITID:       tx.FITID,
		})
	}

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Wrote normalized transactions",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(rows)})

	return nil
}
