// Package converter ties the pipeline together: line repair, transaction
// extraction and OFX generation, one statement file per call.
package converter

import (
	"errors"
	"fmt"
	"path/filepath"

	"csv2ofx/internal/export"
	"csv2ofx/internal/extractor"
	"csv2ofx/internal/fieldmap"
	"csv2ofx/internal/fileutils"
	"csv2ofx/internal/logging"
	"csv2ofx/internal/models"
	"csv2ofx/internal/ofx"
	"csv2ofx/internal/parsererror"
	"csv2ofx/internal/preprocess"
)

// Converter converts statement files. Zero value is not usable; use New.
type Converter struct {
	logger   logging.Logger
	synonyms map[fieldmap.Field][]string
}

// New creates a Converter with the built-in header synonym table. A nil
// logger falls back to a default one.
func New(logger logging.Logger) *Converter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Converter{logger: logger}
}

// SetSynonyms replaces the header synonym table, typically with one extended
// from a user-supplied YAML file.
func (c *Converter) SetSynonyms(table map[fieldmap.Field][]string) {
	c.synonyms = table
}

// ConvertFile converts one statement file to OFX and returns the number of
// transactions written. A file with no header or data, or one where every row
// is skipped, writes no output and returns (0, nil): those are diagnostics,
// not failures. Hard errors are an unreadable input or an unresolvable
// header.
func (c *Converter) ConvertFile(inputFile, outputFile string, accountType models.AccountType) (int, error) {
	log := c.logger.WithFields(
		logging.Field{Key: "input", Value: inputFile},
		logging.Field{Key: "output", Value: outputFile},
	)
	log.Info("Converting statement to OFX",
		logging.Field{Key: "accountType", Value: string(accountType)})

	result, err := c.parse(inputFile, accountType)
	if err != nil {
		return 0, err
	}
	if result == nil {
		log.Warn("No header or data rows found; no OFX document produced")
		return 0, nil
	}

	err = ofx.WriteFile(outputFile, result.Transactions, accountType, result.Account, c.logger)
	if errors.Is(err, ofx.ErrNoTransactions) {
		log.Warn("No transactions survived parsing; no OFX document produced")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return len(result.Transactions), nil
}

// ExportCSV parses a statement file and writes the normalized transactions
// as a comma CSV rather than OFX.
func (c *Converter) ExportCSV(inputFile, outputFile string, accountType models.AccountType) (int, error) {
	result, err := c.parse(inputFile, accountType)
	if err != nil {
		return 0, err
	}
	if result == nil || len(result.Transactions) == 0 {
		c.logger.Warn("No transactions to export")
		return 0, nil
	}

	if err := export.WriteTransactionsToCSV(result.Transactions, outputFile, c.logger); err != nil {
		return 0, err
	}
	return len(result.Transactions), nil
}

// BatchConvert converts every .csv file in inputDir, writing the .ofx files
// to outputDir. Files that fail convert are skipped with a warning; the
// returned count is the number of files that produced a document.
func (c *Converter) BatchConvert(inputDir, outputDir string, accountType models.AccountType) (int, error) {
	files, err := fileutils.ListFilesWithExtension(inputDir, ".csv")
	if err != nil {
		return 0, fmt.Errorf("error reading input directory: %w", err)
	}

	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return 0, fmt.Errorf("error creating output directory: %w", err)
	}

	count := 0
	for _, inputFile := range files {
		base := fileutils.ReplaceExtension(filepath.Base(inputFile), ".ofx")
		outputFile := filepath.Join(outputDir, base)

		n, err := c.ConvertFile(inputFile, outputFile, accountType)
		if err != nil {
			c.logger.WithError(err).Warn("Error converting file, skipping",
				logging.Field{Key: "file", Value: inputFile})
			continue
		}
		if n > 0 {
			count++
		}
	}

	c.logger.Info("Batch conversion completed",
		logging.Field{Key: "converted", Value: count},
		logging.Field{Key: "total", Value: len(files)})

	return count, nil
}

// parse runs the preprocessor and extractor. A nil result with nil error
// means the file had no header or data rows.
func (c *Converter) parse(inputFile string, accountType models.AccountType) (*extractor.Result, error) {
	header, lines, err := preprocess.RepairFile(inputFile, c.logger)
	if err != nil {
		return nil, err
	}
	if header == "" || len(lines) == 0 {
		return nil, nil
	}

	result, err := extractor.Extract(header, lines, accountType, c.synonyms, c.logger)
	if err != nil {
		var missing *parsererror.MissingFieldError
		if errors.As(err, &missing) {
			return nil, &parsererror.InvalidFormatError{FilePath: inputFile, Err: missing}
		}
		return nil, err
	}
	return result, nil
}
