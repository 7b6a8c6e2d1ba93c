// Package csv2ofx is the library entry point for converting semicolon
// delimited bank and credit-card statements to OFX documents without going
// through the CLI.
package csv2ofx

import (
	"csv2ofx/internal/converter"
	"csv2ofx/internal/models"
)

// AccountType selects the sign convention and OFX layout of a conversion.
type AccountType = models.AccountType

const (
	// Bank keeps the original sign of each amount.
	Bank = models.AccountTypeBank
	// CreditCard negates amounts so spending comes out negative.
	CreditCard = models.AccountTypeCreditCard
)

// Convert converts one statement file to OFX and returns the number of
// transactions written. A statement with no usable rows writes nothing and
// returns (0, nil).
func Convert(inputFile, outputFile string, accountType AccountType) (int, error) {
	return converter.New(nil).ConvertFile(inputFile, outputFile, accountType)
}

// BatchConvert converts every .csv file in inputDir into outputDir,
// skipping files that fail, and returns the number of files that produced
// an OFX document.
func BatchConvert(inputDir, outputDir string, accountType AccountType) (int, error) {
	return converter.New(nil).BatchConvert(inputDir, outputDir, accountType)
}
