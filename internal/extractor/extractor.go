// Package extractor turns repaired statement lines into normalized
// transactions. Parsing is best-effort: a malformed row is skipped with a
// recorded reason and processing continues; only an unresolvable header
// aborts the whole extraction.
package extractor

import (
	"crypto/md5" // #nosec G401 -- FITID is a dedupe identifier, not a security hash
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"csv2ofx/internal/fieldmap"
	"csv2ofx/internal/logging"
	"csv2ofx/internal/models"
	"csv2ofx/internal/parsererror"
	"csv2ofx/internal/preprocess"
)

// Result is the outcome of extracting one statement file.
type Result struct {
	Transactions []models.Transaction
	Account      models.AccountInfo
	Skipped      []*parsererror.RowError
}

// Extract resolves the header, pulls the account metadata from the first data
// row and parses every row into a transaction, sorted ascending by date.
// A nil synonym table uses the built-in defaults. Returns a MissingFieldError
// when any of the mandatory fields (date, description, amount) cannot be
// matched.
func Extract(header string, lines []string, accountType models.AccountType, synonyms map[fieldmap.Field][]string, logger logging.Logger) (*Result, error) {
	columns := splitHeader(header)

	fields, err := fieldmap.Resolve(columns, synonyms)
	if err != nil {
		logger.WithError(err).Error("Failed to resolve statement header")
		return nil, err
	}

	result := &Result{
		Account: extractAccountInfo(lines, fields),
	}

	for i, line := range lines {
		tx, err := parseRow(line, i, fields, accountType)
		if err != nil {
			rowErr := &parsererror.RowError{Row: i, Line: line, Err: err}
			result.Skipped = append(result.Skipped, rowErr)
			logger.WithError(err).Warn("Skipping malformed row",
				logging.Field{Key: "row", Value: i},
				logging.Field{Key: "content", Value: line})
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	// OFX importers expect transactions in date order; ties keep their
	// original row order.
	sort.SliceStable(result.Transactions, func(a, b int) bool {
		return result.Transactions[a].Date.Before(result.Transactions[b].Date)
	})

	logger.Info("Extracted transactions",
		logging.Field{Key: "count", Value: len(result.Transactions)},
		logging.Field{Key: "skipped", Value: len(result.Skipped)})

	return result, nil
}

// splitHeader splits the header line on the delimiter, trimming each column
// name but preserving its case for display.
func splitHeader(header string) []string {
	columns := strings.Split(header, string(preprocess.Delimiter))
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}
	return columns
}

// extractAccountInfo reads the bank, branch and account columns from the
// first data row only. A short or malformed row yields absent values, never
// an error. When both branch and account are present they are joined with a
// hyphen.
func extractAccountInfo(lines []string, fields fieldmap.Map) models.AccountInfo {
	if len(lines) == 0 {
		return models.AccountInfo{}
	}

	firstRow := strings.Split(lines[0], string(preprocess.Delimiter))
	cell := func(field fieldmap.Field) string {
		idx, ok := fields.Column(field)
		if !ok || idx >= len(firstRow) {
			return ""
		}
		return strings.TrimSpace(firstRow[idx])
	}

	info := models.AccountInfo{BankID: cell(fieldmap.FieldBankID)}

	branch := cell(fieldmap.FieldBranch)
	account := cell(fieldmap.FieldAccountID)
	switch {
	case branch != "" && account != "":
		info.AcctID = branch + "-" + account
	case account != "":
		info.AcctID = account
	}

	return info
}

// parseRow parses a single repaired line into a transaction. The row index
// participates in the FITID so identical rows at different positions still
// get distinct identifiers.
func parseRow(line string, index int, fields fieldmap.Map, accountType models.AccountType) (models.Transaction, error) {
	record, err := splitRow(line)
	if err != nil {
		return models.Transaction{}, err
	}

	rawDate, err := requiredCell(record, fields, fieldmap.FieldDate)
	if err != nil {
		return models.Transaction{}, err
	}
	rawDescription, err := requiredCell(record, fields, fieldmap.FieldDescription)
	if err != nil {
		return models.Transaction{}, err
	}
	rawDescription = strings.TrimSpace(rawDescription)
	rawAmount, err := requiredCell(record, fields, fieldmap.FieldAmount)
	if err != nil {
		return models.Transaction{}, err
	}

	date, err := models.ParseDate(rawDate)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY", rawDate)
	}

	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", rawAmount, err)
	}
	if accountType == models.AccountTypeCreditCard {
		amount = amount.Neg()
	}

	return models.Transaction{
		Date:        date,
		Description: models.CleanDescription(rawDescription),
		Amount:      amount,
		RefID:       optionalCell(record, fields, fieldmap.FieldTransactionID),
		FITID:       fitid(rawDate, rawDescription, rawAmount, index),
	}, nil
}

// splitRow parses one line with CSV semantics so quoted fields containing the
// delimiter survive.
func splitRow(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = preprocess.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	record, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unparseable row: %w", err)
	}
	return record, nil
}

func requiredCell(record []string, fields fieldmap.Map, field fieldmap.Field) (string, error) {
	idx, _ := fields.Column(field)
	if idx >= len(record) {
		return "", fmt.Errorf("missing value for %s", field)
	}
	return record[idx], nil
}

func optionalCell(record []string, fields fieldmap.Map, field fieldmap.Field) string {
	idx, ok := fields.Column(field)
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// fitid derives the deterministic per-transaction identifier from the raw row
// content and its index. Stable for a given file, not meaningful across files.
func fitid(rawDate, rawDescription, rawAmount string, index int) string {
	sum := md5.Sum([]byte(rawDate + rawDescription + rawAmount + strconv.Itoa(index))) // #nosec G401
	return hex.EncodeToString(sum[:])
}
