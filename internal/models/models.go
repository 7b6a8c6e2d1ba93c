// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the date format used by the statement exports (DD/MM/YYYY).
// Any other format in a data row is a row-level parse failure.
const DateLayout = "02/01/2006"

// dateLayoutLenient accepts day and month with or without a leading zero,
// since some exports write 1/3/2024 instead of 01/03/2024.
const dateLayoutLenient = "2/1/2006"

// OFXDateLayout is the 8-digit date format the OFX output carries.
const OFXDateLayout = "20060102"

// AccountType selects the sign convention and the OFX layout for a run.
type AccountType string

const (
	// AccountTypeBank keeps the original sign of each amount.
	AccountTypeBank AccountType = "bank"
	// AccountTypeCreditCard negates amounts so that spending is negative,
	// as OFX importers expect for card statements.
	AccountTypeCreditCard AccountType = "card"
)

// Transaction is a single normalized statement entry.
type Transaction struct {
	Date        time.Time       // posting date, no time component
	Description string          // cleaned description (no asterisks, collapsed whitespace)
	Amount      decimal.Decimal // signed amount after the account-type sign convention
	RefID       string          // external transaction id from the source file, may be empty
	FITID       string          // deterministic per-row identifier for duplicate detection
}

// TrnType returns the OFX transaction-direction tag. Zero amounts are
// classified as DEBIT.
func (t Transaction) TrnType() string {
	if t.Amount.IsPositive() {
		return "CREDIT"
	}
	return "DEBIT"
}

// AccountInfo carries the account metadata extracted from the first data row.
// Empty fields mean the source file did not provide them.
type AccountInfo struct {
	BankID string
	AcctID string
}

// ParseDate parses a day/month/year statement date, with or without zero
// padding.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayoutLenient, value)
}

// ParseAmount parses a statement amount that may use a decimal comma.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", ".")
	return decimal.NewFromString(amount)
}

// CleanDescription strips asterisk characters, collapses whitespace runs to
// single spaces and trims the ends.
func CleanDescription(description string) string {
	cleaned := strings.ReplaceAll(description, "*", " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
