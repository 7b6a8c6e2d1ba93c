// Package ofx renders the fixed OFX 1.02 SGML document consumed by legacy
// personal-finance software. The byte structure of the output — tag layout,
// indentation, CRLF line endings and Windows-1252 encoding — is part of the
// compatibility contract and must not be reformatted.
package ofx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"csv2ofx/internal/fileutils"
	"csv2ofx/internal/logging"
	"csv2ofx/internal/models"
)

// ErrNoTransactions signals that an empty transaction list produced no
// document. Callers treat it as a diagnostic, not a hard failure.
var ErrNoTransactions = errors.New("no transactions to write")

const (
	currency = "BRL"
	language = "POR"

	// Sentinels emitted when the source file carried no account metadata.
	defaultBankID     = "000"
	defaultBankAcctID = "XXXX-CONTA-NAO-DEFINIDA"
	defaultCardAcctID = "XXXX-CARTAO-NAO-DEFINIDO"
)

const signOnTemplate = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
  <SIGNONMSGSRSV1>
    <SONRS>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
      </STATUS>
      <DTSERVER>%s</DTSERVER>
      <LANGUAGE>` + language + `</LANGUAGE>
    </SONRS>
  </SIGNONMSGSRSV1>
`

// Account block templates carry no trailing newline: the transaction list
// header follows on the same physical line, matching the consuming software's
// accepted layout.
const cardAccountTemplate = `  <CREDITCARDMSGSRSV1>
    <CCSTMTTRNRS>
      <TRNUID>1</TRNUID>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
      </STATUS>
      <CCSTMTRS>
        <CURDEF>` + currency + `</CURDEF>
        <CCACCTFROM>
          <ACCTID>%s</ACCTID>
        </CCACCTFROM>`

const cardAccountFooter = `      </CCSTMTRS>
    </CCSTMTTRNRS>
  </CREDITCARDMSGSRSV1>`

const bankAccountTemplate = `  <BANKMSGSRSV1>
    <STMTTRNRS>
      <TRNUID>1</TRNUID>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
      </STATUS>
      <STMTRS>
        <CURDEF>` + currency + `</CURDEF>
        <BANKACCTFROM>
          <BANKID>%s</BANKID>
          <ACCTID>%s</ACCTID>
          <ACCTTYPE>CHECKING</ACCTTYPE>
        </BANKACCTFROM>`

const bankAccountFooter = `      </STMTRS>
    </STMTTRNRS>
  </BANKMSGSRSV1>`

const tranListTemplate = `        <BANKTRANLIST>
          <DTSTART>%s</DTSTART>
          <DTEND>%s</DTEND>
`

const transactionTemplate = `          <STMTTRN>
            <TRNTYPE>%s</TRNTYPE>
            <DTPOSTED>%s</DTPOSTED>
            <TRNAMT>%s</TRNAMT>
            <FITID>%s</FITID>
            <CHECKNUM>%s</CHECKNUM>
            <MEMO>%s</MEMO>
          </STMTTRN>
`

const tranListClose = "        </BANKTRANLIST>\n"

const ledgerTemplate = `        <LEDGERBAL>
          <BALAMT>0.00</BALAMT>
          <DTASOF>%s</DTASOF>
        </LEDGERBAL>
%s
</OFX>
`

// Render produces the document text with LF endings; WriteDocument converts
// to CRLF and encodes for output.
func Render(transactions []models.Transaction, accountType models.AccountType, account models.AccountInfo) string {
	startDate := transactions[0].Date.Format(models.OFXDateLayout)
	endDate := transactions[len(transactions)-1].Date.Format(models.OFXDateLayout)

	var accountHeader, accountFooter string
	if accountType == models.AccountTypeCreditCard {
		acctID := account.AcctID
		if acctID == "" {
			acctID = defaultCardAcctID
		}
		accountHeader = fmt.Sprintf(cardAccountTemplate, acctID)
		accountFooter = cardAccountFooter
	} else {
		bankID := account.BankID
		if bankID == "" {
			bankID = defaultBankID
		}
		acctID := account.AcctID
		if acctID == "" {
			acctID = defaultBankAcctID
		}
		accountHeader = fmt.Sprintf(bankAccountTemplate, bankID, acctID)
		accountFooter = bankAccountFooter
	}

	var doc strings.Builder
	// DTSERVER carries the statement end date: the last transaction is the
	// closest thing a file import has to an as-of time.
	doc.WriteString(fmt.Sprintf(signOnTemplate, endDate))
	doc.WriteString(accountHeader)
	doc.WriteString(fmt.Sprintf(tranListTemplate, startDate, endDate))
	for _, tx := range transactions {
		doc.WriteString(fmt.Sprintf(transactionTemplate,
			tx.TrnType(),
			tx.Date.Format(models.OFXDateLayout),
			FormatAmount(tx.Amount),
			tx.FITID,
			tx.RefID,
			tx.Description,
		))
	}
	doc.WriteString(tranListClose)
	doc.WriteString(fmt.Sprintf(ledgerTemplate, endDate, accountFooter))

	return doc.String()
}

// WriteDocument writes the rendered document with CRLF line terminators,
// encoded as Windows-1252 for compatibility with older importers.
func WriteDocument(w io.Writer, document string) error {
	document = strings.ReplaceAll(document, "\n", "\r\n")

	encoder := transform.NewWriter(w, charmap.Windows1252.NewEncoder())
	if _, err := encoder.Write([]byte(document)); err != nil {
		return fmt.Errorf("error encoding OFX document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("error encoding OFX document: %w", err)
	}
	return nil
}

// WriteFile renders the document for the given transactions and writes it to
// path. An empty transaction list writes nothing and returns
// ErrNoTransactions.
func WriteFile(path string, transactions []models.Transaction, accountType models.AccountType, account models.AccountInfo, logger logging.Logger) error {
	if len(transactions) == 0 {
		return ErrNoTransactions
	}

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("error creating OFX file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close OFX file")
		}
	}()

	if err := WriteDocument(file, Render(transactions, accountType, account)); err != nil {
		return err
	}

	logger.Info("Wrote OFX document",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "count", Value: len(transactions)})

	return nil
}

// FormatAmount renders an amount with exactly two decimal digits and a
// decimal comma, the regional convention the consuming software expects.
func FormatAmount(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
