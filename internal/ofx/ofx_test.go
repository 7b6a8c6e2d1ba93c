package ofx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2ofx/internal/logging"
	"csv2ofx/internal/models"
)

func sampleTransaction(day int, description string, amount string) models.Transaction {
	return models.Transaction{
		Date:        time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		FITID:       "abc123",
	}
}

func TestRender_BankDocument(t *testing.T) {
	transactions := []models.Transaction{
		sampleTransaction(1, "Compra Loja X", "150.00"),
	}
	account := models.AccountInfo{BankID: "341", AcctID: "1234-56789-0"}

	doc := Render(transactions, models.AccountTypeBank, account)

	assert.True(t, strings.HasPrefix(doc, "OFXHEADER:100\n"))
	assert.Contains(t, doc, "<DTSERVER>20240301</DTSERVER>")
	assert.Contains(t, doc, "<CURDEF>BRL</CURDEF>")
	assert.Contains(t, doc, "<LANGUAGE>POR</LANGUAGE>")
	assert.Contains(t, doc, "<BANKID>341</BANKID>")
	assert.Contains(t, doc, "<ACCTID>1234-56789-0</ACCTID>")
	assert.Contains(t, doc, "<ACCTTYPE>CHECKING</ACCTTYPE>")
	assert.Contains(t, doc, "<DTSTART>20240301</DTSTART>")
	assert.Contains(t, doc, "<DTEND>20240301</DTEND>")
	assert.Contains(t, doc, "<TRNTYPE>CREDIT</TRNTYPE>")
	assert.Contains(t, doc, "<TRNAMT>150,00</TRNAMT>")
	assert.Contains(t, doc, "<FITID>abc123</FITID>")
	assert.Contains(t, doc, "<MEMO>Compra Loja X</MEMO>")
	assert.Contains(t, doc, "<BALAMT>0.00</BALAMT>")
	assert.True(t, strings.HasSuffix(doc, "</OFX>\n"))
	assert.Equal(t, 1, strings.Count(doc, "<STMTTRN>"))
}

func TestRender_CardDocument(t *testing.T) {
	transactions := []models.Transaction{
		sampleTransaction(1, "Compra", "-150.00"),
	}
	account := models.AccountInfo{AcctID: "5555-XXXX"}

	doc := Render(transactions, models.AccountTypeCreditCard, account)

	assert.Contains(t, doc, "<CREDITCARDMSGSRSV1>")
	assert.Contains(t, doc, "<CCACCTFROM>")
	assert.Contains(t, doc, "<ACCTID>5555-XXXX</ACCTID>")
	assert.Contains(t, doc, "<TRNTYPE>DEBIT</TRNTYPE>")
	assert.Contains(t, doc, "<TRNAMT>-150,00</TRNAMT>")
	assert.NotContains(t, doc, "<BANKID>")
	assert.NotContains(t, doc, "<ACCTTYPE>")
}

func TestRender_SentinelsWhenMetadataAbsent(t *testing.T) {
	transactions := []models.Transaction{sampleTransaction(1, "Compra", "10.00")}

	bank := Render(transactions, models.AccountTypeBank, models.AccountInfo{})
	assert.Contains(t, bank, "<BANKID>000</BANKID>")
	assert.Contains(t, bank, "<ACCTID>XXXX-CONTA-NAO-DEFINIDA</ACCTID>")

	card := Render(transactions, models.AccountTypeCreditCard, models.AccountInfo{})
	assert.Contains(t, card, "<ACCTID>XXXX-CARTAO-NAO-DEFINIDO</ACCTID>")
}

func TestRender_DateRangeSpansTransactions(t *testing.T) {
	transactions := []models.Transaction{
		sampleTransaction(1, "Primeira", "10.00"),
		sampleTransaction(15, "Última", "20.00"),
	}

	doc := Render(transactions, models.AccountTypeBank, models.AccountInfo{})

	assert.Contains(t, doc, "<DTSTART>20240301</DTSTART>")
	assert.Contains(t, doc, "<DTEND>20240315</DTEND>")
	assert.Contains(t, doc, "<DTSERVER>20240315</DTSERVER>")
}

func TestRender_AccountBlockSharesLineWithTranList(t *testing.T) {
	transactions := []models.Transaction{sampleTransaction(1, "Compra", "10.00")}

	doc := Render(transactions, models.AccountTypeBank, models.AccountInfo{})

	assert.Contains(t, doc, "</BANKACCTFROM>        <BANKTRANLIST>")
}

func TestRender_Idempotent(t *testing.T) {
	transactions := []models.Transaction{
		sampleTransaction(1, "Compra", "10.00"),
		sampleTransaction(2, "Venda", "-5.50"),
	}
	account := models.AccountInfo{BankID: "001", AcctID: "123"}

	first := Render(transactions, models.AccountTypeBank, account)
	second := Render(transactions, models.AccountTypeBank, account)

	assert.Equal(t, first, second)
}

func TestWriteDocument_CRLFAndWindows1252(t *testing.T) {
	var buf bytes.Buffer

	err := WriteDocument(&buf, "<MEMO>Cartão</MEMO>\n")

	require.NoError(t, err)
	raw := buf.Bytes()
	assert.True(t, bytes.HasSuffix(raw, []byte("\r\n")))
	// "ã" is a single 0xE3 byte in Windows-1252, not the two-byte UTF-8 form.
	assert.Contains(t, string(raw), string([]byte{0xE3}))
	assert.NotContains(t, string(raw), "ã")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ofx")
	transactions := []models.Transaction{sampleTransaction(1, "Compra", "10.00")}

	logger := &logging.MockLogger{}
	err := WriteFile(path, transactions, models.AccountTypeBank, models.AccountInfo{}, logger)

	require.NoError(t, err)
	data, err := os.ReadFile(path) // #nosec G304 -- test-owned temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "OFXHEADER:100\r\n")
	assert.NotContains(t, strings.ReplaceAll(string(data), "\r\n", ""), "\n")
}

func TestWriteFile_NoTransactions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ofx")

	err := WriteFile(path, nil, models.AccountTypeBank, models.AccountInfo{}, &logging.MockLogger{})

	assert.ErrorIs(t, err, ErrNoTransactions)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"150", "150,00"},
		{"150.5", "150,50"},
		{"-3.456", "-3,46"},
		{"0", "0,00"},
		{"1234.56", "1234,56"},
	}
	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
