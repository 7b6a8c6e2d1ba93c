package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2ofx/internal/logging"
	"csv2ofx/internal/models"
)

func TestWriteTransactionsToCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	transactions := []models.Transaction{
		{
			Date:        time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Description: "Compra Loja X",
			Amount:      decimal.RequireFromString("150"),
			RefID:       "REF1",
			FITID:       "abc123",
		},
		{
			Date:        time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
			Description: "Pagamento",
			Amount:      decimal.RequireFromString("-35.9"),
			FITID:       "def456",
		},
	}

	err := WriteTransactionsToCSV(transactions, path, &logging.MockLogger{})

	require.NoError(t, err)
	data, err := os.ReadFile(path) // #nosec G304 -- test-owned temp path
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Date,Description,Amount,RefID,FITID")
	assert.Contains(t, content, "2024-03-01,Compra Loja X,150.00,REF1,abc123")
	assert.Contains(t, content, "2024-03-02,Pagamento,-35.90,,def456")
}

func TestWriteTransactionsToCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := WriteTransactionsToCSV(nil, path, &logging.MockLogger{})

	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
