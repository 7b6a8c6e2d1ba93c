package csv2ofx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2ofx/pkg/csv2ofx"
)

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "extrato.csv")
	output := filepath.Join(dir, "extrato.ofx")
	content := "Data;Histórico;Valor\n01/03/2024;Compra Loja X;150,00\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0600))

	count, err := csv2ofx.Convert(input, output, csv2ofx.Bank)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.FileExists(t, output)
}

func TestBatchConvert(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	content := "Data;Histórico;Valor\n01/03/2024;Compra;10,00\n"
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "a.csv"), []byte(content), 0600))

	count, err := csv2ofx.BatchConvert(inputDir, outputDir, csv2ofx.CreditCard)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.FileExists(t, filepath.Join(outputDir, "a.ofx"))
}
