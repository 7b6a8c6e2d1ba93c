package preprocess

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2ofx/internal/logging"
)

func TestRepair_SimpleStatement(t *testing.T) {
	content := "Data;Histórico;Valor\n01/03/2024;Compra Loja X;150,00\n02/03/2024;Pagamento;-50,00\n"

	header, lines := Repair(content)

	assert.Equal(t, "Data;Histórico;Valor", header)
	require.Len(t, lines, 2)
	assert.Equal(t, "01/03/2024;Compra Loja X;150,00", lines[0])
	assert.Equal(t, "02/03/2024;Pagamento;-50,00", lines[1])
}

func TestRepair_StripsByteOrderMark(t *testing.T) {
	content := "\uFEFFData;Histórico;Valor\n01/03/2024;Compra;10,00\n"

	header, lines := Repair(content)

	assert.Equal(t, "Data;Histórico;Valor", header)
	require.Len(t, lines, 1)
}

func TestRepair_SkipsBlankLines(t *testing.T) {
	content := "Data;Histórico;Valor\n\n01/03/2024;Compra;10,00\n   \n02/03/2024;Venda;20,00\n\n"

	_, lines := Repair(content)

	require.Len(t, lines, 2)
	assert.Equal(t, "01/03/2024;Compra;10,00", lines[0])
	assert.Equal(t, "02/03/2024;Venda;20,00", lines[1])
}

func TestRepair_MergesBrokenLineIntoPreviousDescription(t *testing.T) {
	// The wrapped fragment has no delimiters and belongs to the row above.
	content := "Data;Histórico;Valor\n01/03/2024;Compra Loja;150,00\nX Continuação\n02/03/2024;Venda;20,00\n"

	_, lines := Repair(content)

	require.Len(t, lines, 2)
	assert.Equal(t, "01/03/2024;Compra Loja X Continuação;150,00", lines[0])
	assert.Equal(t, "02/03/2024;Venda;20,00", lines[1])
}

func TestRepair_BrokenLineKeepsOnlyFirstField(t *testing.T) {
	// A fragment with a single delimiter contributes only its first field.
	content := "Data;Histórico;Valor\n01/03/2024;Compra;150,00\nresto;descartado\n"

	_, lines := Repair(content)

	require.Len(t, lines, 1)
	assert.Equal(t, "01/03/2024;Compra resto;150,00", lines[0])
}

func TestRepair_BrokenLineBeforeAnyRowIsDropped(t *testing.T) {
	content := "Data;Histórico;Valor\nfragmento solto\n01/03/2024;Compra;10,00\n"

	_, lines := Repair(content)

	require.Len(t, lines, 1)
	assert.Equal(t, "01/03/2024;Compra;10,00", lines[0])
}

func TestRepair_WindowsLineEndings(t *testing.T) {
	content := "Data;Histórico;Valor\r\n01/03/2024;Compra;10,00\r\n"

	header, lines := Repair(content)

	assert.Equal(t, "Data;Histórico;Valor", header)
	require.Len(t, lines, 1)
	assert.Equal(t, "01/03/2024;Compra;10,00", lines[0])
}

func TestRepair_EmptyContent(t *testing.T) {
	header, lines := Repair("")

	assert.Empty(t, header)
	assert.Nil(t, lines)
}

func TestRepair_HeaderOnly(t *testing.T) {
	header, lines := Repair("Data;Histórico;Valor\n")

	assert.Equal(t, "Data;Histórico;Valor", header)
	assert.Empty(t, lines)
}

func TestRepairFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	content := "Data;Histórico;Valor\n01/03/2024;Compra;10,00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	logger := &logging.MockLogger{}
	header, lines, err := RepairFile(path, logger)

	require.NoError(t, err)
	assert.Equal(t, "Data;Histórico;Valor", header)
	assert.Len(t, lines, 1)
}

func TestRepairFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	logger := &logging.MockLogger{}
	header, lines, err := RepairFile(path, logger)

	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Nil(t, lines)
	assert.True(t, logger.HasEntry("WARN", "Statement file is empty"))
}

func TestRepairFile_MissingFile(t *testing.T) {
	logger := &logging.MockLogger{}
	_, _, err := RepairFile(filepath.Join(t.TempDir(), "nope.csv"), logger)

	assert.Error(t, err)
}
