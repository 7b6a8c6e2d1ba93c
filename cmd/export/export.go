// Package export contains the command to export parsed statements as normalized CSV
package export

import (
	"strings"

	"github.com/spf13/cobra"

	"csv2ofx/cmd/root"
	"csv2ofx/internal/fileutils"
	"csv2ofx/internal/models"
)

var (
	cardFlag bool
	bankFlag bool

	// Cmd is the export command
	Cmd = &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export a CSV statement as a normalized CSV file",
		Long: `Parse a semicolon-delimited statement and write the cleaned transactions
back out as a comma-delimited CSV with ISO dates and dot-decimal
amounts. Useful for inspecting what the OFX conversion would contain.`,
		Args: cobra.ExactArgs(1),
		Run:  run,
	}
)

func init() {
	Cmd.Flags().BoolVarP(&cardFlag, "card", "c", false, "Treat the input as a credit-card statement")
	Cmd.Flags().BoolVarP(&bankFlag, "bank", "b", false, "Treat the input as a bank statement (default)")
	Cmd.MarkFlagsMutuallyExclusive("card", "bank")
}

func run(cmd *cobra.Command, args []string) {
	inputFile := args[0]

	if !strings.HasSuffix(strings.ToLower(inputFile), ".csv") {
		root.Log.Fatalf("Input file must have a .csv extension: %s", inputFile)
	}
	if !fileutils.FileExists(inputFile) {
		root.Log.Fatalf("Input file does not exist: %s", inputFile)
	}

	outputFile := root.Output
	if outputFile == "" {
		outputFile = fileutils.ReplaceExtension(inputFile, ".normalized.csv")
	}

	accountType := models.AccountTypeBank
	if cardFlag {
		accountType = models.AccountTypeCreditCard
	}

	conv := root.NewConverter()
	count, err := conv.ExportCSV(inputFile, outputFile, accountType)
	if err != nil {
		root.Log.Fatalf("Export failed: %v", err)
	}
	if count == 0 {
		root.Log.Warn("No transactions exported")
		return
	}
	root.Log.WithField("transactions", count).Info("Export completed successfully")
}
