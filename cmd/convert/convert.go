// Package convert contains the command to convert a single CSV statement to OFX
package convert

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

	// Cmd is the convert command
	Cmd = &cobra.Command{
		Use:   "convert <file.csv>",
		Short: "Convert a CSV statement to an OFX file",
		Long: `Convert a semicolon-delimited CSV bank or credit-card statement to an
OFX document. By default the statement is treated as a bank account;
pass --card for credit-card statements (amount signs are inverted).`,
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
		outputFile = fileutils.ReplaceExtension(inputFile, ".ofx")
	}

	accountType := models.AccountTypeBank
	if cardFlag {
		accountType = models.AccountTypeCreditCard
	}

	root.Log.WithFields(map[string]interface{}{
		"input":  inputFile,
		"output": outputFile,
		"type":   string(accountType),
	}).Info("Converting CSV statement to OFX")

	conv := root.NewConverter()
	count, err := conv.ConvertFile(inputFile, outputFile, accountType)
	if err != nil {
		root.Log.Fatalf("Conversion failed: %v", err)
	}
	if count == 0 {
		root.Log.Warn("No transactions converted; no OFX file was written")
		return
	}
	root.Log.WithField("transactions", count).Info("Conversion completed successfully")
}
