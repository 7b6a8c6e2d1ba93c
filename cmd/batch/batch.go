// Package batch contains the command to convert a directory of CSV statements
package batch

import (
	"github.com/spf13/cobra"

	"csv2ofx/cmd/root"
	"csv2ofx/internal/fileutils"
	"csv2ofx/internal/models"
)

var (
	inputDir  string
	outputDir string
	cardFlag  bool
	bankFlag  bool

	// Cmd is the batch command
	Cmd = &cobra.Command{
		Use:   "batch",
		Short: "Convert every CSV statement in a directory to OFX",
		Long: `Convert all CSV files found in the input directory to OFX documents in
the output directory. Files that fail to convert are skipped with a
warning so one bad statement does not abort the whole run.`,
		Run: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input-dir", "i", "", "Directory containing CSV statements (required)")
	Cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Directory for the generated OFX files (required)")
	Cmd.Flags().BoolVarP(&cardFlag, "card", "c", false, "Treat the inputs as credit-card statements")
	Cmd.Flags().BoolVarP(&bankFlag, "bank", "b", false, "Treat the inputs as bank statements (default)")
	Cmd.MarkFlagsMutuallyExclusive("card", "bank")
	if err := Cmd.MarkFlagRequired("input-dir"); err != nil {
		root.Log.Fatalf("Failed to mark input-dir flag as required: %v", err)
	}
	if err := Cmd.MarkFlagRequired("output-dir"); err != nil {
		root.Log.Fatalf("Failed to mark output-dir flag as required: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) {
	if !fileutils.DirectoryExists(inputDir) {
		root.Log.Fatalf("Input directory does not exist: %s", inputDir)
	}

	accountType := models.AccountTypeBank
	if cardFlag {
		accountType = models.AccountTypeCreditCard
	}

	root.Log.WithFields(map[string]interface{}{
		"input-dir":  inputDir,
		"output-dir": outputDir,
		"type":       string(accountType),
	}).Info("Starting batch conversion")

	conv := root.NewConverter()
	count, err := conv.BatchConvert(inputDir, outputDir, accountType)
	if err != nil {
		root.Log.Fatalf("Batch conversion failed: %v", err)
	}
	root.Log.WithField("files", count).Info("Batch conversion completed")
}
