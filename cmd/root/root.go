// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"csv2ofx/internal/config"
	"csv2ofx/internal/converter"
	"csv2ofx/internal/fieldmap"
	"csv2ofx/internal/fileutils"
	"csv2ofx/internal/logging"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig holds the Viper-based configuration, loaded in PersistentPreRun
	AppConfig *config.Config

	// Output is the shared output-path flag; empty means derive from the input
	Output string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "csv2ofx",
		Short: "A CLI tool to convert CSV bank and credit-card statements to OFX.",
		Long: `csv2ofx converts semicolon-delimited bank and credit-card statement
exports into OFX documents compatible with personal-finance software
(MS Money, GnuCash and similar).`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to csv2ofx!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
			fileutils.SetLogger(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Warnf("Failed to load configuration, using defaults: %v", err)
				return
			}
			AppConfig = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Output, "output", "o", "", "Output file (default: input path with .ofx extension)")
}

// NewConverter builds a Converter wired to the configured logger and, when
// set, the synonym-extension file from the configuration.
func NewConverter() *converter.Converter {
	conv := converter.New(logging.NewLogrusAdapterFromLogger(Log))

	if AppConfig != nil && AppConfig.Synonyms.File != "" {
		table, err := fieldmap.LoadSynonyms(AppConfig.Synonyms.File)
		if err != nil {
			Log.Warnf("Ignoring synonyms file: %v", err)
		} else {
			conv.SetSynonyms(table)
		}
	}

	return conv
}
