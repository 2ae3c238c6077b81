// Package main provides the CLI entrypoint for layout-converter.
//
// layout-converter turns spreadsheets and delimited files into the
// fixed-width or delimited layouts expected by payroll and consigned-credit
// systems:
//   - guess proposes a column mapping for an input file
//   - schema reconciles and validates job files
//   - convert produces the output file
//   - catalog and layouts manage the stored fields and configs
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"layout-converter/internal/config"
	"layout-converter/internal/logging"
)

var (
	// Flags
	settingsPath string
	logLevel     string
	logFormat    string
	timeout      time.Duration

	// Initialized in PersistentPreRunE
	settings *config.Settings
	logger   = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "layout-converter",
	Short: "Convert tabular records into fixed-width or delimited layouts",
	Long: `layout-converter maps the columns of a spreadsheet or delimited file onto a
catalog of known fields and writes them out in a configured layout.

Typical flow:
  layout-converter guess clientes.xlsx --write-job job.yaml
  # review job.yaml: column mappings and output fields
  layout-converter schema validate job.yaml
  layout-converter convert clientes.xlsx --job job.yaml --out ./saida`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(settingsPath)
		if err != nil {
			return err
		}

		if logLevel != "" {
			s.Logging.Level = logLevel
		}

		if logFormat != "" {
			s.Logging.Format = logFormat
		}

		l, err := logging.New(s.Logging.Level, s.Logging.Format)
		if err != nil {
			return err
		}

		settings, logger = s, l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Settings file (default: ./layout-converter.yaml or ./config/layout-converter.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format override: json, console")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for storage operations")

	rootCmd.AddCommand(guessCmd, convertCmd, schemaCmd, catalogCmd, layoutsCmd)
}

// commandContext bounds storage calls by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
