// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mruiz/sales-kpi/internal/config"
	"mruiz/sales-kpi/internal/csvexport"
	"mruiz/sales-kpi/internal/kpi"
	"mruiz/sales-kpi/internal/reconcile"
	"mruiz/sales-kpi/internal/xlsx"
)

// Flags holds the command-line options of the run.
type Flags struct {
	Input     string
	Output    string
	CSVDir    string
	ColumnMap string
	Quiet     bool
	Selftest  bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	flags = Flags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sales-kpi",
		Short: "Sales and revenue analytics: generates KPI tables from a sales workbook.",
		Long: `sales-kpi ingests a workbook with three sheets (BD, Ciudad-Region,
Presupuesto), reconciles them into one record set keyed by a normalized
seller identity, and writes revenue, growth, projection, budget-compliance
and portfolio-risk tables back out as a multi-tab workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
			if flags.Quiet {
				Log.SetLevel(logrus.ErrorLevel)
			}

			xlsx.SetLogger(Log)
			reconcile.SetLogger(Log)
			kpi.SetLogger(Log)
			csvexport.SetLogger(Log)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Selftest {
				return Selftest(Log)
			}

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			if flags.Input != "" {
				cfg.Input = flags.Input
			}
			if flags.Output != "" {
				cfg.Output = flags.Output
			}
			if flags.CSVDir != "" {
				cfg.CSVDir = flags.CSVDir
			}
			if flags.ColumnMap != "" {
				cfg.ColumnMapFile = flags.ColumnMap
			}
			return RunAnalysis(cfg, Log)
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&flags.Input, "input", "i", "", "Input workbook path (default "+config.DefaultInput+")")
	Cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", "", "Output workbook path (default "+config.DefaultOutput+")")
	Cmd.PersistentFlags().StringVar(&flags.CSVDir, "csv-dir", "", "Also write the merged base as CSV into this directory")
	Cmd.PersistentFlags().StringVar(&flags.ColumnMap, "column-map", "", "YAML file renaming workbook columns to the expected headers")
	Cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress and result logging")
	Cmd.PersistentFlags().BoolVar(&flags.Selftest, "selftest", false, "Run quick self-tests and exit")
}
