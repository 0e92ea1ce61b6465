package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/iwvelando/canfin/internal/calculator"
	"github.com/iwvelando/canfin/internal/config"
	"github.com/iwvelando/canfin/internal/report"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/output"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath   string
	outputFormat string
	logLevel     string
	envFile      string
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "canfin",
		Short:        "Personal finance calculator",
		Long:         "Compute net worth, monthly budget balance and loan qualification from a YAML snapshot.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnvFile(opts.envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVarP(&opts.outputFormat, "output-format", "o", "", "type of output override: pretty, csv")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "optional dotenv file loaded before configuration")

	root.AddCommand(
		newSectionCmd(opts, "networth", "Total assets and liabilities", report.NetWorth),
		newSectionCmd(opts, "budget", "Monthly income, expenses and balance", report.Budget),
		newSectionCmd(opts, "loan", "Loan qualification and amortization schedule", report.Loan),
		&cobra.Command{
			Use:   "report",
			Short: "Run every calculator",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runReport(cmd, opts)
			},
		},
		newServeCmd(opts, version),
	)
	return root
}

func newSectionCmd(opts *options, use, short string, section report.Section) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts, section)
		},
	}
}

// loadEnvFile loads a dotenv file so CANFIN_* overrides can live beside the
// configuration. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func runReport(cmd *cobra.Command, opts *options, sections ...report.Section) error {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	if opts.outputFormat != "" {
		conf.Output.Format = opts.outputFormat
	}
	if err := conf.Validate(); err != nil {
		logger.Error("invalid configuration",
			zap.String("op", "main.runReport"),
			zap.Error(err),
		)
		return err
	}

	calc, err := calculator.New(logger, conf.ToPolicy())
	if err != nil {
		return err
	}

	result, err := report.Build(calc, conf, sections...)
	if err != nil {
		logger.Error("calculation failed",
			zap.String("op", "main.runReport"),
			zap.Error(err),
		)
		return err
	}

	for _, warning := range result.Warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.runReport"),
		)
	}
	result.Warnings = nil

	out := cmd.OutOrStdout()
	switch conf.Output.Format {
	case constants.OutputFormatCSV:
		return output.CsvFormat(out, result)
	default:
		output.PrettyFormat(out, result)
	}
	return nil
}
