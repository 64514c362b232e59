package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is the state shared by every subcommand once settings are loaded
type app struct {
	v        *viper.Viper
	cfgFile  string
	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "itax",
		Short: "Indian income tax and personal finance calculator",
		Long: `Income tax for ` + domain.TaxYear + ` under the old and new regimes, with
salary, investment and retirement calculators built on the same tax engine.

Settings are read from $HOME/.config/itax/config.yaml or --config, and can be
overridden with ITAX_* environment variables (ITAX_LOGGING_LEVEL, ITAX_OUTPUT_FORMAT).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "settings file (default $HOME/.config/itax/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console, json")
	pf.StringP("format", "f", "", "output format: "+fmt.Sprint(output.AvailableFormatterNames()))
	pf.String("locale", "", "locale for currency amounts, e.g. en-IN")
	_ = a.v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("output.format", pf.Lookup("format"))
	_ = a.v.BindPFlag("output.locale", pf.Lookup("locale"))

	rootCmd.AddCommand(
		versionCmd(),
		newCalculateCmd(a),
		newCompareCmd(a),
		newValidateCmd(),
		newBreakEvenCmd(a),
		newSalaryCmd(a),
		newOffersCmd(a),
		newHRACmd(a),
		newSIPCmd(a),
		newFDCmd(a),
		newEPFCmd(a),
		newEPSCmd(a),
		newNPSCmd(a),
		newGratuityCmd(a),
		newRetirementCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// init loads settings and builds the logger
func (a *app) init() error {
	settings, err := config.LoadSettings(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := initializeLogger(settings.Logging)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	a.logger.Debug("settings loaded",
		zap.String("op", "itax.init"),
		zap.String("config", a.v.ConfigFileUsed()),
		zap.String("output_format", settings.Output.Format))
	return nil
}

func (a *app) format() string {
	return output.NormalizeFormatName(a.settings.Output.Format)
}

func (a *app) currency() (output.Currency, error) {
	c, err := output.NewCurrency(a.settings.Output.Locale)
	if err != nil {
		return c, fmt.Errorf("invalid locale %q: %w", a.settings.Output.Locale, err)
	}
	return c, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "itax %s (commit %s, built %s)\n", version, commit, date)
			fmt.Fprintf(out, "tax rules: %s\n", domain.TaxYear)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
