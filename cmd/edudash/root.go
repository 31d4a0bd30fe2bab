package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"edudash.insights.org/internal/appconf"
	"edudash.insights.org/internal/logging"
)

// cli is the state shared by every command once the root pre-run has read
// the configuration.
type cli struct {
	configFile string
	verbose    bool

	config appconf.Config
	logger *slog.Logger
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"port":       appconf.KeyPort,
	"env":        appconf.KeyEnv,
	"api-keys":   appconf.KeyApiKeys,
	"rate-limit": appconf.KeyRateLimit,
	"dataset":    appconf.KeyDatasetPath,
	"log-level":  appconf.KeyLogLevel,
	"log-format": appconf.KeyLogFormat,
	"missing":    appconf.KeyMissing,
	"metrics":    appconf.KeyMetricsEnabled,
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "edudash",
		Short: "Education and economic indicators dashboard",
		Long: `edudash loads a per-country indicators file and serves the dashboard
aggregates (KPIs, grouped means, rankings, correlations) over a JSON API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "Config file (default: ./edudash.yaml or ./configs/edudash.yaml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging and dataset statistics")
	flags.String("dataset", "", "Path to the indicators CSV file")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (json|text)")
	flags.String("missing", "", "Missing value policy for aggregates (skip|fail)")

	rootCmd.AddCommand(newServeCmd(c), newSummaryCmd(c), newVersionCmd())
	return rootCmd
}

// setup reads the configuration and installs the default logger.
func (c *cli) setup(cmd *cobra.Command) error {
	v, err := appconf.NewViper(c.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	if c.verbose {
		v.Set(appconf.KeyDatasetVerbose, true)
		v.Set(appconf.KeyLogLevel, "debug")
	}

	cfg, err := appconf.Load(v)
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	c.config = cfg
	c.logger = logging.NewLogger(cmd.ErrOrStderr(), level, cfg.LogFormat)
	slog.SetDefault(c.logger)

	c.logger.Debug("configuration loaded",
		slog.String("env", cfg.Env.String()),
		slog.String("dataset", cfg.DatasetPath),
		slog.String("missing", cfg.Missing))
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
