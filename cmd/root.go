package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/drillchem-cli/internal/config"
	"github.com/KaramelBytes/drillchem-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Structured logger for stage progress; rebuilt whenever config loads.
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:           "drillchem",
	Short:         "drillchem: clean and summarize drillhole assay chemistry",
	Long:          `drillchem cleans laboratory assay records per chemical species (censoring flags, oxide and unit conversion to ppm, method categories) and summarizes them per drillhole and per depth interval.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.drillchem/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so commands still run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{IntervalWidth: 10, Workers: 4, OutputDir: ".", LogLevel: "info", LogFormat: "text"}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	l, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; using text logging at info level\n", err)
		l, _ = logging.New(logging.Config{})
	}
	logger = l
	slog.SetDefault(logger)
}
