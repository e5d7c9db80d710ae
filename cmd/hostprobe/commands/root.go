package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prabalesh/hostprobe/internal/collector"
	"github.com/prabalesh/hostprobe/internal/command"
	"github.com/prabalesh/hostprobe/internal/config"
	"github.com/prabalesh/hostprobe/internal/logger"
)

var (
	// Version is set at build time
	Version = "dev"
)

var (
	jsonOutput  bool
	logLevel    string
	maxCommands int
)

var rootCmd = &cobra.Command{
	Use:   "hostprobe",
	Short: "HostProbe - point-in-time host telemetry",
	Long: `HostProbe reports CPU load, memory usage, uptime, the process table and
service state of the current host. Every command queries the host once.

Use "hostprobe [command] --help" for more information about a command.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().IntVar(&maxCommands, "max-commands", 0, "Maximum concurrent external commands (overrides HOSTPROBE_MAX_COMMANDS)")

	rootCmd.AddCommand(platformCmd)
	rootCmd.AddCommand(uptimeCmd)
	rootCmd.AddCommand(cpuCmd)
	rootCmd.AddCommand(memCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dashCmd)
}

// newCollector loads configuration, applies flag overrides and wires the
// collector with an exec backed runner.
func newCollector() (*collector.StatsCollector, *zap.Logger, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if maxCommands > 0 {
		cfg.MaxCommands = maxCommands
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	runner := command.NewExecRunner(log.Named("command"), cfg.MaxCommands)
	c := collector.NewStatsCollector(log.Named("collector"), runner,
		collector.WithSampleInterval(cfg.SampleInterval))

	return c, log, nil
}

// printResult writes v as indented JSON with --json, otherwise calls text.
func printResult(w io.Writer, v any, text func(io.Writer)) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
