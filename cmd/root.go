package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thicknavyrain/brockwell-park-noise/cmd/directory"
	"github.com/thicknavyrain/brockwell-park-noise/cmd/file"
	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
	"github.com/thicknavyrain/brockwell-park-noise/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "parknoise",
		Short: "Parknoise calculates sequential 15-minute Leq values from sound level meter logs",
		// Errors and usage are reported by the caller, not by cobra itself,
		// so stdout stays reserved for results.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up the global flags for the root command
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command
	subcommands := []*cobra.Command{
		directory.Command(settings),
		file.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Sync viper values back into the settings struct so that
		// command line arguments take precedence over the config file.
		conf.SyncViper(settings)

		// Re-validate so that invalid flag values are rejected the same
		// way as invalid config file values.
		if err := conf.ValidateSettings(settings); err != nil {
			return err
		}

		if settings.Debug {
			logging.SetLevel(slog.LevelDebug)
		}

		if settings.Main.Log.Enabled {
			openRunLog(settings)
		}
		logRunStart(cmd, args)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closeRunLog()
	}

	return rootCmd
}

// setupFlags defines the global flags for the command line interface.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		logging.Error("Error binding flags", "error", err)
	}
}

// runLog is an optional structured log file recording each invocation,
// opened when main.log.enabled is set in the config.
var (
	runLog      *slog.Logger
	closeRunLog = func() {}
)

func openRunLog(settings *conf.Settings) {
	logger, closer, err := logging.NewFileLogger(settings.Main.Log.Path, settings.Main.Name, slog.LevelInfo)
	if err != nil {
		logging.Warn("Failed to open log file, continuing without it",
			"path", settings.Main.Log.Path, "error", err)
		return
	}
	runLog = logger
	closeRunLog = func() {
		if err := closer(); err != nil {
			logging.Warn("Error closing log file", "error", err)
		}
	}
}

func logRunStart(cmd *cobra.Command, args []string) {
	if runLog == nil {
		return
	}
	runLog.Info("run started", "command", cmd.Name(), "args", args)
}
