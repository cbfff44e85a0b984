package file

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thicknavyrain/brockwell-park-noise/internal/analysis"
	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
)

// Command creates the file command for analyzing a single sound level log.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file [input.txt]",
		Short: "Analyze a single sound level log",
		Long:  `Compute the sequence of 15-minute Leq periods from a single sound level meter log file.`,
		Args:  cobra.ExactArgs(1), // the command expects exactly one argument
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			return analysis.FileAnalysis(settings)
		},
	}

	// Set up flags specific to the 'file' command
	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures the flags specific to the file command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVar(&settings.Analysis.IncludeShort, "include-short-periods", viper.GetBool("analysis.includeshort"), "Include measurement periods shorter than 15 minutes")
	cmd.Flags().StringVarP(&settings.Output.File.Path, "output", "o", viper.GetString("output.file.path"), "Directory to write results to instead of stdout")
	cmd.Flags().StringVarP(&settings.Output.File.Type, "format", "f", viper.GetString("output.file.type"), "Output format: table, csv")

	conf.BindFlags(cmd, map[string]string{
		"analysis.includeshort": "include-short-periods",
		"output.file.path":      "output",
		"output.file.type":      "format",
	})
}
