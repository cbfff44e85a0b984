package directory

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thicknavyrain/brockwell-park-noise/internal/analysis"
	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
)

// Command creates the directory analysis command, which processes every
// sound level log in a directory as an independent logger source.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory [path]",
		Short: "Analyze all sound level logs in a directory",
		Long:  "Process every file in the given directory as a separate logger source and print the merged sequence of 15-minute Leq periods.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			return analysis.DirectoryAnalysis(settings)
		},
	}

	// Set up flags specific to the directory command
	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures the flags specific to the directory command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVarP(&settings.Input.Recursive, "recursive", "r", false, "Recursively analyze subdirectories")
	cmd.Flags().BoolVar(&settings.Analysis.IncludeShort, "include-short-periods", viper.GetBool("analysis.includeshort"), "Include measurement periods shorter than 15 minutes")
	cmd.Flags().StringVarP(&settings.Output.File.Path, "output", "o", viper.GetString("output.file.path"), "Directory to write results to instead of stdout")
	cmd.Flags().StringVarP(&settings.Output.File.Type, "format", "f", viper.GetString("output.file.type"), "Output format: table, csv")

	conf.BindFlags(cmd, map[string]string{
		"analysis.includeshort": "include-short-periods",
		"output.file.path":      "output",
		"output.file.type":      "format",
	})
}
