// defaults.go: default values for each configuration parameter.
package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for each configuration parameter.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Main settings
	viper.SetDefault("main.name", "parknoise")
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "logs/parknoise.log")

	// Analysis settings
	viper.SetDefault("analysis.includeshort", false)

	// Output settings
	viper.SetDefault("output.file.enabled", false)
	viper.SetDefault("output.file.path", "")
	viper.SetDefault("output.file.type", "table")
	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "parknoise.db")
}
