// flags.go: helpers for binding cobra command flags to viper.
package conf

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BindFlags binds a command's flags to their viper configuration keys so
// that command line arguments override config file values. The keys map
// associates viper keys with flag names; flags without a config key are
// left unbound and only update the settings struct directly.
func BindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			fmt.Fprintf(os.Stderr, "Error binding flags: no flag named %q\n", name)
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding flag %q: %v\n", name, err)
		}
	}
}

// SyncViper copies viper's current values back into the settings struct to
// ensure command-line arguments take precedence over the config file.
func SyncViper(settings *Settings) {
	if err := viper.Unmarshal(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error syncing flags to settings: %v\n", err)
	}
}
