// validate.go: validation of loaded settings.
package conf

import (
	"github.com/thicknavyrain/brockwell-park-noise/internal/errors"
)

// ValidateSettings checks the loaded settings for invalid combinations.
func ValidateSettings(settings *Settings) error {
	switch settings.Output.File.Type {
	case "", "table", "csv":
		// valid
	default:
		return errors.Newf("invalid output type '%s', expected 'table' or 'csv'", settings.Output.File.Type).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("output_type", settings.Output.File.Type).
			Build()
	}

	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		return errors.Newf("sqlite output enabled but no database path configured").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if settings.Main.Log.Enabled && settings.Main.Log.Path == "" {
		return errors.Newf("log file enabled but no log path configured").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return nil
}
