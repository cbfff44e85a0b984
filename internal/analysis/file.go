package analysis

import (
	"os"

	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
	"github.com/thicknavyrain/brockwell-park-noise/internal/errors"
)

// FileAnalysis conducts an analysis of a single logger file and outputs the
// results. The file runs through the same pipeline as a directory source.
func FileAnalysis(settings *conf.Settings) error {
	if err := validateSourceFile(settings.Input.Path); err != nil {
		return err
	}
	return runPipeline(settings, []string{settings.Input.Path})
}

// validateSourceFile checks that the provided path points at a regular file.
func validateSourceFile(path string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	if fileInfo.IsDir() {
		return errors.Newf("the path %s is a directory, not a file", path).
			Component("analysis").
			Category(errors.CategoryValidation).
			Context("path", path).
			Build()
	}

	return nil
}
