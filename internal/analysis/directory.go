package analysis

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
	"github.com/thicknavyrain/brockwell-park-noise/internal/errors"
)

// DirectoryAnalysis processes every file in the target directory as one
// independent logger source. Results from all sources are merged, sorted by
// period start and written out together.
func DirectoryAnalysis(settings *conf.Settings) error {
	info, err := os.Stat(settings.Input.Path)
	if err != nil || !info.IsDir() {
		return errors.Newf("provided path '%s' is not a directory", settings.Input.Path).
			Component("analysis").
			Category(errors.CategoryValidation).
			Context("path", settings.Input.Path).
			Build()
	}

	sources, err := collectSources(settings.Input.Path, settings.Input.Recursive)
	if err != nil {
		return errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			Context("path", settings.Input.Path).
			Build()
	}

	return runPipeline(settings, sources)
}

// collectSources enumerates the candidate source files of a directory.
// os.ReadDir returns entries sorted by filename, so results with equal start
// times come out in filename order.
func collectSources(root string, recursive bool) ([]string, error) {
	var sources []string

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				sources = append(sources, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return sources, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			sources = append(sources, filepath.Join(root, entry.Name()))
		}
	}
	return sources, nil
}
