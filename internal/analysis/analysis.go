// Package analysis drives the sample-to-block Leq pipeline per input source
// and merges results across sources.
package analysis

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
	"github.com/thicknavyrain/brockwell-park-noise/internal/datastore"
	"github.com/thicknavyrain/brockwell-park-noise/internal/errors"
	"github.com/thicknavyrain/brockwell-park-noise/internal/leq"
	"github.com/thicknavyrain/brockwell-park-noise/internal/logging"
	"github.com/thicknavyrain/brockwell-park-noise/internal/observability"
	"github.com/thicknavyrain/brockwell-park-noise/internal/results"
	"github.com/thicknavyrain/brockwell-park-noise/internal/slmlog"
)

// Package-level logger, initialized on first use
var (
	logger     *slog.Logger
	loggerOnce sync.Once
)

func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = logging.ForService("analysis")
		if logger == nil {
			logger = slog.Default().With("service", "analysis")
		}
	})
	return logger
}

// computeForSource runs Parser → Partitioner → Aggregator for one source.
// Row-level problems are recovered inside the parser; a source that cannot
// be read contributes whatever was parsed before the failure and never fails
// the run.
func computeForSource(path string, m *observability.Metrics) []results.Result {
	partitioner := leq.NewPartitioner()
	var out []results.Result

	appendBlock := func(b *leq.Block) {
		if m != nil {
			m.Ingest.RecordBlockEmitted()
			m.Ingest.RecordResultProduced()
		}
		out = append(out, results.FromBlock(b, path))
	}

	err := slmlog.ReadSamples(path, func(s slmlog.Sample) error {
		if b, ok := partitioner.Add(s); ok {
			appendBlock(&b)
		}
		return nil
	})
	if err != nil {
		attrs := []any{"source", path, "error", err}
		var ee *errors.EnhancedError
		if errors.As(err, &ee) {
			attrs = append(attrs, ee.LogAttrs()...)
		}
		getLogger().Warn("Error processing source", attrs...)
		if m != nil {
			m.Ingest.RecordSourceFailed()
		}
	} else if m != nil {
		m.Ingest.RecordSourceProcessed()
	}

	if b, ok := partitioner.Flush(); ok {
		appendBlock(&b)
	}
	return out
}

// runPipeline processes the sources in order, merges and sorts the results
// and writes the filtered output.
func runPipeline(settings *conf.Settings, sources []string) error {
	m, err := observability.NewMetrics()
	if err != nil {
		getLogger().Warn("Metrics unavailable for this run", "error", err)
		m = nil
	}
	if m != nil {
		slmlog.SetMetrics(m.Ingest)
	} else {
		slmlog.SetMetrics(nil)
	}

	var all []results.Result
	for _, src := range sources {
		all = append(all, computeForSource(src, m)...)
	}

	if len(all) == 0 {
		getLogger().Warn("No results generated. Check input files and folder.")
		return nil
	}

	// Cross-source merge. The sort is stable, so results with equal start
	// times keep source enumeration order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})

	toPrint := all
	if !settings.Analysis.IncludeShort {
		toPrint = make([]results.Result, 0, len(all))
		for i := range all {
			if all[i].FullPeriod() {
				toPrint = append(toPrint, all[i])
			}
		}
	}

	if len(toPrint) == 0 {
		getLogger().Warn("No full 15-minute periods found. To include shorter periods, use the --include-short-periods flag.")
		return nil
	}

	if err := writeResults(settings, toPrint); err != nil {
		return err
	}

	saveResults(settings, toPrint)

	if settings.Debug && m != nil {
		m.LogSummary(getLogger())
	}
	return nil
}

// writeResults writes the results based on the configured output format.
func writeResults(settings *conf.Settings, rs []results.Result) error {
	var outputFile string
	if settings.Output.File.Path != "" {
		outputFile = filepath.Join(settings.Output.File.Path, "leq_periods")
	}

	// If the output type is not specified or set to "table", output as a table.
	if settings.Output.File.Type == "" || settings.Output.File.Type == "table" {
		if err := results.WriteTable(settings, rs, outputFile); err != nil {
			return fmt.Errorf("failed to write results table: %w", err)
		}
	}
	// If the output type is set to "csv", output as CSV.
	if settings.Output.File.Type == "csv" {
		if err := results.WriteCsv(settings, rs, outputFile); err != nil {
			return fmt.Errorf("failed to write results CSV: %w", err)
		}
	}
	return nil
}

// saveResults persists the results when a store is configured. Store
// failures are diagnostics, never fatal to the run.
func saveResults(settings *conf.Settings, rs []results.Result) {
	store := datastore.New(settings)
	if store == nil {
		return
	}
	if err := store.Open(); err != nil {
		getLogger().Warn("Failed to open results store", "error", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			getLogger().Warn("Failed to close results store", "error", err)
		}
	}()

	if err := store.Save(rs); err != nil {
		getLogger().Warn("Failed to save results", "error", err)
	}
}
