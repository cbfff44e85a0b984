// Package slmlog parses sound level meter data logger files.
//
// A logger file is comma-delimited, optionally starts with a header line
// containing the marker token, and carries one 1-second reading per data
// line:
//
//	STANDARD Sound Level Meter DATA LOGGER SamplingRate:1.0;
//	25-05-2025,20:20:34, 52.30, dBA
//
// The unit of the first valid data line is pinned for the whole file; a file
// may not mix dBA and dBC readings.
package slmlog

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/thicknavyrain/brockwell-park-noise/internal/errors"
	"github.com/thicknavyrain/brockwell-park-noise/internal/logging"
	"github.com/thicknavyrain/brockwell-park-noise/internal/observability/metrics"
)

const (
	// headerMarker identifies the logger's header line.
	headerMarker = "STANDARD"

	// timestampLayout matches the logger's DD-MM-YYYY,HH:MM:SS format.
	timestampLayout = "02-01-2006,15:04:05"

	// minFields is date, time, level and unit.
	minFields = 4
)

// Sample is one validated 1-second sound level reading.
type Sample struct {
	Timestamp time.Time // second resolution
	Level     float64   // decibels
	Unit      string    // e.g. "dBA", "dBC"
}

// Package-level logger, initialized on first use
var (
	logger     *slog.Logger
	loggerOnce sync.Once
)

func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = logging.ForService("slmlog")
		if logger == nil {
			logger = slog.Default().With("service", "slmlog")
		}
	})
	return logger
}

// Package-level ingest metrics, optional
var ingestMetrics *metrics.IngestMetrics

// SetMetrics wires ingest metrics into the parser. Safe to leave unset;
// parsing then proceeds without recording.
func SetMetrics(m *metrics.IngestMetrics) {
	ingestMetrics = m
}

func recordParsed(unit string) {
	if ingestMetrics != nil {
		ingestMetrics.RecordRowParsed(unit)
	}
}

func recordSkipped(reason string) {
	if ingestMetrics != nil {
		ingestMetrics.RecordRowSkipped(reason)
	}
}

// ReadSamples streams the validated samples of one logger file to handle in
// file order. Malformed rows are skipped with a diagnostic and never abort
// the stream; only failure to open or read the file itself is returned as an
// error, and by then every sample read before the failure has already been
// handed to handle. An error returned by handle stops the stream and is
// returned unchanged.
func ReadSamples(path string, handle func(Sample) error) error {
	fp, err := os.Open(path)
	if err != nil {
		return errors.New(err).
			Component("slmlog").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer fp.Close()

	return readSamples(path, fp, handle)
}

// readSamples is split from ReadSamples so tests can feed in-memory sources.
func readSamples(name string, r io.Reader, handle func(Sample) error) error {
	log := getLogger()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var pinnedUnit string
	pinned := false
	headerSeen := false

	for lineNum := 1; ; lineNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Warn("Skipping unparseable row", "source", name, "line", lineNum, "error", err)
				recordSkipped(metrics.SkipReasonParseError)
				continue
			}
			return errors.New(err).
				Component("slmlog").
				Category(errors.CategoryFileIO).
				Context("source", name).
				Context("line", lineNum).
				Build()
		}

		if !headerSeen && len(row) > 0 && strings.Contains(row[0], headerMarker) {
			headerSeen = true
			continue
		}

		if len(row) < minFields {
			if !blankRow(row) {
				log.Warn("Skipping malformed short row", "source", name, "line", lineNum, "fields", len(row))
				recordSkipped(metrics.SkipReasonShortRow)
			}
			continue
		}

		dateStr := strings.TrimSpace(row[0])
		timeStr := strings.TrimSpace(row[1])
		levelStr := strings.TrimSpace(row[2])
		unit := strings.TrimSpace(row[3])

		ts, err := time.Parse(timestampLayout, dateStr+","+timeStr)
		if err != nil {
			log.Warn("Skipping row with invalid timestamp", "source", name, "line", lineNum, "date", dateStr, "time", timeStr)
			recordSkipped(metrics.SkipReasonBadTimestamp)
			continue
		}

		level, err := strconv.ParseFloat(levelStr, 64)
		if err != nil {
			log.Warn("Skipping row with invalid level", "source", name, "line", lineNum, "level", levelStr)
			recordSkipped(metrics.SkipReasonBadLevel)
			continue
		}

		if !pinned {
			pinnedUnit = unit
			pinned = true
		} else if unit != pinnedUnit {
			log.Warn("Unit mismatch, skipping row", "source", name, "line", lineNum, "expected", pinnedUnit, "got", unit)
			recordSkipped(metrics.SkipReasonUnitMismatch)
			continue
		}

		recordParsed(pinnedUnit)
		if err := handle(Sample{Timestamp: ts, Level: level, Unit: pinnedUnit}); err != nil {
			return err
		}
	}

	if !pinned {
		if headerSeen {
			log.Warn("No valid data lines found after header", "source", name)
		} else {
			log.Warn("No header or valid data lines found", "source", name)
		}
	}

	return nil
}

// blankRow reports whether every field of the row is empty or whitespace.
func blankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
