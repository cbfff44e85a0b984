package results

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
)

// WriteTable writes the results to the specified destination in human-readable
// form, one line per period:
//
//	2025-05-25 20:20:34 – 2025-05-25 20:35:34  ( 900 s)  Leq =  60.00 dBA
//
// If filename is an empty string, the function writes to stdout.
func WriteTable(settings *conf.Settings, results []Result, filename string) error {
	var w io.Writer

	if filename == "" {
		w = os.Stdout
	} else {
		// Ensure the filename has a .txt extension.
		if !strings.HasSuffix(filename, ".txt") {
			filename += ".txt"
		}
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create file %s: %w", filename, err)
		}
		defer file.Close()
		w = file
	}

	var err error
	for i := range results {
		r := &results[i]
		line := fmt.Sprintf("%s – %s  (%4d s)  Leq = %6.2f %s\n",
			r.Start.Format(timestampLayout), r.End.Format(timestampLayout), r.Seconds, r.Leq, r.Unit)
		if _, err = w.Write([]byte(line)); err != nil {
			break
		}
	}

	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	} else if filename != "" {
		fmt.Fprintln(os.Stderr, "Output written to", filename)
	}

	return nil
}

// WriteCsv writes the results to the specified destination in CSV format,
// fields start,end,seconds,Leq_value,unit in that fixed column order with no
// header row. If filename is an empty string, the function writes to stdout.
func WriteCsv(settings *conf.Settings, results []Result, filename string) error {
	var w io.Writer

	if filename == "" {
		w = os.Stdout
	} else {
		// Ensure the filename has a .csv extension.
		if !strings.HasSuffix(filename, ".csv") {
			filename += ".csv"
		}
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create file %s: %w", filename, err)
		}
		defer file.Close()
		w = file
	}

	var err error
	for i := range results {
		r := &results[i]
		line := fmt.Sprintf("%s,%s,%d,%.2f,%s\n",
			r.Start.Format(timestampLayout), r.End.Format(timestampLayout), r.Seconds, r.Leq, r.Unit)
		if _, err = w.Write([]byte(line)); err != nil {
			break
		}
	}

	if err != nil {
		return fmt.Errorf("failed to write result to CSV: %w", err)
	} else if filename != "" {
		fmt.Fprintln(os.Stderr, "Output written to", filename)
	}

	return nil
}
