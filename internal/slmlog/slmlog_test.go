package slmlog

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thicknavyrain/brockwell-park-noise/internal/errors"
)

const testHeader = "STANDARD Sound Level Meter DATA LOGGER SamplingRate:1.0;\n"

func collect(t *testing.T, input string) []Sample {
	t.Helper()
	var samples []Sample
	err := readSamples("test.txt", strings.NewReader(input), func(s Sample) error {
		samples = append(samples, s)
		return nil
	})
	require.NoError(t, err)
	return samples
}

func TestReadSamplesBasic(t *testing.T) {
	input := testHeader +
		"25-05-2025,20:20:34, 52.30, dBA\n" +
		"25-05-2025,20:20:35, 53.10, dBA\n"

	samples := collect(t, input)
	require.Len(t, samples, 2)

	want := time.Date(2025, 5, 25, 20, 20, 34, 0, time.UTC)
	assert.Equal(t, want, samples[0].Timestamp)
	assert.InDelta(t, 52.30, samples[0].Level, 0.0001)
	assert.Equal(t, "dBA", samples[0].Unit)
	assert.Equal(t, want.Add(time.Second), samples[1].Timestamp)
}

func TestReadSamplesMissingHeaderTolerated(t *testing.T) {
	input := "25-05-2025,20:20:34, 52.30, dBA\n"

	samples := collect(t, input)
	require.Len(t, samples, 1)
	assert.Equal(t, "dBA", samples[0].Unit)
}

func TestReadSamplesSkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "short row", row: "25-05-2025,20:20:35\n"},
		{name: "bad date", row: "2025-05-25,20:20:35, 50.00, dBA\n"},
		{name: "bad time", row: "25-05-2025,20:xx:35, 50.00, dBA\n"},
		{name: "bad level", row: "25-05-2025,20:20:35, loud, dBA\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testHeader +
				"25-05-2025,20:20:34, 52.30, dBA\n" +
				tt.row +
				"25-05-2025,20:20:36, 54.00, dBA\n"

			samples := collect(t, input)
			require.Len(t, samples, 2, "the malformed row should be the only one skipped")
			assert.InDelta(t, 52.30, samples[0].Level, 0.0001)
			assert.InDelta(t, 54.00, samples[1].Level, 0.0001)
		})
	}
}

func TestReadSamplesBlankLinesIgnored(t *testing.T) {
	input := testHeader +
		"25-05-2025,20:20:34, 52.30, dBA\n" +
		"\n" +
		"   \n" +
		"25-05-2025,20:20:36, 54.00, dBA\n"

	samples := collect(t, input)
	assert.Len(t, samples, 2)
}

func TestReadSamplesUnitPinning(t *testing.T) {
	input := testHeader +
		"25-05-2025,20:20:34, 52.30, dBA\n" +
		"25-05-2025,20:20:35, 80.00, dBC\n" +
		"25-05-2025,20:20:36, 54.00, dBA\n"

	samples := collect(t, input)
	require.Len(t, samples, 2, "the dBC row should be skipped")
	for _, s := range samples {
		assert.Equal(t, "dBA", s.Unit)
	}
}

func TestReadSamplesEmptySource(t *testing.T) {
	for _, input := range []string{"", testHeader} {
		samples := collect(t, input)
		assert.Empty(t, samples)
	}
}

func TestReadSamplesOpenFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	err := ReadSamples(missing, func(Sample) error {
		t.Fatal("handler should not be called for an unreadable source")
		return nil
	})
	require.Error(t, err)

	var ee *errors.EnhancedError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, errors.CategoryFileIO, ee.Category)
	assert.Equal(t, "slmlog", ee.Component)
}

func TestReadSamplesHandlerErrorStopsStream(t *testing.T) {
	input := testHeader +
		"25-05-2025,20:20:34, 52.30, dBA\n" +
		"25-05-2025,20:20:35, 53.00, dBA\n"

	sentinel := fmt.Errorf("stop")
	calls := 0
	err := readSamples("test.txt", strings.NewReader(input), func(Sample) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestReadSamplesLevelExtremes(t *testing.T) {
	input := testHeader +
		"25-05-2025,20:20:34, -inf, dBA\n" +
		"25-05-2025,20:20:35, 1e308, dBA\n"

	samples := collect(t, input)
	require.Len(t, samples, 2)
	assert.True(t, math.IsInf(samples[0].Level, -1), "-inf should parse")
	assert.InDelta(t, 1e308, samples[1].Level, 1e294)
}
