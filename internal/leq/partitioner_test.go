package leq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thicknavyrain/brockwell-park-noise/internal/slmlog"
)

var t0 = time.Date(2025, 5, 25, 20, 20, 34, 0, time.UTC)

// feed pushes n consecutive 1-second samples starting at start and returns
// all completed blocks.
func feed(p *Partitioner, start time.Time, n int, level float64, unit string) []Block {
	var blocks []Block
	for i := 0; i < n; i++ {
		s := slmlog.Sample{Timestamp: start.Add(time.Duration(i) * time.Second), Level: level, Unit: unit}
		if b, ok := p.Add(s); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func TestPartitionerAnchorsToFirstSample(t *testing.T) {
	p := NewPartitioner()

	blocks := feed(p, t0, SecondsPerBlock, 60, "dBA")
	require.Empty(t, blocks, "the first window completes only when a later sample crosses its end")

	final, ok := p.Flush()
	require.True(t, ok)
	assert.Equal(t, t0, final.Start)
	assert.Equal(t, t0.Add(SecondsPerBlock*time.Second), final.End)
	assert.Equal(t, SecondsPerBlock, final.Seconds())
	assert.Equal(t, "dBA", final.Unit)
}

func TestPartitionerSequentialWindows(t *testing.T) {
	p := NewPartitioner()

	blocks := feed(p, t0, 2*SecondsPerBlock+10, 60, "dBA")
	require.Len(t, blocks, 2)

	assert.Equal(t, t0, blocks[0].Start)
	assert.Equal(t, t0.Add(SecondsPerBlock*time.Second), blocks[0].End)
	assert.Equal(t, blocks[0].End, blocks[1].Start, "consecutive blocks must be contiguous")
	assert.Equal(t, SecondsPerBlock, blocks[0].Seconds())
	assert.Equal(t, SecondsPerBlock, blocks[1].Seconds())

	final, ok := p.Flush()
	require.True(t, ok)
	assert.Equal(t, blocks[1].End, final.Start)
	assert.Equal(t, 10, final.Seconds())
	assert.Equal(t, final.Start.Add(10*time.Second), final.End, "trailing block duration reflects the sample count")
}

func TestPartitionerBoundarySampleGoesToNextWindow(t *testing.T) {
	p := NewPartitioner()

	_, ok := p.Add(slmlog.Sample{Timestamp: t0, Level: 50, Unit: "dBA"})
	assert.False(t, ok)

	// Exactly at the window end: closes the first window, lands in the next.
	boundary := t0.Add(SecondsPerBlock * time.Second)
	b, ok := p.Add(slmlog.Sample{Timestamp: boundary, Level: 70, Unit: "dBA"})
	require.True(t, ok)
	assert.Equal(t, 1, b.Seconds())
	assert.Equal(t, []float64{50}, b.Levels)

	final, ok := p.Flush()
	require.True(t, ok)
	assert.Equal(t, boundary, final.Start)
	assert.Equal(t, []float64{70}, final.Levels)
}

func TestPartitionerGapEmitsNoEmptyBlocks(t *testing.T) {
	p := NewPartitioner()

	_, ok := p.Add(slmlog.Sample{Timestamp: t0, Level: 55, Unit: "dBA"})
	require.False(t, ok)

	// Two hours later; the gap spans several whole windows.
	b, ok := p.Add(slmlog.Sample{Timestamp: t0.Add(2 * time.Hour), Level: 65, Unit: "dBA"})
	require.True(t, ok, "the partial pre-gap window holds one level and is emitted")
	assert.Equal(t, 1, b.Seconds())

	final, ok := p.Flush()
	require.True(t, ok)
	assert.Equal(t, 1, final.Seconds())

	// The post-gap window starts on the anchored grid, not at the sample.
	gridStart := t0.Add(8 * SecondsPerBlock * time.Second)
	assert.Equal(t, gridStart, final.Start)
}

func TestPartitionerConcatenationReproducesInput(t *testing.T) {
	p := NewPartitioner()

	var want []float64
	var got []float64
	for i := 0; i < 2500; i++ {
		level := float64(40 + i%30)
		want = append(want, level)
		s := slmlog.Sample{Timestamp: t0.Add(time.Duration(i) * time.Second), Level: level, Unit: "dBA"}
		if b, ok := p.Add(s); ok {
			assert.Equal(t, SecondsPerBlock, b.Seconds(), "every non-final block is full")
			got = append(got, b.Levels...)
		}
	}
	if b, ok := p.Flush(); ok {
		got = append(got, b.Levels...)
	}

	assert.Equal(t, want, got, "concatenated block levels must reproduce the input sequence")
}

func TestPartitionerFlushEmpty(t *testing.T) {
	p := NewPartitioner()
	_, ok := p.Flush()
	assert.False(t, ok, "flushing an unused partitioner yields nothing")
}

func TestPartitionerUnitPinnedFromFirstSample(t *testing.T) {
	p := NewPartitioner()
	feed(p, t0, 3, 60, "dBC")

	final, ok := p.Flush()
	require.True(t, ok)
	assert.Equal(t, "dBC", final.Unit)
}
