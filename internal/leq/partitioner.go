package leq

import (
	"time"

	"github.com/thicknavyrain/brockwell-park-noise/internal/slmlog"
)

// Block is one aggregation window of collected levels from a single source.
// Levels keeps arrival order; all levels in a block share one unit.
type Block struct {
	Start  time.Time
	End    time.Time
	Levels []float64
	Unit   string
}

// Seconds returns the number of 1-second samples collected into the block.
func (b *Block) Seconds() int {
	return len(b.Levels)
}

// Partitioner groups a stream of samples from one source into sequential
// fixed-length blocks. The first sample anchors the window grid; windows are
// not aligned to wall-clock quarter hours. A sample with a timestamp exactly
// at a window's end belongs to the next window, the interval is [start, end).
//
// Samples are assumed to arrive in non-decreasing timestamp order; no
// resorting happens here. The zero value is not usable, call NewPartitioner.
type Partitioner struct {
	window  time.Duration
	start   time.Time
	end     time.Time
	levels  []float64
	unit    string
	started bool
}

// NewPartitioner returns a partitioner with the fixed 900 s window.
func NewPartitioner() *Partitioner {
	return &Partitioner{window: SecondsPerBlock * time.Second}
}

// Add feeds one sample to the partitioner. When the sample's timestamp falls
// past the current window, the window is closed and returned as a completed
// block; windows that collected no levels are advanced over silently, so a
// gap in the input larger than one window never produces empty blocks.
func (p *Partitioner) Add(s slmlog.Sample) (Block, bool) {
	if !p.started {
		p.start = s.Timestamp
		p.end = p.start.Add(p.window)
		p.unit = s.Unit
		p.started = true
	}

	var completed Block
	emitted := false
	for !s.Timestamp.Before(p.end) {
		if len(p.levels) > 0 {
			completed = Block{Start: p.start, End: p.end, Levels: p.levels, Unit: p.unit}
			emitted = true
		}
		p.start = p.end
		p.end = p.start.Add(p.window)
		p.levels = nil
	}

	p.levels = append(p.levels, s.Level)
	return completed, emitted
}

// Flush closes the stream and returns the trailing partial block, if any.
// The trailing block's end reflects the actual sample count rather than a
// full window, since the source simply ended mid-window.
func (p *Partitioner) Flush() (Block, bool) {
	if !p.started || len(p.levels) == 0 {
		return Block{}, false
	}

	b := Block{
		Start:  p.start,
		End:    p.start.Add(time.Duration(len(p.levels)) * time.Second),
		Levels: p.levels,
		Unit:   p.unit,
	}
	p.levels = nil
	return b, true
}
