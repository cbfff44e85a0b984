// Package results models and renders computed Leq periods.
package results

import (
	"time"

	"github.com/thicknavyrain/brockwell-park-noise/internal/leq"
)

// timestampLayout is the presentation format for block boundaries.
const timestampLayout = "2006-01-02 15:04:05"

// Result is one aggregated Leq period, derived 1:1 from a block.
type Result struct {
	ID      uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Start   time.Time `gorm:"index"` // Index on the 'Start' field
	End     time.Time
	Seconds int     // number of 1-second samples folded into the block
	Leq     float64 // energy-averaged level, rounded to 2 decimal places
	Unit    string
	Source  string // originating log file
}

// FromBlock reduces one completed block to its Result record.
func FromBlock(b *leq.Block, source string) Result {
	return Result{
		Start:   b.Start,
		End:     b.End,
		Seconds: b.Seconds(),
		Leq:     leq.RoundToDecimalPlaces(leq.Leq(b.Levels), 2),
		Unit:    b.Unit,
		Source:  source,
	}
}

// FullPeriod reports whether the result covers a complete aggregation window.
func (r *Result) FullPeriod() bool {
	return r.Seconds == leq.SecondsPerBlock
}
