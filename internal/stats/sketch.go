package stats

import (
	"github.com/axiomhq/hyperloglog"
	"github.com/cespare/xxhash"
)

const (
	minSketchPrecision = 4
	maxSketchPrecision = 16
)

// Sketch is a HyperLogLog++ distinct counter with 2^p registers. It starts in
// sparse mode, so small cardinalities are close to exact. Relative standard
// error is about 1.04/sqrt(2^p).
type Sketch struct {
	hll *hyperloglog.Sketch
}

// NewSketch returns a sketch with precision p; out of range values use
// DefaultSketchPrecision.
func NewSketch(p uint8) *Sketch {
	if p < minSketchPrecision || p > maxSketchPrecision {
		p = DefaultSketchPrecision
	}
	hll, err := hyperloglog.NewSketch(p, true)
	if err != nil {
		hll = hyperloglog.New14()
	}
	return &Sketch{hll: hll}
}

func (s *Sketch) Insert(v string) { s.hll.InsertHash(xxhash.Sum64String(v)) }

func (s *Sketch) Estimate() uint64 { return s.hll.Estimate() }

func (s *Sketch) Capped() bool  { return false }
func (s *Sketch) Enabled() bool { return true }
