package stats

import (
	"fmt"
	"strings"
)

// Strategy selects how distinct values are counted.
type Strategy string

const (
	// StrategyExact keeps a set of seen values up to a cap.
	StrategyExact Strategy = "exact"
	// StrategySketch uses a fixed-size HyperLogLog sketch.
	StrategySketch Strategy = "sketch"
)

const (
	DefaultCardinalityCap  = 10000
	DefaultSketchPrecision = 14
)

// ParseStrategy accepts "exact" or "sketch" (case-insensitive).
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyExact, "":
		return StrategyExact, nil
	case StrategySketch, "hll", "hyperloglog":
		return StrategySketch, nil
	default:
		return "", fmt.Errorf("unknown cardinality strategy %q (use exact|sketch)", s)
	}
}

// CardinalityOptions configures the distinct-value counter of every string
// accumulator created in a run.
type CardinalityOptions struct {
	Strategy Strategy
	// Cap bounds the exact set. 0 disables tracking.
	Cap int
	// Precision is the sketch register exponent, between 4 and 16.
	Precision uint8
}

// DefaultCardinalityOptions returns an exact counter capped at 10000 values.
func DefaultCardinalityOptions() CardinalityOptions {
	return CardinalityOptions{
		Strategy:  StrategyExact,
		Cap:       DefaultCardinalityCap,
		Precision: DefaultSketchPrecision,
	}
}

// Validate reports option values no counter can be built from.
func (o CardinalityOptions) Validate() error {
	switch o.Strategy {
	case StrategyExact:
		if o.Cap < 0 {
			return fmt.Errorf("cardinality cap must be >= 0, got %d", o.Cap)
		}
	case StrategySketch:
		if o.Precision < minSketchPrecision || o.Precision > maxSketchPrecision {
			return fmt.Errorf("sketch precision must be in [%d,%d], got %d", minSketchPrecision, maxSketchPrecision, o.Precision)
		}
	default:
		return fmt.Errorf("unknown cardinality strategy %q", o.Strategy)
	}
	return nil
}

// Counter tracks the number of distinct strings inserted.
type Counter interface {
	Insert(v string)
	Estimate() uint64
	// Capped reports that the counter stopped tracking new values.
	Capped() bool
	// Enabled is false when tracking is switched off altogether.
	Enabled() bool
}

// NewCounter builds the counter selected by o. Invalid options fall back to
// the defaults of the chosen strategy.
func NewCounter(o CardinalityOptions) Counter {
	if o.Strategy == StrategySketch {
		return NewSketch(o.Precision)
	}
	c := o.Cap
	if c < 0 {
		c = DefaultCardinalityCap
	}
	return NewExactCounter(c)
}

// ExactCounter counts distinct values exactly until more than cap of them
// were seen. From then on it is capped and ignores unseen values.
type ExactCounter struct {
	cap    int
	capped bool
	seen   map[string]struct{}
}

// NewExactCounter returns a counter bounded by cap; cap 0 disables it.
func NewExactCounter(cap int) *ExactCounter {
	c := &ExactCounter{cap: cap}
	if cap > 0 {
		c.seen = make(map[string]struct{})
	}
	return c
}

func (c *ExactCounter) Insert(v string) {
	if c.cap == 0 || c.capped {
		return
	}
	c.seen[v] = struct{}{}
	if len(c.seen) > c.cap {
		c.capped = true
	}
}

func (c *ExactCounter) Estimate() uint64 { return uint64(len(c.seen)) }
func (c *ExactCounter) Capped() bool     { return c.capped }
func (c *ExactCounter) Enabled() bool    { return c.cap > 0 }
