package stats

// StringStats accumulates lexicographic min/max and distinct-value
// cardinality over string observations.
type StringStats struct {
	count      uint64
	emptyCount uint64
	errorCount uint64
	min, max   string
	distinct   Counter
}

// NewStringStats returns an empty accumulator counting distinct values as
// configured by o.
func NewStringStats(o CardinalityOptions) *StringStats {
	return &StringStats{distinct: NewCounter(o)}
}

// Add records a non-empty string.
func (s *StringStats) Add(v string) {
	s.count++
	if s.count == 1 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.distinct.Insert(v)
}

func (s *StringStats) AddEmpty() { s.emptyCount++ }
func (s *StringStats) AddError() { s.errorCount++ }

func (s *StringStats) Count() uint64      { return s.count }
func (s *StringStats) EmptyCount() uint64 { return s.emptyCount }
func (s *StringStats) ErrorCount() uint64 { return s.errorCount }

// Min reports the lexicographically smallest value seen.
func (s *StringStats) Min() (string, bool) { return s.min, s.count > 0 }

// Max reports the lexicographically largest value seen.
func (s *StringStats) Max() (string, bool) { return s.max, s.count > 0 }

// Cardinality returns the distinct count, which is a lower bound once
// IsCardinalityCapped reports true.
func (s *StringStats) Cardinality() uint64 { return s.distinct.Estimate() }

func (s *StringStats) IsCardinalityCapped() bool { return s.distinct.Capped() }

// CardinalityEnabled is false when the exact counter was configured with cap 0.
func (s *StringStats) CardinalityEnabled() bool { return s.distinct.Enabled() }
