package stats

import "math"

// NumberStats accumulates running statistics over numeric observations.
// Mean and variance use Welford's single-pass update; Sum is a plain
// running total.
type NumberStats struct {
	count      uint64
	emptyCount uint64
	errorCount uint64

	sum  float64
	mean float64
	m2   float64
	min  float64
	max  float64
}

// NewNumberStats returns an empty accumulator.
func NewNumberStats() *NumberStats {
	return &NumberStats{}
}

// Add records a numeric observation.
func (s *NumberStats) Add(x float64) {
	s.count++
	if s.count == 1 {
		s.min, s.max = x, x
	} else {
		if x < s.min {
			s.min = x
		}
		if x > s.max {
			s.max = x
		}
	}
	s.sum += x
	delta := x - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (x - s.mean)
}

// AddEmpty records a missing value.
func (s *NumberStats) AddEmpty() { s.emptyCount++ }

// AddError records a value that failed to parse.
func (s *NumberStats) AddError() { s.errorCount++ }

// Observe dispatches a classified field to Add, AddEmpty or AddError.
func (s *NumberStats) Observe(o Observation) {
	switch o.Kind {
	case Numeric:
		s.Add(o.Value)
	case Empty:
		s.AddEmpty()
	default:
		s.AddError()
	}
}

func (s *NumberStats) Count() uint64      { return s.count }
func (s *NumberStats) EmptyCount() uint64 { return s.emptyCount }
func (s *NumberStats) ErrorCount() uint64 { return s.errorCount }
func (s *NumberStats) Sum() float64       { return s.sum }

// Min reports the smallest observation; ok is false until one was added.
func (s *NumberStats) Min() (float64, bool) { return s.min, s.count > 0 }

// Max reports the largest observation; ok is false until one was added.
func (s *NumberStats) Max() (float64, bool) { return s.max, s.count > 0 }

// Mean returns the running mean, 0 when empty.
func (s *NumberStats) Mean() float64 { return s.mean }

// Variance returns the population variance, 0 when empty.
func (s *NumberStats) Variance() float64 {
	if s.count < 1 {
		return 0
	}
	return s.m2 / float64(s.count)
}

// StdDev returns the population standard deviation, 0 when empty.
func (s *NumberStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}
