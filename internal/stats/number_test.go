package stats

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"
)

const tolerance = 1e-9

func TestNumberStatsEmpty(t *testing.T) {
	s := NewNumberStats()
	if s.Count() != 0 || s.EmptyCount() != 0 || s.ErrorCount() != 0 {
		t.Fatalf("expected zero counters")
	}
	if _, ok := s.Min(); ok {
		t.Fatalf("min should be absent")
	}
	if _, ok := s.Max(); ok {
		t.Fatalf("max should be absent")
	}
	if s.Sum() != 0 || s.Mean() != 0 || s.StdDev() != 0 {
		t.Fatalf("sum/mean/stddev should be 0, got %v/%v/%v", s.Sum(), s.Mean(), s.StdDev())
	}
}

func TestNumberStatsOneToFive(t *testing.T) {
	s := NewNumberStats()
	for _, x := range []float64{1, 2, 3, 4, 5} {
		s.Add(x)
	}
	if s.Count() != 5 {
		t.Fatalf("count = %d", s.Count())
	}
	if math.Abs(s.Mean()-3) > tolerance {
		t.Fatalf("mean = %v", s.Mean())
	}
	if math.Abs(s.StdDev()-math.Sqrt2) > tolerance {
		t.Fatalf("stddev = %v, want %v", s.StdDev(), math.Sqrt2)
	}
	if mn, _ := s.Min(); mn != 1 {
		t.Fatalf("min = %v", mn)
	}
	if mx, _ := s.Max(); mx != 5 {
		t.Fatalf("max = %v", mx)
	}
	if s.Sum() != 15 {
		t.Fatalf("sum = %v", s.Sum())
	}
}

func TestNumberStatsTwoValues(t *testing.T) {
	s := NewNumberStats()
	s.Add(1)
	s.Add(2)
	if s.Mean() != 1.5 {
		t.Fatalf("mean = %v", s.Mean())
	}
	if math.Abs(s.StdDev()-0.5) > tolerance {
		t.Fatalf("stddev = %v", s.StdDev())
	}
}

func TestNumberStatsNegativeOnly(t *testing.T) {
	s := NewNumberStats()
	for _, x := range []float64{-4, -9, -1} {
		s.Add(x)
	}
	mn, _ := s.Min()
	mx, _ := s.Max()
	if mn != -9 || mx != -1 {
		t.Fatalf("min/max = %v/%v", mn, mx)
	}
}

func TestNumberStatsMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	xs := make([]float64, 5000)
	s := NewNumberStats()
	for i := range xs {
		xs[i] = rng.NormFloat64()*250 + 1e6
		s.Add(xs[i])
	}
	n := float64(len(xs))
	wantMean := stat.Mean(xs, nil)
	// gonum reports the unbiased estimator
	wantVar := stat.Variance(xs, nil) * (n - 1) / n
	if math.Abs(s.Mean()-wantMean) > 1e-6 {
		t.Fatalf("mean = %v, want %v", s.Mean(), wantMean)
	}
	if math.Abs(s.Variance()-wantVar)/wantVar > 1e-6 {
		t.Fatalf("variance = %v, want %v", s.Variance(), wantVar)
	}
}

func TestNumberStatsObserveCounts(t *testing.T) {
	raws := []string{"1", "", "x", "0", "2", "nan", "", "3"}
	s := NewNumberStats()
	for _, r := range raws {
		s.Observe(Classify(r, true))
	}
	if got := s.Count() + s.EmptyCount() + s.ErrorCount(); got != uint64(len(raws)) {
		t.Fatalf("counters sum to %d, want %d", got, len(raws))
	}
	if s.Count() != 3 || s.EmptyCount() != 3 || s.ErrorCount() != 2 {
		t.Fatalf("count/empty/error = %d/%d/%d", s.Count(), s.EmptyCount(), s.ErrorCount())
	}
}
