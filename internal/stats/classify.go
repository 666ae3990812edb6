package stats

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the outcome of classifying a raw field.
type Kind uint8

const (
	// Numeric means the field parsed to a finite float.
	Numeric Kind = iota
	// Empty means the field was blank (or a zero folded into missing).
	Empty
	// Error means the field did not parse as a finite number.
	Error
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Empty:
		return "empty"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Observation is a classified field. Value is only meaningful for Numeric.
type Observation struct {
	Kind  Kind
	Value float64
}

// Classify maps a raw field to exactly one of Numeric, Empty or Error.
// When zeroAsEmpty is set a parsed zero counts as Empty instead of Numeric.
func Classify(raw string, zeroAsEmpty bool) Observation {
	if raw == "" {
		return Observation{Kind: Empty}
	}
	x, ok := parseFloat(raw)
	if !ok {
		return Observation{Kind: Error}
	}
	if zeroAsEmpty && x == 0 {
		return Observation{Kind: Empty}
	}
	return Observation{Kind: Numeric, Value: x}
}

// parseFloat accepts plain decimal notation only: optional sign, digits,
// decimal point and exponent. NaN and infinities break min/max ordering and
// are rejected.
func parseFloat(s string) (float64, bool) {
	// ParseFloat also knows hex floats and '_' separators; neither is data.
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}
