package threat

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidBase = errors.New("base index must be 1 (first), 2 (second) or 3 (third)")
	ErrInvalidAttr = errors.New("attribute must be finite and non-negative")
	ErrInvalidProb = errors.New("invalid probability; must be 0..1")
)

// validateAttr rejects NaN/Inf/negative attribute values. A bad attribute
// means the roster layer upstream is broken, so this is returned, never
// clamped away.
func validateAttr(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s=%v: %w", name, v, ErrInvalidAttr)
	}
	return nil
}

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// drawAgainst returns true with probability p using the supplied source.
func drawAgainst(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}
