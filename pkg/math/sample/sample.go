// Package sample draws uniformly random curve scalars, mirroring the
// teacher's pkg/math/sample helpers (sample.Scalar, sample.ScalarUnit) that
// every round of the teacher's protocols calls instead of touching a
// concrete curve's randomness primitives directly.
package sample

import (
	"fmt"
	"io"

	"github.com/luxfi/frost-keygen/pkg/math/curve"
)

// Scalar draws a uniform field element from rng, as spec.md §4.2 step 1
// requires for each polynomial coefficient and §4.2 step 3 requires for the
// Schnorr nonce.
func Scalar(rng io.Reader, group curve.Curve) (curve.Scalar, error) {
	s, err := group.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	return s, nil
}

// Coefficients draws t uniform field elements, one per polynomial degree
// from 0 to t-1.
func Coefficients(rng io.Reader, group curve.Curve, t int) ([]curve.Scalar, error) {
	coeffs := make([]curve.Scalar, t)
	for i := range coeffs {
		s, err := Scalar(rng, group)
		if err != nil {
			return nil, fmt.Errorf("sample: coefficient %d: %w", i, err)
		}
		coeffs[i] = s
	}
	return coeffs, nil
}
