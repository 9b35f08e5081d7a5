// Package polynomial implements the Feldman-VSS coefficient polynomial and
// Lagrange interpolation used to reconstruct a Shamir-shared secret,
// mirroring the teacher's pkg/math/polynomial package.
package polynomial

import (
	"github.com/luxfi/frost-keygen/pkg/math/curve"
)

// Polynomial is f(X) = a_0 + a_1*X + ... + a_{t-1}*X^{t-1}, with a_0 the
// shared secret (spec.md §3, Coefficients).
type Polynomial struct {
	group        curve.Curve
	coefficients []curve.Scalar
}

// New wraps an already-sampled coefficient list. Coefficients[0] is the
// secret constant term.
func New(group curve.Curve, coefficients []curve.Scalar) *Polynomial {
	return &Polynomial{group: group, coefficients: coefficients}
}

// Threshold returns the number of coefficients (the polynomial's degree + 1).
func (p *Polynomial) Threshold() int { return len(p.coefficients) }

// Coefficient returns the j-th coefficient a_j.
func (p *Polynomial) Coefficient(j int) curve.Scalar { return p.coefficients[j] }

// Evaluate computes f(x) via Horner's rule, evaluated right-to-left exactly
// as spec.md §4.4 step 2 specifies:
//
//	share = a_{t-1}; for j from t-2 down to 0: share = share*x + a_j
func (p *Polynomial) Evaluate(x curve.Scalar) curve.Scalar {
	t := len(p.coefficients)
	share := p.coefficients[t-1]
	for j := t - 2; j >= 0; j-- {
		share = share.Mul(x).Add(p.coefficients[j])
	}
	return share
}

// Lagrange computes the Lagrange coefficients at X=0 for the given set of
// 1-based participant indices, so that
// sum_{i in indices} Lagrange(indices)[i] * f(i) == f(0).
func Lagrange(group curve.Curve, indices []uint16) map[uint16]curve.Scalar {
	result := make(map[uint16]curve.Scalar, len(indices))
	for _, i := range indices {
		xi := curve.IndexScalar(group, i)
		num := curve.IndexScalar(group, 1)
		den := curve.IndexScalar(group, 1)
		for _, j := range indices {
			if j == i {
				continue
			}
			xj := curve.IndexScalar(group, j)
			num = num.Mul(xj)
			den = den.Mul(xj.Add(xi.Negate()))
		}
		result[i] = num.Mul(den.Invert())
	}
	return result
}
