// Package curve defines the abstract prime-order group the DKG core is
// parametrised over, and the scalar field that group's arithmetic lives in.
//
// A Curve is a capability bundle, not a concrete type: fixed-length
// canonical encodings for both scalars and points, constant- and
// variable-base scalar multiplication, a domain-separated random oracle
// into the scalar field, and a variable-time multi-scalar multiplication
// primitive. Two concrete backends ship in this package — Ristretto255 and
// Secp256k1 — so that the DKG core in package frost never assumes anything
// about the underlying group beyond what this interface promises.
package curve

import (
	"encoding/binary"
	"io"

	"github.com/cronokirby/saferith"
)

// Scalar is an element of a Curve's prime scalar field.
//
// Implementations are expected to be cheap to copy by value at the call
// site (the interface methods return fresh Scalars rather than mutating
// receivers), matching the immutable-value style the teacher's own
// curve.Scalar interface uses.
type Scalar interface {
	// Add returns the sum of the receiver and other.
	Add(other Scalar) Scalar
	// Mul returns the product of the receiver and other.
	Mul(other Scalar) Scalar
	// Negate returns the additive inverse of the receiver.
	Negate() Scalar
	// Invert returns the multiplicative inverse of the receiver. The
	// receiver must be nonzero.
	Invert() Scalar
	// Equal reports whether the receiver and other represent the same field element.
	Equal(other Scalar) bool
	// IsZero reports whether the receiver is the additive identity.
	IsZero() bool
	// SetNat sets the receiver to the field reduction of n and returns it.
	SetNat(n *saferith.Nat) Scalar
	// ActOnBase returns the receiver multiplied against the curve's fixed generator.
	ActOnBase() Point
	// Act returns the receiver multiplied against an arbitrary point.
	Act(p Point) Point
	// Bytes returns the canonical fixed-length encoding of the receiver.
	Bytes() []byte
}

// Point is an element of a Curve's group.
type Point interface {
	// Add returns the sum of the receiver and other.
	Add(other Point) Point
	// Equal reports whether the receiver and other represent the same group element.
	Equal(other Point) bool
	// IsIdentity reports whether the receiver is the group identity element.
	IsIdentity() bool
	// Bytes returns the canonical fixed-length encoding of the receiver.
	Bytes() []byte
}

// Curve bundles the operations the DKG core needs from a prime-order group
// whose scalar field is a prime field. See package doc for the contract.
type Curve interface {
	// Name identifies the curve, for diagnostics and test table labels.
	Name() string
	// ScalarLen is the fixed length, in bytes, of a canonical scalar encoding.
	ScalarLen() int
	// PointLen is the fixed length, in bytes, of a canonical point encoding.
	PointLen() int
	// NewScalar returns the additive identity (zero) of the scalar field.
	NewScalar() Scalar
	// RandomScalar draws a uniform scalar using randomness read from rng.
	RandomScalar(rng io.Reader) (Scalar, error)
	// ScalarFromBytes decodes a canonical scalar encoding, rejecting
	// non-canonical or wrong-length input.
	ScalarFromBytes(b []byte) (Scalar, error)
	// PointFromBytes decodes a canonical point encoding, rejecting
	// wrong-length input. The identity element is a legal encoding.
	PointFromBytes(b []byte) (Point, error)
	// Identity returns the group identity element.
	Identity() Point
	// Generator returns the curve's fixed base point.
	Generator() Point
	// HashToScalar is a domain-separated random oracle into the scalar field.
	HashToScalar(domain string, parts ...[]byte) Scalar
	// MultiexpVartime returns the sum of scalars[k]*points[k], computed in
	// variable time. len(scalars) must equal len(points).
	MultiexpVartime(scalars []Scalar, points []Point) Point
}

// IndexScalar converts a 1-based participant index into a scalar the same
// way the teacher's keygen code does: via a saferith.Nat built from the
// uint64 widening of the index.
func IndexScalar(group Curve, index uint16) Scalar {
	nat := new(saferith.Nat).SetUint64(uint64(index))
	return group.NewScalar().SetNat(nat)
}

// beUint16 encodes a participant index as 2 bytes big-endian, matching the
// wire layout spec.md §4.2 mandates for the PoK challenge transcript.
func beUint16(i uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, i)
	return b
}

// BEIndex is exported so packages outside curve (the frost round
// implementations) can build the exact challenge transcript without
// reimplementing the encoding.
func BEIndex(i uint16) []byte {
	return beUint16(i)
}
