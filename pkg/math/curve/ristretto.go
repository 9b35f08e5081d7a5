package curve

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/gtank/ristretto255"
	"github.com/zeebo/blake3"

	"github.com/luxfi/frost-keygen/pkg/pool"
)

// multiexpPool backs the parallel term computation in multiexpVartime.
// Sized to GOMAXPROCS like every pl *pool.Pool the teacher threads through
// its Start functions.
var multiexpPool = pool.New(0)

// Ristretto255 is the spec's suggested toy/test group: a prime-order group
// built on top of Curve25519, with canonical constant-size encodings for
// both scalars and points by construction. It is the default curve used by
// this module's test suite.
type Ristretto255 struct{}

const (
	ristrettoScalarLen = 32
	ristrettoPointLen  = 32
)

func (Ristretto255) Name() string     { return "ristretto255" }
func (Ristretto255) ScalarLen() int   { return ristrettoScalarLen }
func (Ristretto255) PointLen() int    { return ristrettoPointLen }
func (Ristretto255) Identity() Point  { return ristrettoPoint{ristretto255.NewIdentityElement()} }
func (Ristretto255) NewScalar() Scalar {
	return ristrettoScalar{ristretto255.NewScalar()}
}

func (Ristretto255) Generator() Point {
	return ristrettoPoint{ristretto255.NewIdentityElement().ScalarBaseMult(oneRistrettoScalar())}
}

func oneRistrettoScalar() *ristretto255.Scalar {
	one, err := ristretto255.NewScalar().SetCanonicalBytes(oneBytes32())
	if err != nil {
		panic(fmt.Sprintf("curve: failed to build ristretto255 scalar one: %v", err))
	}
	return one
}

func oneBytes32() []byte {
	b := make([]byte, 32)
	b[0] = 1
	return b
}

func (Ristretto255) RandomScalar(rng io.Reader) (Scalar, error) {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("curve: failed to read randomness: %w", err)
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("curve: failed to reduce randomness into scalar: %w", err)
	}
	return ristrettoScalar{s}, nil
}

func (Ristretto255) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ristrettoScalarLen {
		return nil, fmt.Errorf("curve: ristretto255 scalar must be %d bytes, got %d", ristrettoScalarLen, len(b))
	}
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("curve: non-canonical ristretto255 scalar: %w", err)
	}
	return ristrettoScalar{s}, nil
}

func (Ristretto255) PointFromBytes(b []byte) (Point, error) {
	if len(b) != ristrettoPointLen {
		return nil, fmt.Errorf("curve: ristretto255 point must be %d bytes, got %d", ristrettoPointLen, len(b))
	}
	p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("curve: invalid ristretto255 point: %w", err)
	}
	return ristrettoPoint{p}, nil
}

const hashToScalarXOFLen = 64

func (Ristretto255) HashToScalar(domain string, parts ...[]byte) Scalar {
	h := blake3.New()
	_, _ = h.Write([]byte(domain))
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	digest := h.Digest()
	buf := make([]byte, hashToScalarXOFLen)
	if _, err := io.ReadFull(digest, buf); err != nil {
		panic(fmt.Sprintf("curve: blake3 XOF read failed: %v", err))
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(buf)
	if err != nil {
		panic(fmt.Sprintf("curve: failed to reduce hash output into scalar: %v", err))
	}
	return ristrettoScalar{s}
}

func (Ristretto255) MultiexpVartime(scalars []Scalar, points []Point) Point {
	return multiexpVartime(Ristretto255{}, scalars, points)
}

// multiexpVartime is the group-agnostic fallback used by both backends: the
// n individual scalar multiplications are independent of each other, so
// they're farmed out across multiexpPool before being summed left to right.
// It satisfies the functional contract of spec.md §4.1 (the sum of
// scalars[k]*points[k]) without assuming a Straus/Pippenger-optimized
// primitive is available from the underlying library.
func multiexpVartime(group Curve, scalars []Scalar, points []Point) Point {
	if len(scalars) != len(points) {
		panic("curve: multiexp_vartime: scalars and points length mismatch")
	}
	terms := make([]Point, len(scalars))
	_ = multiexpPool.Parallelize(len(scalars), func(k int) error {
		terms[k] = scalars[k].Act(points[k])
		return nil
	})
	acc := group.Identity()
	for _, term := range terms {
		acc = acc.Add(term)
	}
	return acc
}

type ristrettoScalar struct {
	s *ristretto255.Scalar
}

func (r ristrettoScalar) Add(other Scalar) Scalar {
	o := other.(ristrettoScalar)
	return ristrettoScalar{ristretto255.NewScalar().Add(r.s, o.s)}
}

func (r ristrettoScalar) Mul(other Scalar) Scalar {
	o := other.(ristrettoScalar)
	return ristrettoScalar{ristretto255.NewScalar().Multiply(r.s, o.s)}
}

func (r ristrettoScalar) Negate() Scalar {
	return ristrettoScalar{ristretto255.NewScalar().Negate(r.s)}
}

func (r ristrettoScalar) Invert() Scalar {
	return ristrettoScalar{ristretto255.NewScalar().Invert(r.s)}
}

func (r ristrettoScalar) Equal(other Scalar) bool {
	o, ok := other.(ristrettoScalar)
	if !ok {
		return false
	}
	return r.s.Equal(o.s) == 1
}

func (r ristrettoScalar) IsZero() bool {
	zero := ristretto255.NewScalar()
	return r.s.Equal(zero) == 1
}

func (r ristrettoScalar) SetNat(n *saferith.Nat) Scalar {
	be := n.Bytes()
	// SetUniformBytes wants a 64-byte little-endian buffer; small
	// participant indices never approach the field order, so widening the
	// big-endian value into a little-endian buffer and reducing is exact.
	buf := make([]byte, 64)
	for i, j := 0, len(be)-1; j >= 0; i, j = i+1, j-1 {
		buf[i] = be[j]
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(buf)
	if err != nil {
		panic(fmt.Sprintf("curve: SetNat failed: %v", err))
	}
	return ristrettoScalar{s}
}

func (r ristrettoScalar) ActOnBase() Point {
	return ristrettoPoint{ristretto255.NewIdentityElement().ScalarBaseMult(r.s)}
}

func (r ristrettoScalar) Act(p Point) Point {
	o := p.(ristrettoPoint)
	return ristrettoPoint{ristretto255.NewIdentityElement().ScalarMult(r.s, o.p)}
}

func (r ristrettoScalar) Bytes() []byte {
	return r.s.Bytes()
}

type ristrettoPoint struct {
	p *ristretto255.Element
}

func (r ristrettoPoint) Add(other Point) Point {
	o := other.(ristrettoPoint)
	return ristrettoPoint{ristretto255.NewIdentityElement().Add(r.p, o.p)}
}

func (r ristrettoPoint) Equal(other Point) bool {
	o, ok := other.(ristrettoPoint)
	if !ok {
		return false
	}
	return r.p.Equal(o.p) == 1
}

func (r ristrettoPoint) IsIdentity() bool {
	return r.p.Equal(ristretto255.NewIdentityElement()) == 1
}

func (r ristrettoPoint) Bytes() []byte {
	return r.p.Bytes()
}
