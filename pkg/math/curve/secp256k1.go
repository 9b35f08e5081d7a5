package curve

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/zeebo/blake3"
)

// Secp256k1 is a second concrete Curve backend, used to prove the DKG core
// in package frost is generic over the group rather than accidentally tied
// to Ristretto255. It wraps github.com/decred/dcrd/dcrec/secp256k1/v4, a
// direct dependency of the teacher repository.
//
// Points encode as a leading type byte (0 for the identity, 1 for a
// compressed affine point) followed by 33 zero bytes or the 33-byte
// compressed SEC1 encoding respectively; secp256k1's standard PublicKey
// serialization has no representation for the point at infinity, so this
// module reserves one explicitly rather than leave it undefined.
type Secp256k1 struct{}

const (
	secpScalarLen = 32
	secpPointLen  = 34
)

func (Secp256k1) Name() string   { return "secp256k1" }
func (Secp256k1) ScalarLen() int { return secpScalarLen }
func (Secp256k1) PointLen() int  { return secpPointLen }

func (Secp256k1) NewScalar() Scalar {
	return secpScalar{secp256k1.ModNScalar{}}
}

func (Secp256k1) Identity() Point {
	return secpPoint{secp256k1.JacobianPoint{}}
}

func (Secp256k1) Generator() Point {
	one := secp256k1.ModNScalar{}
	one.SetInt(1)
	var g secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &g)
	return secpPoint{g}
}

func (Secp256k1) RandomScalar(rng io.Reader) (Scalar, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("curve: failed to read randomness: %w", err)
	}
	var s secp256k1.ModNScalar
	s.SetByteSlice(buf)
	return secpScalar{s}, nil
}

func (Secp256k1) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != secpScalarLen {
		return nil, fmt.Errorf("curve: secp256k1 scalar must be %d bytes, got %d", secpScalarLen, len(b))
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("curve: non-canonical secp256k1 scalar (>= group order)")
	}
	return secpScalar{s}, nil
}

func (Secp256k1) PointFromBytes(b []byte) (Point, error) {
	if len(b) != secpPointLen {
		return nil, fmt.Errorf("curve: secp256k1 point must be %d bytes, got %d", secpPointLen, len(b))
	}
	switch b[0] {
	case 0:
		for _, by := range b[1:] {
			if by != 0 {
				return nil, fmt.Errorf("curve: malformed secp256k1 identity encoding")
			}
		}
		return secpPoint{secp256k1.JacobianPoint{}}, nil
	case 1:
		pub, err := secp256k1.ParsePubKey(b[1:])
		if err != nil {
			return nil, fmt.Errorf("curve: invalid secp256k1 point: %w", err)
		}
		var j secp256k1.JacobianPoint
		pub.AsJacobian(&j)
		return secpPoint{j}, nil
	default:
		return nil, fmt.Errorf("curve: unknown secp256k1 point tag %d", b[0])
	}
}

func (Secp256k1) HashToScalar(domain string, parts ...[]byte) Scalar {
	h := blake3.New()
	_, _ = h.Write([]byte(domain))
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	digest := h.Digest()
	buf := make([]byte, secpScalarLen)
	if _, err := io.ReadFull(digest, buf); err != nil {
		panic(fmt.Sprintf("curve: blake3 XOF read failed: %v", err))
	}
	var s secp256k1.ModNScalar
	s.SetByteSlice(buf)
	return secpScalar{s}
}

func (Secp256k1) MultiexpVartime(scalars []Scalar, points []Point) Point {
	return multiexpVartime(Secp256k1{}, scalars, points)
}

type secpScalar struct {
	s secp256k1.ModNScalar
}

func (r secpScalar) Add(other Scalar) Scalar {
	o := other.(secpScalar)
	out := r.s
	out.Add(&o.s)
	return secpScalar{out}
}

func (r secpScalar) Mul(other Scalar) Scalar {
	o := other.(secpScalar)
	out := r.s
	out.Mul(&o.s)
	return secpScalar{out}
}

func (r secpScalar) Negate() Scalar {
	out := r.s
	out.Negate()
	return secpScalar{out}
}

// secp256k1GroupOrderMinus2 is N-2, where N is the order of the secp256k1
// base point's subgroup. Used for Fermat's-little-theorem inversion
// (s^(N-2) == s^-1 mod N), computed here by square-and-multiply instead
// of through an inverse method of ModNScalar.
var secp256k1GroupOrderMinus2 = [32]byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
	0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
	0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x3F,
}

func (r secpScalar) Invert() Scalar {
	result := secp256k1.ModNScalar{}
	result.SetInt(1)
	base := r.s
	for i := 0; i < 256; i++ {
		byteIdx := i / 8
		bitIdx := uint(7 - i%8)
		result.Mul(&result)
		if secp256k1GroupOrderMinus2[byteIdx]&(1<<bitIdx) != 0 {
			result.Mul(&base)
		}
	}
	return secpScalar{result}
}

func (r secpScalar) Equal(other Scalar) bool {
	o, ok := other.(secpScalar)
	if !ok {
		return false
	}
	return r.s.Equals(&o.s)
}

func (r secpScalar) IsZero() bool {
	return r.s.IsZero()
}

func (r secpScalar) SetNat(n *saferith.Nat) Scalar {
	be := n.Bytes()
	buf := make([]byte, secpScalarLen)
	if len(be) > secpScalarLen {
		be = be[len(be)-secpScalarLen:]
	}
	copy(buf[secpScalarLen-len(be):], be)
	var s secp256k1.ModNScalar
	s.SetByteSlice(buf)
	return secpScalar{s}
}

func (r secpScalar) ActOnBase() Point {
	var out secp256k1.JacobianPoint
	s := r.s
	secp256k1.ScalarBaseMultNonConst(&s, &out)
	return secpPoint{out}
}

func (r secpScalar) Act(p Point) Point {
	o := p.(secpPoint)
	var out secp256k1.JacobianPoint
	in := o.p
	s := r.s
	secp256k1.ScalarMultNonConst(&s, &in, &out)
	return secpPoint{out}
}

func (r secpScalar) Bytes() []byte {
	b := r.s.Bytes()
	return b[:]
}

type secpPoint struct {
	p secp256k1.JacobianPoint
}

func (r secpPoint) Add(other Point) Point {
	o := other.(secpPoint)
	var out secp256k1.JacobianPoint
	a, b := r.p, o.p
	secp256k1.AddNonConst(&a, &b, &out)
	return secpPoint{out}
}

func (r secpPoint) Equal(other Point) bool {
	o, ok := other.(secpPoint)
	if !ok {
		return false
	}
	if r.IsIdentity() || o.IsIdentity() {
		return r.IsIdentity() == o.IsIdentity()
	}
	a, b := r.p, o.p
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

// IsIdentity checks the Jacobian coordinates before any affine conversion:
// ToAffine always sets Z to one, so the point at infinity (a zero Z, or zero
// X and Y) is only recognizable beforehand.
func (r secpPoint) IsIdentity() bool {
	a := r.p
	a.X.Normalize()
	a.Y.Normalize()
	a.Z.Normalize()
	return (a.X.IsZero() && a.Y.IsZero()) || a.Z.IsZero()
}

func (r secpPoint) Bytes() []byte {
	if r.IsIdentity() {
		out := make([]byte, secpPointLen)
		return out
	}
	a := r.p
	a.ToAffine()
	pub := secp256k1.NewPublicKey(&a.X, &a.Y)
	out := make([]byte, secpPointLen)
	out[0] = 1
	copy(out[1:], pub.SerializeCompressed())
	return out
}
