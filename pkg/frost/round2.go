package frost

import (
	"io"

	"github.com/luxfi/frost-keygen/pkg/math/curve"
	"github.com/luxfi/frost-keygen/pkg/math/polynomial"
)

// Round2Output is everything generate_secret_shares hands back to its
// caller: the verified peer commitments (needed again in round2_finish),
// the outgoing per-recipient shares, and this participant's own evaluation
// f_i(i), retained as the seed of its final secret share.
type Round2Output struct {
	PeerCommitments map[uint16][]curve.Point
	Shares          map[uint16][]byte // keyed by recipient l != i
	OwnSeed         curve.Scalar      // f_i(i)
}

// Round2Share implements spec.md §4.4: re-verify peers' round-1 proofs,
// then evaluate this participant's secret polynomial at every other
// participant's index to produce their outgoing shares.
//
// coefficients is consumed by this call: callers must treat the slice as
// moved, matching the "Coefficients must be considered consumed" rule of
// spec.md §4.4.
func Round2Share(rng io.Reader, group curve.Curve, params Params, context string, coefficients []curve.Scalar, localMsg []byte, peerMsgs map[uint16][]byte) (Round2Output, error) {
	peerCommitments, err := VerifyRound1(rng, group, params, context, localMsg, peerMsgs)
	if err != nil {
		return Round2Output{}, err
	}

	poly := polynomial.New(group, coefficients)
	shares := make(map[uint16][]byte, params.N()-1)
	var ownSeed curve.Scalar

	for l := uint16(1); l <= params.N(); l++ {
		x := curve.IndexScalar(group, l)
		share := poly.Evaluate(x)
		if l == params.I() {
			ownSeed = share
			continue
		}
		shares[l] = share.Bytes()
	}

	zeroCoefficients(coefficients)

	return Round2Output{PeerCommitments: peerCommitments, Shares: shares, OwnSeed: ownSeed}, nil
}

// zeroCoefficients clears a consumed coefficient slice on a best-effort
// basis, per spec.md §5 and §9: it zeroes the encoding each scalar's Bytes
// returns and drops the slice's reference to the scalar. Both shipped
// backends return a fresh copy from Bytes, so the scalars' own storage is
// not overwritten; this is an advisory guarantee, not a security primitive.
func zeroCoefficients(coefficients []curve.Scalar) {
	for i := range coefficients {
		b := coefficients[i].Bytes()
		for j := range b {
			b[j] = 0
		}
		coefficients[i] = nil
	}
}
