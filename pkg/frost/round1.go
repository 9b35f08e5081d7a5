package frost

import (
	"fmt"
	"io"

	"github.com/luxfi/frost-keygen/pkg/math/curve"
	"github.com/luxfi/frost-keygen/pkg/math/sample"
)

// Round1Output is everything generate_coefficients hands back to its
// caller: the coefficients to retain until round 2, and the wire bytes to
// broadcast.
type Round1Output struct {
	Coefficients []curve.Scalar
	Commitments  []curve.Point
	Message      []byte
}

// Round1Emit implements spec.md §4.2: sample the secret polynomial,
// commit to its coefficients, and prove knowledge of the constant term
// a_0 with a context- and index-bound Schnorr proof.
func Round1Emit(rng io.Reader, group curve.Curve, params Params, context string) (Round1Output, error) {
	coefficients, err := sample.Coefficients(rng, group, int(params.T()))
	if err != nil {
		return Round1Output{}, fmt.Errorf("round1: %w", err)
	}

	commitments := make([]curve.Point, len(coefficients))
	for j, a := range coefficients {
		commitments[j] = a.ActOnBase()
	}

	nonce, err := sample.Scalar(rng, group)
	if err != nil {
		return Round1Output{}, fmt.Errorf("round1: %w", err)
	}
	r := nonce.ActOnBase()

	transcript := commitmentTranscript(commitments)
	c := challenge(group, params.I(), context, r, transcript)

	s := nonce.Add(c.Mul(coefficients[0]))

	msg := encodeRound1(group, commitments, r, s)

	return Round1Output{Coefficients: coefficients, Commitments: commitments, Message: msg}, nil
}

// commitmentTranscript concatenates encoded commitments in order, forming
// the Am transcript of spec.md §4.2 step 4.
func commitmentTranscript(commitments []curve.Point) []byte {
	out := make([]byte, 0)
	for _, a := range commitments {
		out = append(out, a.Bytes()...)
	}
	return out
}

// challenge computes c = hash_to_F(i_be || context || R || Am), the
// Schnorr challenge of spec.md §4.2 step 5, shared between Round1Emit and
// VerifyRound1.
func challenge(group curve.Curve, index uint16, context string, r curve.Point, transcript []byte) curve.Scalar {
	return group.HashToScalar("frost/keygen/pok", curve.BEIndex(index), []byte(context), r.Bytes(), transcript)
}
