package frost

import (
	"fmt"

	"github.com/luxfi/frost-keygen/pkg/math/curve"
)

// round1Message is the decoded form of the exact byte layout spec.md §6
// mandates for a round-1 broadcast:
//
//	bytes[0 .. t*G_len]                : A_0 || A_1 || ... || A_{t-1}
//	bytes[t*G_len .. t*G_len+G_len]     : R
//	bytes[t*G_len+G_len .. end]         : s
type round1Message struct {
	Commitments []curve.Point // A_0 .. A_{t-1}
	R           curve.Point
	S           curve.Scalar
}

// encodeRound1 serializes a round1Message into the wire layout of
// spec.md §6. len(commitments) must equal t.
func encodeRound1(group curve.Curve, commitments []curve.Point, r curve.Point, s curve.Scalar) []byte {
	out := make([]byte, 0, len(commitments)*group.PointLen()+group.PointLen()+group.ScalarLen())
	for _, a := range commitments {
		out = append(out, a.Bytes()...)
	}
	out = append(out, r.Bytes()...)
	out = append(out, s.Bytes()...)
	return out
}

// decodeSegment identifies which wire segment a decodeRound1 failure
// occurred in, so callers can attribute InvalidCommitment vs
// InvalidProofOfKnowledge per spec.md §6.
type decodeSegment int

const (
	segmentCommitment decodeSegment = iota
	segmentProof
)

// decodeError wraps a decode failure with the segment it occurred in.
type decodeError struct {
	segment decodeSegment
	err     error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// decodeRound1 parses the wire layout of spec.md §6 for a sender with
// threshold t. Commitment-segment decoding failures are reported
// distinctly from proof-segment (R, s) failures via decodeError.segment, so
// the caller can attribute InvalidCommitment vs InvalidProofOfKnowledge.
// A wrong total length is attributed to the commitment segment, since a
// truncated or padded message can never be unambiguously assigned to R or s.
func decodeRound1(group curve.Curve, t int, b []byte) (round1Message, error) {
	commitLen := t * group.PointLen()
	want := commitLen + group.PointLen() + group.ScalarLen()
	if len(b) != want {
		return round1Message{}, &decodeError{segmentCommitment, fmt.Errorf("round1 message: expected %d bytes, got %d", want, len(b))}
	}

	commitments := make([]curve.Point, t)
	for j := 0; j < t; j++ {
		start := j * group.PointLen()
		p, err := group.PointFromBytes(b[start : start+group.PointLen()])
		if err != nil {
			return round1Message{}, &decodeError{segmentCommitment, fmt.Errorf("commitment %d: %w", j, err)}
		}
		commitments[j] = p
	}

	rStart := commitLen
	r, err := group.PointFromBytes(b[rStart : rStart+group.PointLen()])
	if err != nil {
		return round1Message{}, &decodeError{segmentProof, fmt.Errorf("nonce commitment R: %w", err)}
	}

	sStart := rStart + group.PointLen()
	s, err := group.ScalarFromBytes(b[sStart:])
	if err != nil {
		return round1Message{}, &decodeError{segmentProof, fmt.Errorf("proof scalar s: %w", err)}
	}

	return round1Message{Commitments: commitments, R: r, S: s}, nil
}

// validateIndexMap checks that m's keys are exactly 1..=n, per the
// map-validation contract of spec.md §5 and §8. Go map keys are unique, so
// the only faults are a missing index and a key outside [1, n]. When m does
// not hold exactly n keys, the lowest missing index is reported as
// MissingParticipant; when no index is missing, or m holds exactly n keys,
// a key outside [1, n] is reported as DuplicatedIndex. The driver in
// protocols/frost/keygen raises DuplicatedIndex itself for a caller map
// that already holds the local index.
func validateIndexMap[V any](n uint16, m map[uint16]V) error {
	if len(m) != int(n) {
		for l := uint16(1); l <= n; l++ {
			if _, ok := m[l]; !ok {
				return &KeygenError{Kind: KindMissingParticipant, Index: l}
			}
		}
		for l := range m {
			if l < 1 || l > n {
				return &KeygenError{Kind: KindDuplicatedIndex, Index: l}
			}
		}
		return &KeygenError{Kind: KindInternalError, Message: "map length mismatch without a resolvable cause"}
	}
	for l := range m {
		if l < 1 || l > n {
			return &KeygenError{Kind: KindDuplicatedIndex, Index: l}
		}
	}
	return nil
}
