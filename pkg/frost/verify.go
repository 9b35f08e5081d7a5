package frost

import (
	"errors"
	"io"
	"sort"

	"github.com/luxfi/frost-keygen/pkg/math/curve"
	"github.com/luxfi/frost-keygen/pkg/math/sample"
)

// VerifyRound1 implements spec.md §4.3: batch-verify every peer's Schnorr
// proof of knowledge of their secret coefficient a_{l,0}, returning the
// decoded per-participant commitment vectors on success.
//
// peerMsgs must contain exactly the keys 1..=n, with peerMsgs[params.I()]
// equal to localMsg (the driver's own responsibility to insert before
// calling this function).
func VerifyRound1(rng io.Reader, group curve.Curve, params Params, context string, localMsg []byte, peerMsgs map[uint16][]byte) (map[uint16][]curve.Point, error) {
	n, t, self := params.N(), int(params.T()), params.I()

	if err := validateIndexMap(n, peerMsgs); err != nil {
		return nil, err
	}
	if own, ok := peerMsgs[self]; !ok || string(own) != string(localMsg) {
		return nil, &KeygenError{Kind: KindMissingParticipant, Index: self}
	}

	decoded := make(map[uint16]round1Message, n)
	peerCommitments := make(map[uint16][]curve.Point, n)
	for l := uint16(1); l <= n; l++ {
		msg, err := decodeRound1(group, t, peerMsgs[l])
		if err != nil {
			if l == self {
				return nil, &KeygenError{Kind: KindInternalError, Message: err.Error()}
			}
			var de *decodeError
			if errors.As(err, &de) && de.segment == segmentProof {
				return nil, &KeygenError{Kind: KindInvalidProofOfKnowledge, Index: l}
			}
			return nil, &KeygenError{Kind: KindInvalidCommitment, Index: l}
		}
		decoded[l] = msg
		peerCommitments[l] = msg.Commitments
	}

	others := make([]uint16, 0, n-1)
	for l := uint16(1); l <= n; l++ {
		if l != self {
			others = append(others, l)
		}
	}
	sort.Slice(others, func(a, b int) bool { return others[a] < others[b] })

	if len(others) == 0 {
		return peerCommitments, nil
	}

	u := make(map[uint16]curve.Scalar, len(others))
	for k, l := range others {
		if k == 0 {
			u[l] = curve.IndexScalar(group, 1)
			continue
		}
		blind, err := sample.Scalar(rng, group)
		if err != nil {
			return nil, &KeygenError{Kind: KindInternalError, Message: err.Error()}
		}
		u[l] = blind
	}

	scalars := make([]curve.Scalar, 0, 3*len(others))
	points := make([]curve.Point, 0, 3*len(others))
	cByL := make(map[uint16]curve.Scalar, len(others))
	for _, l := range others {
		msg := decoded[l]
		c := challenge(group, l, context, msg.R, commitmentTranscript(msg.Commitments))
		cByL[l] = c
		ul := u[l]

		scalars = append(scalars, ul)
		points = append(points, msg.R)

		scalars = append(scalars, c.Mul(ul))
		points = append(points, msg.Commitments[0])

		scalars = append(scalars, msg.S.Mul(ul).Negate())
		points = append(points, group.Generator())
	}

	batch := group.MultiexpVartime(scalars, points)
	if batch.IsIdentity() {
		return peerCommitments, nil
	}

	var bad uint16
	allIndividualPass := true
	for _, l := range others {
		msg := decoded[l]
		c := cByL[l]
		lhs := msg.S.ActOnBase()
		rhs := msg.R.Add(c.Act(msg.Commitments[0]))
		if !lhs.Equal(rhs) {
			allIndividualPass = false
			bad = l
			break
		}
	}
	if allIndividualPass {
		return nil, &KeygenError{Kind: KindInternalError, Message: "batched verification rejected but every individual proof of knowledge passed"}
	}
	return nil, &KeygenError{Kind: KindInvalidProofOfKnowledge, Index: bad}
}
