package frost

import (
	"github.com/luxfi/frost-keygen/pkg/math/curve"
)

// Round2Finish implements spec.md §4.5: verify every received share
// against its sender's Feldman commitments, then derive the final secret
// share, the group public key, and every participant's verification
// share.
//
// peerShares must contain exactly the keys 1..=n, with peerShares[i]
// equal to ownSeed.Bytes() (the driver's responsibility to insert before
// calling this function).
func Round2Finish(group curve.Curve, params Params, ownSeed curve.Scalar, peerCommitments map[uint16][]curve.Point, peerShares map[uint16][]byte) (Keys, error) {
	n, t, self := params.N(), int(params.T()), params.I()

	if err := validateIndexMap(n, peerShares); err != nil {
		return Keys{}, err
	}
	if err := validateIndexMap(n, peerCommitments); err != nil {
		return Keys{}, err
	}

	shares := make(map[uint16]curve.Scalar, n)
	shares[self] = ownSeed

	for l := uint16(1); l <= n; l++ {
		if l == self {
			continue
		}
		share, err := group.ScalarFromBytes(peerShares[l])
		if err != nil {
			return Keys{}, &KeygenError{Kind: KindInvalidShare, Index: l}
		}

		commitments := peerCommitments[l]
		if len(commitments) != t {
			return Keys{}, &KeygenError{Kind: KindInvalidCommitment, Index: l}
		}
		powers := indexPowers(group, self, t)
		expected := group.MultiexpVartime(powers, commitments)
		if !share.ActOnBase().Equal(expected) {
			return Keys{}, &KeygenError{Kind: KindInvalidCommitment, Index: l}
		}
		shares[l] = share
	}

	secretShare := group.NewScalar()
	for l := uint16(1); l <= n; l++ {
		secretShare = secretShare.Add(shares[l])
	}

	groupKey := group.Identity()
	aggregate := make([]curve.Point, t)
	for j := 0; j < t; j++ {
		aggregate[j] = group.Identity()
	}
	for l := uint16(1); l <= n; l++ {
		commitments := peerCommitments[l]
		if len(commitments) != t {
			return Keys{}, &KeygenError{Kind: KindInvalidCommitment, Index: l}
		}
		groupKey = groupKey.Add(commitments[0])
		for j := 0; j < t; j++ {
			aggregate[j] = aggregate[j].Add(commitments[j])
		}
	}

	verificationShares := make(map[uint16]curve.Point, n)
	for l := uint16(1); l <= n; l++ {
		powers := indexPowers(group, l, t)
		verificationShares[l] = group.MultiexpVartime(powers, aggregate)
	}

	if !verificationShares[self].Equal(secretShare.ActOnBase()) {
		return Keys{}, &KeygenError{Kind: KindInternalError, Message: "own verification share does not match own secret share"}
	}

	return Keys{
		Params:             params,
		SecretShare:        secretShare,
		GroupKey:           groupKey,
		VerificationShares: verificationShares,
	}, nil
}

// indexPowers returns [x^0, x^1, ..., x^{t-1}] for the scalar representing
// participant index l, used to evaluate a committed polynomial at l via
// multiexp_vartime against its coefficient commitments.
func indexPowers(group curve.Curve, l uint16, t int) []curve.Scalar {
	x := curve.IndexScalar(group, l)
	powers := make([]curve.Scalar, t)
	powers[0] = curve.IndexScalar(group, 1)
	for j := 1; j < t; j++ {
		powers[j] = powers[j-1].Mul(x)
	}
	return powers
}
