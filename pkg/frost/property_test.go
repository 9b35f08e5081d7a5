package frost_test

import (
	"testing/quick"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/frost-keygen/pkg/frost"
	"github.com/luxfi/frost-keygen/pkg/math/curve"
	"github.com/luxfi/frost-keygen/pkg/math/polynomial"
)

// runPureHonestDKG drives the pure round functions directly (bypassing the
// protocols/frost/keygen state machine) so this suite exercises pkg/frost
// in isolation.
func runPureHonestDKG(group curve.Curve, n, t uint16, context string, seedBase int64) (map[uint16]frost.Keys, error) {
	params := make(map[uint16]frost.Params, n)
	for i := uint16(1); i <= n; i++ {
		p, err := frost.NewParams(n, t, i)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}

	round1 := make(map[uint16][]byte, n)
	coefficients := make(map[uint16][]curve.Scalar, n)
	for i := uint16(1); i <= n; i++ {
		out, err := frost.Round1Emit(detRNG(seedBase+int64(i)), group, params[i], context)
		if err != nil {
			return nil, err
		}
		round1[i] = out.Message
		coefficients[i] = out.Coefficients
	}

	shares := make(map[uint16]map[uint16][]byte, n)
	peerCommitmentsByI := make(map[uint16]map[uint16][]curve.Point, n)
	ownSeed := make(map[uint16]curve.Scalar, n)
	for i := uint16(1); i <= n; i++ {
		out, err := frost.Round2Share(detRNG(seedBase+100+int64(i)), group, params[i], context, coefficients[i], round1[i], round1)
		if err != nil {
			return nil, err
		}
		shares[i] = out.Shares
		peerCommitmentsByI[i] = out.PeerCommitments
		ownSeed[i] = out.OwnSeed
	}

	result := make(map[uint16]frost.Keys, n)
	for i := uint16(1); i <= n; i++ {
		incoming := make(map[uint16][]byte, n)
		incoming[i] = ownSeed[i].Bytes()
		for l := uint16(1); l <= n; l++ {
			if l == i {
				continue
			}
			incoming[l] = shares[l][i]
		}
		keys, err := frost.Round2Finish(group, params[i], ownSeed[i], peerCommitmentsByI[i], incoming)
		if err != nil {
			return nil, err
		}
		result[i] = keys
	}
	return result, nil
}

var _ = Describe("FROST DKG correctness property", func() {
	It("agrees on group_key and verification shares for any valid (n, t) <= 8", func() {
		property := func(nRaw, tRaw uint8) bool {
			n := uint16(nRaw%8) + 1
			t := uint16(tRaw%uint8(n)) + 1

			keysByIndex, err := runPureHonestDKG(curve.Ristretto255{}, n, t, "frost-property/correctness", int64(nRaw)*1000+int64(tRaw))
			if err != nil {
				return false
			}

			groupKey := keysByIndex[1].GroupKey
			for i, keys := range keysByIndex {
				if !groupKey.Equal(keys.GroupKey) {
					return false
				}
				if !keys.SecretShare.ActOnBase().Equal(keys.VerificationShares[i]) {
					return false
				}
				for l, vs := range keysByIndex[1].VerificationShares {
					if !vs.Equal(keys.VerificationShares[l]) {
						return false
					}
				}
			}
			return true
		}

		Expect(quick.Check(property, &quick.Config{MaxCount: 30})).To(Succeed())
	})

	It("reconstructs group_key's discrete log from any quorum of t shares", func() {
		group := curve.Ristretto255{}
		const n, t = 6, 4
		keysByIndex, err := runPureHonestDKG(group, n, t, "frost-property/reconstruction", 500000)
		Expect(err).NotTo(HaveOccurred())

		quorums := [][]uint16{{1, 2, 3, 4}, {3, 4, 5, 6}, {1, 3, 5, 6}}
		for _, quorum := range quorums {
			coeffs := polynomial.Lagrange(group, quorum)
			reconstructed := group.NewScalar()
			for _, i := range quorum {
				reconstructed = reconstructed.Add(coeffs[i].Mul(keysByIndex[i].SecretShare))
			}
			Expect(reconstructed.ActOnBase().Equal(keysByIndex[1].GroupKey)).To(BeTrue())
		}
	})
})
