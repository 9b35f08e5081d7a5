package keygen_test

import (
	"io"
	mathrand "math/rand"

	"github.com/luxfi/frost-keygen/pkg/frost"
	"github.com/luxfi/frost-keygen/pkg/math/curve"
	"github.com/luxfi/frost-keygen/protocols/frost/keygen"
)

// curves is the pair of concrete Curve backends the suite exercises, so
// that no test accidentally only proves the protocol works over one
// specific group.
var curves = map[string]curve.Curve{
	"ristretto255": curve.Ristretto255{},
	"secp256k1":    curve.Secp256k1{},
}

func detRNG(seed int64) io.Reader {
	return mathrand.New(mathrand.NewSource(seed))
}

// newMachines builds one Machine per participant 1..=n, each seeded off a
// distinct but deterministic RNG stream.
func newMachines(group curve.Curve, n, t uint16, context string, seedBase int64) (map[uint16]*keygen.Machine, error) {
	machines := make(map[uint16]*keygen.Machine, n)
	for i := uint16(1); i <= n; i++ {
		params, err := frost.NewParams(n, t, i)
		if err != nil {
			return nil, err
		}
		machines[i] = keygen.New(detRNG(seedBase+int64(i)), group, params, context)
	}
	return machines, nil
}

func without(m map[uint16][]byte, exclude uint16) map[uint16][]byte {
	out := make(map[uint16][]byte, len(m)-1)
	for k, v := range m {
		if k != exclude {
			out[k] = v
		}
	}
	return out
}

// runHonestDKG drives every machine through all three rounds with no
// tampering, returning each participant's resulting Keys.
func runHonestDKG(machines map[uint16]*keygen.Machine) (map[uint16]frost.Keys, error) {
	keysByIndex, _, err := runHonestDKGCapturingRound1(machines)
	return keysByIndex, err
}

// runHonestDKGCapturingRound1 behaves like runHonestDKG but also returns
// the round-1 broadcast messages, for tests that need to compare two runs'
// transcripts byte-for-byte.
func runHonestDKGCapturingRound1(machines map[uint16]*keygen.Machine) (map[uint16]frost.Keys, map[uint16][]byte, error) {
	round1 := make(map[uint16][]byte, len(machines))
	for i, m := range machines {
		msg, err := m.GenerateCoefficients()
		if err != nil {
			return nil, nil, err
		}
		round1[i] = msg
	}

	outgoing := make(map[uint16]map[uint16][]byte, len(machines))
	for i, m := range machines {
		shares, err := m.GenerateSecretShares(without(round1, i))
		if err != nil {
			return nil, nil, err
		}
		outgoing[i] = shares
	}

	result := make(map[uint16]frost.Keys, len(machines))
	for i, m := range machines {
		incoming := make(map[uint16][]byte, len(machines)-1)
		for l := range machines {
			if l == i {
				continue
			}
			incoming[l] = outgoing[l][i]
		}
		keys, err := m.Complete(incoming)
		if err != nil {
			return nil, nil, err
		}
		result[i] = keys
	}
	return result, round1, nil
}
