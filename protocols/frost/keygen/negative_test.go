package keygen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/frost-keygen/pkg/frost"
	"github.com/luxfi/frost-keygen/pkg/math/curve"
	"github.com/luxfi/frost-keygen/protocols/frost/keygen"
)

// TestProofOfKnowledgeSoundness covers spec.md §8 scenario 2: flipping a
// bit of a peer's round-1 message causes verify_round1 to blame exactly
// that participant.
func TestProofOfKnowledgeSoundness(t *testing.T) {
	group := curve.Ristretto255{}
	const n, thresh = 5, 3

	machines, err := newMachines(group, n, thresh, "frost-keygen-test/pok-soundness", 3000)
	require.NoError(t, err)

	round1 := make(map[uint16][]byte, n)
	for i, m := range machines {
		msg, err := m.GenerateCoefficients()
		require.NoError(t, err)
		round1[i] = msg
	}

	// Corrupt participant 4's view of participant 2's commitment A_{2,0}.
	tampered := make(map[uint16][]byte, n)
	for i, b := range round1 {
		cp := make([]byte, len(b))
		copy(cp, b)
		tampered[i] = cp
	}
	tampered[2][0] ^= 0x01

	_, err = machines[4].GenerateSecretShares(without(tampered, 4))
	require.Error(t, err)

	var kerr *frost.KeygenError
	require.ErrorAs(t, err, &kerr)
	assert.Contains(t, []frost.ErrorKind{frost.KindInvalidProofOfKnowledge, frost.KindInvalidCommitment}, kerr.Kind)
	assert.Equal(t, uint16(2), kerr.Index)
}

// TestFeldmanSoundness covers spec.md §8 scenario 3: substituting any
// share with a different scalar causes the recipient's Complete to blame
// the sender, while unaffected participants complete normally.
func TestFeldmanSoundness(t *testing.T) {
	group := curve.Ristretto255{}
	const n, thresh = 4, 3

	machines, err := newMachines(group, n, thresh, "frost-keygen-test/feldman-soundness", 4000)
	require.NoError(t, err)

	round1 := make(map[uint16][]byte, n)
	for i, m := range machines {
		msg, err := m.GenerateCoefficients()
		require.NoError(t, err)
		round1[i] = msg
	}

	outgoing := make(map[uint16]map[uint16][]byte, n)
	for i, m := range machines {
		shares, err := m.GenerateSecretShares(without(round1, i))
		require.NoError(t, err)
		outgoing[i] = shares
	}

	// Participant 1 sends participant 3 a corrupted share: share + 1.
	one := curve.IndexScalar(group, 1)
	corrupted, err := group.ScalarFromBytes(outgoing[1][3])
	require.NoError(t, err)
	outgoing[1][3] = corrupted.Add(one).Bytes()

	for i, m := range machines {
		incoming := make(map[uint16][]byte, n-1)
		for l := range machines {
			if l == i {
				continue
			}
			incoming[l] = outgoing[l][i]
		}
		_, err := m.Complete(incoming)
		if i == 3 {
			require.Error(t, err)
			var kerr *frost.KeygenError
			require.ErrorAs(t, err, &kerr)
			assert.Equal(t, frost.KindInvalidCommitment, kerr.Kind)
			assert.Equal(t, uint16(1), kerr.Index)
		} else {
			require.NoError(t, err)
		}
	}
}

// TestContextBinding covers spec.md §8 scenario 5: two runs with different
// context strings produce different group keys, and grafting R, s from one
// run onto the commitments of the other fails verification.
func TestContextBinding(t *testing.T) {
	group := curve.Ristretto255{}
	const n, thresh = 3, 2

	machinesA, err := newMachines(group, n, thresh, "frost-keygen-test/context-a", 5000)
	require.NoError(t, err)
	keysA, err := runHonestDKG(machinesA)
	require.NoError(t, err)

	machinesB, err := newMachines(group, n, thresh, "frost-keygen-test/context-b", 5000)
	require.NoError(t, err)
	keysB, err := runHonestDKG(machinesB)
	require.NoError(t, err)

	assert.False(t, keysA[1].GroupKey.Equal(keysB[1].GroupKey))

	// Graft context A's message for participant 1 onto a round for
	// participant 2 running under context B: R and s were bound to
	// context A, so verification must fail.
	machinesC, err := newMachines(group, n, thresh, "frost-keygen-test/context-b", 6000)
	require.NoError(t, err)
	round1C := make(map[uint16][]byte, n)
	for i, m := range machinesC {
		msg, genErr := m.GenerateCoefficients()
		require.NoError(t, genErr)
		round1C[i] = msg
	}

	machinesAFresh, err := newMachines(group, n, thresh, "frost-keygen-test/context-a", 5000)
	require.NoError(t, err)
	foreignMsg, err := machinesAFresh[1].GenerateCoefficients()
	require.NoError(t, err)
	round1C[1] = foreignMsg

	_, err = machinesC[2].GenerateSecretShares(without(round1C, 2))
	require.Error(t, err)

	var kerr *frost.KeygenError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, frost.KindInvalidProofOfKnowledge, kerr.Kind)
	assert.Equal(t, uint16(1), kerr.Index)
}

// TestStateMachineDiscipline covers spec.md §8 scenario 6: invoking a
// round out of order returns InvalidKeyGenTransition and leaves state
// unchanged.
func TestStateMachineDiscipline(t *testing.T) {
	group := curve.Ristretto255{}
	params, err := frost.NewParams(4, 2, 1)
	require.NoError(t, err)

	m := keygen.New(detRNG(7000), group, params, "frost-keygen-test/discipline")
	require.Equal(t, keygen.Fresh, m.State())

	_, err = m.GenerateSecretShares(map[uint16][]byte{2: {}, 3: {}, 4: {}})
	require.Error(t, err)

	var kerr *frost.KeygenError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, frost.KindInvalidKeyGenTransition, kerr.Kind)
	assert.Equal(t, keygen.GeneratedCoefficients.String(), kerr.Expected)
	assert.Equal(t, keygen.Fresh.String(), kerr.Actual)
	assert.Equal(t, keygen.Fresh, m.State())

	_, err = m.Complete(map[uint16][]byte{2: {}, 3: {}, 4: {}})
	require.Error(t, err)
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, frost.KindInvalidKeyGenTransition, kerr.Kind)
	assert.Equal(t, keygen.Fresh, m.State())
}

// TestMapValidation covers spec.md §8's map-validation property: omitting
// or duplicating a participant index is rejected with the corresponding
// error.
func TestMapValidation(t *testing.T) {
	group := curve.Ristretto255{}
	params, err := frost.NewParams(4, 2, 1)
	require.NoError(t, err)

	m := keygen.New(detRNG(8000), group, params, "frost-keygen-test/map-validation")
	_, err = m.GenerateCoefficients()
	require.NoError(t, err)

	t.Run("missing participant", func(t *testing.T) {
		_, err := m.GenerateSecretShares(map[uint16][]byte{2: {}, 3: {}})
		require.Error(t, err)
		var kerr *frost.KeygenError
		require.ErrorAs(t, err, &kerr)
		assert.Equal(t, frost.KindMissingParticipant, kerr.Kind)
		assert.Equal(t, uint16(4), kerr.Index)
	})

	t.Run("duplicated local index", func(t *testing.T) {
		_, err := m.GenerateSecretShares(map[uint16][]byte{1: {}, 2: {}, 3: {}, 4: {}})
		require.Error(t, err)
		var kerr *frost.KeygenError
		require.ErrorAs(t, err, &kerr)
		assert.Equal(t, frost.KindDuplicatedIndex, kerr.Kind)
		assert.Equal(t, uint16(1), kerr.Index)
	})
}
