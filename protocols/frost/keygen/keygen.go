// Package keygen drives the Feldman-VSS distributed key generation core
// in pkg/frost through its single legal traversal
// Fresh -> GeneratedCoefficients -> GeneratedSecretShares -> Complete.
//
// The round logic itself is pure (pkg/frost); this package's only job is
// enforcing the linear transition and owning the transient secrets that
// live between rounds, per spec.md §4.6 and §9.
package keygen

import (
	"io"

	"github.com/luxfi/frost-keygen/pkg/frost"
	"github.com/luxfi/frost-keygen/pkg/math/curve"
)

// State is one of the four states spec.md §4.6 names.
type State int

const (
	Fresh State = iota
	GeneratedCoefficients
	GeneratedSecretShares
	Complete
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "Fresh"
	case GeneratedCoefficients:
		return "GeneratedCoefficients"
	case GeneratedSecretShares:
		return "GeneratedSecretShares"
	case Complete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Machine is a single participant's DKG state machine. It is not safe for
// concurrent use: a single instance holds mutable state and does not
// internally synchronize, matching spec.md §5. Independent Machines for
// independent DKG instances are fully independent and may run on separate
// goroutines.
type Machine struct {
	rng     io.Reader
	group   curve.Curve
	params  frost.Params
	context string

	state State

	// Transient slots, populated on entry to their producing round and
	// taken (zeroed) by their consuming round. No slot is readable after
	// its consumer runs.
	coefficients    []curve.Scalar
	ourMessage      []byte
	secret          curve.Scalar
	peerCommitments map[uint16][]curve.Point
}

// New constructs a fresh Machine for the given local parameters. context
// must be unique across every DKG instance sharing group, per spec.md §6.
func New(rng io.Reader, group curve.Curve, params frost.Params, context string) *Machine {
	return &Machine{rng: rng, group: group, params: params, context: context, state: Fresh}
}

// State reports the machine's current state.
func (m *Machine) State() State { return m.state }

// Params returns the machine's local parameters.
func (m *Machine) Params() frost.Params { return m.params }

func transitionError(expected, actual State) error {
	return &frost.KeygenError{
		Kind:     frost.KindInvalidKeyGenTransition,
		Expected: expected.String(),
		Actual:   actual.String(),
	}
}

// GenerateCoefficients runs spec.md §4.2: sample this participant's secret
// polynomial, commit to its coefficients, and prove knowledge of the
// constant term. It is legal only from Fresh, and advances the machine to
// GeneratedCoefficients.
//
// The returned bytes are this participant's round-1 broadcast message, to
// be sent to every other participant on an authenticated, single-delivery
// channel (spec.md §6).
func (m *Machine) GenerateCoefficients() ([]byte, error) {
	if m.state != Fresh {
		return nil, transitionError(Fresh, m.state)
	}

	out, err := frost.Round1Emit(m.rng, m.group, m.params, m.context)
	if err != nil {
		return nil, err
	}

	m.coefficients = out.Coefficients
	m.ourMessage = out.Message
	m.state = GeneratedCoefficients
	return out.Message, nil
}

// GenerateSecretShares runs spec.md §4.3 and §4.4: batch-verify every
// peer's round-1 proof of knowledge, then evaluate this participant's
// secret polynomial at every other participant's index. It is legal only
// from GeneratedCoefficients, and advances the machine to
// GeneratedSecretShares.
//
// peerMsgs must cover every participant index except the local one — the
// local entry is filled in from the message GenerateCoefficients returned.
// Supplying the local index is rejected as DuplicatedIndex, since a caller
// doing so has misunderstood who owns that slot; omitting any other index
// is rejected as MissingParticipant.
//
// The returned map holds the outgoing share for every recipient l != i;
// callers must encrypt each share before unicasting it to participant l
// (spec.md §6).
func (m *Machine) GenerateSecretShares(peerMsgs map[uint16][]byte) (map[uint16][]byte, error) {
	if m.state != GeneratedCoefficients {
		return nil, transitionError(GeneratedCoefficients, m.state)
	}

	full, err := withLocalEntry(m.params, peerMsgs, m.ourMessage)
	if err != nil {
		return nil, err
	}

	out, err := frost.Round2Share(m.rng, m.group, m.params, m.context, m.coefficients, m.ourMessage, full)
	if err != nil {
		return nil, err
	}

	m.coefficients = nil
	m.ourMessage = nil
	m.peerCommitments = out.PeerCommitments
	m.secret = out.OwnSeed
	m.state = GeneratedSecretShares
	return out.Shares, nil
}

// Complete runs spec.md §4.5: verify every received share against its
// sender's Feldman commitments, then derive the final secret share, the
// group public key, and every participant's verification share. It is
// legal only from GeneratedSecretShares, and advances the machine to
// Complete, its terminal state.
//
// peerShares must cover every participant index except the local one — the
// local entry is filled in from this participant's own retained evaluation.
func (m *Machine) Complete(peerShares map[uint16][]byte) (frost.Keys, error) {
	if m.state != GeneratedSecretShares {
		return frost.Keys{}, transitionError(GeneratedSecretShares, m.state)
	}

	full, err := withLocalEntry(m.params, peerShares, m.secret.Bytes())
	if err != nil {
		return frost.Keys{}, err
	}

	keys, err := frost.Round2Finish(m.group, m.params, m.secret, m.peerCommitments, full)
	if err != nil {
		return frost.Keys{}, err
	}

	m.secret = nil
	m.peerCommitments = nil
	m.state = Complete
	return keys, nil
}

// withLocalEntry inserts the local participant's own contribution into a
// caller-supplied peer map, rejecting a map that already contains the
// local slot as DuplicatedIndex, per spec.md §5's "the driver inserts it"
// convention. Missing indices are left for the pkg/frost round functions
// to report.
func withLocalEntry(params frost.Params, peerMsgs map[uint16][]byte, local []byte) (map[uint16][]byte, error) {
	if _, ok := peerMsgs[params.I()]; ok {
		return nil, &frost.KeygenError{Kind: frost.KindDuplicatedIndex, Index: params.I()}
	}
	full := make(map[uint16][]byte, len(peerMsgs)+1)
	for l, b := range peerMsgs {
		full[l] = b
	}
	full[params.I()] = local
	return full, nil
}
