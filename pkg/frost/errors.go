package frost

import "fmt"

// ErrorKind classifies a KeygenError, matching the error taxonomy of
// spec.md §7.
type ErrorKind int

const (
	// KindInvalidKeyGenTransition means a state-machine method was called
	// out of order (spec.md §5 transition table).
	KindInvalidKeyGenTransition ErrorKind = iota
	// KindInvalidCommitment means a participant's round-1 commitment segment
	// could not be decoded (a round-1 message of the wrong total length
	// included), or a share it sent in round 2 did not match its Feldman
	// commitments.
	KindInvalidCommitment
	// KindInvalidProofOfKnowledge means a participant's Schnorr
	// proof-of-knowledge of their secret coefficient a_{l,0} failed to verify.
	KindInvalidProofOfKnowledge
	// KindInvalidShare means a received round-2 share was not a canonical
	// scalar encoding.
	KindInvalidShare
	// KindMissingParticipant means an expected participant index was absent
	// from an input map.
	KindMissingParticipant
	// KindDuplicatedIndex means an input map held a participant index it must
	// not hold: the local index in a map handed to the keygen driver, which
	// inserts that entry itself, or an index outside 1..=n.
	KindDuplicatedIndex
	// KindInternalError means an invariant the protocol itself should
	// guarantee was violated — e.g. a batched verification failed but every
	// individual proof of knowledge verified (see spec.md §4.3).
	KindInternalError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidKeyGenTransition:
		return "invalid key generation transition"
	case KindInvalidCommitment:
		return "invalid commitment"
	case KindInvalidProofOfKnowledge:
		return "invalid proof of knowledge"
	case KindInvalidShare:
		return "invalid share"
	case KindMissingParticipant:
		return "missing participant"
	case KindDuplicatedIndex:
		return "duplicated index"
	case KindInternalError:
		return "internal error"
	default:
		return "unknown error"
	}
}

// KeygenError is the single error type the pkg/frost round functions and
// the protocols/frost/keygen state machine return. Index carries the
// offending participant's 1-based index for the per-participant Kinds
// (zero when not applicable); Message carries free-form detail for
// KindInternalError.
type KeygenError struct {
	Kind    ErrorKind
	Index   uint16
	Message string

	// Expected and Actual carry the state-machine states for
	// KindInvalidKeyGenTransition. They are plain strings rather than the
	// protocols/frost/keygen.State type so this package does not import its
	// own consumer.
	Expected string
	Actual   string
}

func (e *KeygenError) Error() string {
	switch {
	case e.Kind == KindInvalidKeyGenTransition:
		return fmt.Sprintf("frost: %s: expected state %s, was in state %s", e.Kind, e.Expected, e.Actual)
	case e.Message != "":
		return fmt.Sprintf("frost: %s: %s", e.Kind, e.Message)
	case e.Index != 0:
		return fmt.Sprintf("frost: %s: participant %d", e.Kind, e.Index)
	default:
		return fmt.Sprintf("frost: %s", e.Kind)
	}
}

// Is lets errors.Is(err, ErrInvalidShare) etc. match on Kind alone,
// ignoring Index and Message, the way *os.PathError matches on Op/Path-less
// sentinels.
func (e *KeygenError) Is(target error) bool {
	t, ok := target.(*KeygenError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel KeygenErrors for use with errors.Is. Callers needing the
// offending index should type-assert the returned error to *KeygenError
// instead.
var (
	ErrInvalidKeyGenTransition = &KeygenError{Kind: KindInvalidKeyGenTransition}
	ErrInvalidCommitment       = &KeygenError{Kind: KindInvalidCommitment}
	ErrInvalidProofOfKnowledge = &KeygenError{Kind: KindInvalidProofOfKnowledge}
	ErrInvalidShare            = &KeygenError{Kind: KindInvalidShare}
	ErrMissingParticipant      = &KeygenError{Kind: KindMissingParticipant}
	ErrDuplicatedIndex         = &KeygenError{Kind: KindDuplicatedIndex}
	ErrInternalError           = &KeygenError{Kind: KindInternalError}
)
