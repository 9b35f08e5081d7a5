package frost

import "github.com/luxfi/frost-keygen/pkg/math/curve"

// Keys is the output of a completed DKG run (spec.md §3, "Output Key
// Material"): this participant's long-lived secret share, the group's
// public key, and every participant's public verification share, so that
// a later signing protocol can verify partial signatures without further
// interaction.
type Keys struct {
	Params Params

	// SecretShare is this participant's long-lived Shamir share of the
	// group secret, s_i = sum_l f_l(i).
	SecretShare curve.Scalar

	// GroupKey is the group's public key, Y = G * sum_l a_{l,0}.
	GroupKey curve.Point

	// VerificationShares maps every participant index 1..=n to Y_l = G * s_l,
	// letting a signer verify any other participant's partial signature.
	VerificationShares map[uint16]curve.Point

	// Offset is reserved for downstream protocols that rerandomise the
	// shared key by a publicly known scalar. The DKG itself always leaves
	// it nil.
	Offset curve.Scalar
}
