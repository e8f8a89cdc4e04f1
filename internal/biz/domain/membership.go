package domain

// MembershipResult is the outcome of resolving "is the operator a
// member of guild G". Every outcome other than MembershipFound is
// reduced to "not watched": lookups fail closed, never open.
type MembershipResult string

const (
	MembershipFound          MembershipResult = "found"
	MembershipNotFound       MembershipResult = "not_found"
	MembershipDenied         MembershipResult = "denied"
	MembershipTransportError MembershipResult = "transport_error"
)

// Confirmed reports whether the result proves membership.
func (r MembershipResult) Confirmed() bool {
	return r == MembershipFound
}
