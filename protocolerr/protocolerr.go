// Package protocolerr defines the programming-error class: mistakes
// in how the protocol is driven (Share*Share reaching local arithmetic,
// duplicate Secret ids, a Secret nobody owns, a missing share at eval time).
// These are not transport failures and are never retried; they abort the
// party's run with a single diagnostic.
package protocolerr

import "fmt"

// Kind enumerates the protocol violations a party's run can hit.
type Kind int

const (
	// ShareTimesShare is raised when Share*Share is attempted outside the
	// Beaver multiplication sub-protocol.
	ShareTimesShare Kind = iota
	// DuplicateSecretID is raised when two Secret nodes in one expression
	// share an ExprID.
	DuplicateSecretID
	// UnownedSecret names a Secret that appears in the expression with no
	// participant's ValueDict providing a value for it. No code in this
	// module returns this kind: a party holds only its own ValueDict, and for
	// an unowned Secret it keeps waiting in RetrievePrivate for a share that
	// never arrives.
	UnownedSecret
	// MissingShare is raised when the evaluator looks up a Secret's share
	// in the share table and finds nothing there.
	MissingShare
	// DealerExhausted is raised by the TTP when it is asked for a triple
	// with no participants registered.
	DealerExhausted
)

func (k Kind) String() string {
	switch k {
	case ShareTimesShare:
		return "share*share outside multiplication sub-protocol"
	case DuplicateSecretID:
		return "duplicate secret id in expression"
	case UnownedSecret:
		return "secret has no owning participant"
	case MissingShare:
		return "missing share in share table"
	case DealerExhausted:
		return "no participant registered with dealer"
	default:
		return "protocol violation"
	}
}

// Error is a fatal protocol-misuse diagnostic.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("protocol violation (%s): %s", e.Kind, e.Message)
}

// New constructs a protocol Error.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
