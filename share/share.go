// Package share implements the two value kinds that flow through the
// expression evaluator: Share, a party's additive portion of a secret, and
// Constant, a publicly known field element. Their algebra is simple:
// Share+Share, Share-Share and Share*Constant are local operations;
// Share*Share is rejected here and must be routed through the Beaver
// sub-protocol one layer up.
package share

import (
	"fmt"

	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/protocolerr"
)

// Share is one party's additive portion of some secret.
type Share struct {
	Value field.Element `json:"value"`
}

// Constant is a field element known identically to every party.
type Constant struct {
	Value field.Element `json:"value"`
}

// NewShare wraps a raw element as a Share.
func NewShare(v field.Element) Share {
	return Share{Value: v}
}

// NewConstant wraps a raw element as a Constant.
func NewConstant(v field.Element) Constant {
	return Constant{Value: v}
}

func (s Share) String() string {
	return fmt.Sprintf("Share(%d)", s.Value)
}

func (c Constant) String() string {
	return fmt.Sprintf("Constant(%d)", c.Value)
}

// Add adds two Shares locally.
func (s Share) Add(o Share) Share {
	return Share{Value: field.Add(s.Value, o.Value)}
}

// Sub subtracts two Shares locally.
func (s Share) Sub(o Share) Share {
	return Share{Value: field.Sub(s.Value, o.Value)}
}

// MulConstant scales a Share by a public Constant; every party performs the
// same local multiplication.
func (s Share) MulConstant(k Constant) Share {
	return Share{Value: field.Mul(s.Value, k.Value)}
}

// MulShare is intentionally absent: Share*Share is not a local operation.
// Evaluators must detect the both-operands-are-Share case themselves and
// invoke the Beaver multiplication sub-protocol instead of calling into
// this package. AssertNotShareTimesShare exists for callers (and tests)
// that want to turn the mistake into the designated protocol-violation
// error rather than silently doing the wrong arithmetic.
func AssertNotShareTimesShare() error {
	return protocolerr.New(protocolerr.ShareTimesShare, "share*share is not a local operation; use the Beaver sub-protocol")
}

// AddConstant implements Share+Constant: only the leader absorbs the public
// term; everyone else passes its Share through unchanged, so the sum of
// every party's share still reconstructs to the right total.
func (s Share) AddConstant(k Constant, isLeader bool) Share {
	if !isLeader {
		return s
	}
	return Share{Value: field.Add(s.Value, k.Value)}
}

// SubConstant implements Share-Constant: leader subtracts, everyone else
// passes through.
func (s Share) SubConstant(k Constant, isLeader bool) Share {
	if !isLeader {
		return s
	}
	return Share{Value: field.Sub(s.Value, k.Value)}
}

// ConstantAddShare implements Constant+Share: same absorption rule, order
// of operands does not change which party absorbs the public term.
func ConstantAddShare(k Constant, s Share, isLeader bool) Share {
	if !isLeader {
		return s
	}
	return Share{Value: field.Add(k.Value, s.Value)}
}

// ConstantSubShare implements Constant-Share. Non-leaders must negate their
// own share, since Constant-Share is not commutative: the leader computes
// k-s, a non-leader's contribution to that same sum must become -s.
func ConstantSubShare(k Constant, s Share, isLeader bool) Share {
	if !isLeader {
		return Share{Value: field.Neg(s.Value)}
	}
	return Share{Value: field.Sub(k.Value, s.Value)}
}

// Add combines two Constants (publicly known, so identical on every party).
func (c Constant) Add(o Constant) Constant {
	return Constant{Value: field.Add(c.Value, o.Value)}
}

// Sub subtracts two Constants.
func (c Constant) Sub(o Constant) Constant {
	return Constant{Value: field.Sub(c.Value, o.Value)}
}

// Mul multiplies two Constants.
func (c Constant) Mul(o Constant) Constant {
	return Constant{Value: field.Mul(c.Value, o.Value)}
}
