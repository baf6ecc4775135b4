package party

import (
	"fmt"

	"github.com/aquarelle-tech/smc/expr"
	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/protocolerr"
	"github.com/aquarelle-tech/smc/share"
)

// value is the tagged result of evaluating one expression node: either a
// Share (a party's additive portion of something secret-derived) or a
// Constant (a public field element).
type value struct {
	isShare  bool
	share    share.Share
	constant share.Constant
}

func shareValue(s share.Share) value {
	return value{isShare: true, share: s}
}

func constantValue(c share.Constant) value {
	return value{isShare: false, constant: c}
}

// evaluate performs a post-order traversal of the expression tree. It is
// deterministic given the same tree, the same share table and the same
// Beaver triple responses; the only I/O happens inside beaverMultiply, one
// level below.
func (p *Party) evaluate(n *expr.Node, shares map[expr.ID]share.Share) (value, error) {
	switch n.Kind {
	case expr.KindScalar:
		return constantValue(share.NewConstant(field.New(n.Value))), nil

	case expr.KindSecret:
		s, ok := shares[n.ID]
		if !ok {
			return value{}, protocolerr.New(protocolerr.MissingShare, "no share on hand for secret %q", n.ID)
		}
		return shareValue(s), nil

	case expr.KindAdd:
		left, err := p.evaluate(n.Left, shares)
		if err != nil {
			return value{}, err
		}
		right, err := p.evaluate(n.Right, shares)
		if err != nil {
			return value{}, err
		}
		return p.combineAdd(left, right)

	case expr.KindMul:
		left, err := p.evaluate(n.Left, shares)
		if err != nil {
			return value{}, err
		}
		right, err := p.evaluate(n.Right, shares)
		if err != nil {
			return value{}, err
		}
		if left.isShare && right.isShare {
			result, err := p.beaverMultiply(n.ID, left.share, right.share)
			if err != nil {
				return value{}, err
			}
			return shareValue(result), nil
		}
		return p.combineMul(left, right)

	default:
		return value{}, fmt.Errorf("party: unrecognised expression node kind %q", n.Kind)
	}
}

// combineAdd implements Add for every pairing of Share/Constant operands.
func (p *Party) combineAdd(left, right value) (value, error) {
	switch {
	case left.isShare && right.isShare:
		return shareValue(left.share.Add(right.share)), nil
	case left.isShare && !right.isShare:
		return shareValue(left.share.AddConstant(right.constant, p.IsLeader())), nil
	case !left.isShare && right.isShare:
		return shareValue(share.ConstantAddShare(left.constant, right.share, p.IsLeader())), nil
	default:
		return constantValue(left.constant.Add(right.constant)), nil
	}
}

// combineMul implements Mul for the operand pairings that do not require
// the Beaver sub-protocol (that case is intercepted in evaluate before this
// is called).
func (p *Party) combineMul(left, right value) (value, error) {
	switch {
	case left.isShare && !right.isShare:
		return shareValue(left.share.MulConstant(right.constant)), nil
	case !left.isShare && right.isShare:
		return shareValue(right.share.MulConstant(left.constant)), nil
	case !left.isShare && !right.isShare:
		return constantValue(left.constant.Mul(right.constant)), nil
	default:
		// Unreachable: evaluate() intercepts Share*Share before calling us.
		return value{}, share.AssertNotShareTimesShare()
	}
}
