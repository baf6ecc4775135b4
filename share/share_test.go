package share_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/share"
)

func TestShareAddSub(t *testing.T) {
	field.Modulus = 2003
	a := share.NewShare(field.New(1000))
	b := share.NewShare(field.New(1500))

	assert.Equal(t, share.NewShare(field.New(2500)), a.Add(b))
	assert.Equal(t, share.NewShare(field.New(1000-1500)), a.Sub(b))
}

func TestShareMulConstant(t *testing.T) {
	field.Modulus = 2003
	s := share.NewShare(field.New(14))
	k := share.NewConstant(field.New(2))

	assert.Equal(t, share.NewShare(field.New(28)), s.MulConstant(k))
}

// TestAddConstantLeaderOnly verifies that only the leader absorbs the
// public constant when adding/subtracting it to/from a Share.
func TestAddConstantLeaderOnly(t *testing.T) {
	field.Modulus = 2003
	s := share.NewShare(field.New(14))
	k := share.NewConstant(field.New(10))

	assert.Equal(t, share.NewShare(field.New(24)), s.AddConstant(k, true))
	assert.Equal(t, share.NewShare(field.New(14)), s.AddConstant(k, false))

	assert.Equal(t, share.NewShare(field.New(4)), s.SubConstant(k, true))
	assert.Equal(t, share.NewShare(field.New(14)), s.SubConstant(k, false))
}

func TestConstantMinusShareNegatesForNonLeader(t *testing.T) {
	field.Modulus = 2003
	s := share.NewShare(field.New(14))
	k := share.NewConstant(field.New(10))

	assert.Equal(t, share.NewShare(field.New(10-14)), share.ConstantSubShare(k, s, true))
	assert.Equal(t, share.NewShare(field.New(-14)), share.ConstantSubShare(k, s, false))
}

func TestConstantAlgebra(t *testing.T) {
	field.Modulus = 2003
	a := share.NewConstant(field.New(5))
	b := share.NewConstant(field.New(7))

	assert.Equal(t, share.NewConstant(field.New(12)), a.Add(b))
	assert.Equal(t, share.NewConstant(field.New(-2)), a.Sub(b))
	assert.Equal(t, share.NewConstant(field.New(35)), a.Mul(b))
}

func TestAssertNotShareTimesShareReturnsProtocolError(t *testing.T) {
	err := share.AssertNotShareTimesShare()
	assert.Error(t, err)
}
