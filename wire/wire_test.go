package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquarelle-tech/smc/expr"
	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/share"
	"github.com/aquarelle-tech/smc/wire"
)

func TestMessageRoundTrip(t *testing.T) {
	m := wire.Message{Value: 1004}
	b, err := wire.Marshal(m)
	require.NoError(t, err)

	got, err := wire.UnmarshalMessage(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestShareMessageRoundTrip(t *testing.T) {
	field.Modulus = 2003
	m := wire.ShareMessage{ID: "abcd==", Share: share.NewShare(field.New(42))}
	b, err := wire.Marshal(m)
	require.NoError(t, err)

	got, err := wire.UnmarshalShareMessage(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestResultShareMessageRoundTrip(t *testing.T) {
	field.Modulus = 2003
	m := wire.ResultShareMessage{Share: share.NewShare(field.New(7))}
	b, err := wire.Marshal(m)
	require.NoError(t, err)

	got, err := wire.UnmarshalResultShareMessage(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestBeaverConstShareMessageRoundTrip(t *testing.T) {
	field.Modulus = 2003
	m := wire.BeaverConstShareMessage{
		XPart: share.NewShare(field.New(3)),
		YPart: share.NewShare(field.New(4)),
	}
	b, err := wire.Marshal(m)
	require.NoError(t, err)

	got, err := wire.UnmarshalBeaverConstShareMessage(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestBeaverConstResultMessageRoundTrip(t *testing.T) {
	m := wire.BeaverConstResultMessage{XPart: 10, YPart: 20}
	b, err := wire.Marshal(m)
	require.NoError(t, err)

	got, err := wire.UnmarshalBeaverConstResultMessage(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestLabelGrammar(t *testing.T) {
	id := expr.ID("XYZ=")
	assert.Equal(t, "Secret_Share_XYZ=", wire.SecretShareLabel(id))
	assert.Equal(t, "Result_Share_Alice", wire.ResultShareLabel("Alice"))
	assert.Equal(t, "Publish_Result", wire.PublishResultLabel())
	assert.Equal(t, "Beaver_Const_Share_XYZ=_Alice", wire.BeaverConstShareLabel(id, "Alice"))
	assert.Equal(t, "Beaver_Const_Result_XYZ=", wire.BeaverConstResultLabel(id))
}
