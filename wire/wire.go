// Package wire defines the serialised records and label grammar that cross
// process boundaries. Field names must not be renamed casually, since
// every party and the dealer parse them by name.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/aquarelle-tech/smc/expr"
	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/share"
)

// Label prefixes, used verbatim (exact match required by the broker).
const (
	secretSharePrefix      = "Secret_Share_"
	resultSharePrefix      = "Result_Share_"
	publishResultLabel     = "Publish_Result"
	beaverConstSharePrefix = "Beaver_Const_Share_"
	beaverConstResultPref  = "Beaver_Const_Result_"
)

// SecretShareLabel addresses one party's Share of one secret.
func SecretShareLabel(secretID expr.ID) string {
	return secretSharePrefix + string(secretID)
}

// ResultShareLabel addresses a non-leader's final Share, private to the
// leader.
func ResultShareLabel(senderClientID string) string {
	return resultSharePrefix + senderClientID
}

// PublishResultLabel is the leader's broadcast of the reconstructed answer.
func PublishResultLabel() string {
	return publishResultLabel
}

// BeaverConstShareLabel addresses a non-leader's (d_i, e_i) for one Mul
// operation, private to the leader.
func BeaverConstShareLabel(opID expr.ID, senderClientID string) string {
	return fmt.Sprintf("%s%s_%s", beaverConstSharePrefix, opID, senderClientID)
}

// BeaverConstResultLabel is the leader's broadcast of (d, e) for one Mul
// operation.
func BeaverConstResultLabel(opID expr.ID) string {
	return beaverConstResultPref + string(opID)
}

// Message carries a single public field element, e.g. the final result.
type Message struct {
	Value int64 `json:"value"`
}

// ShareMessage carries one party's Share of one secret, by id.
type ShareMessage struct {
	ID    string      `json:"id"`
	Share share.Share `json:"share"`
}

// ResultShareMessage carries a non-leader's final result Share.
type ResultShareMessage struct {
	Share share.Share `json:"share"`
}

// BeaverConstShareMessage carries a non-leader's masked-value shares
// (d_i, e_i) for one Mul operation.
type BeaverConstShareMessage struct {
	XPart share.Share `json:"x_part"`
	YPart share.Share `json:"y_part"`
}

// BeaverConstResultMessage carries the leader's reconstructed (d, e) pair
// for one Mul operation.
type BeaverConstResultMessage struct {
	XPart int64 `json:"x_part"`
	YPart int64 `json:"y_part"`
}

// Marshal serialises any of the above records to JSON bytes.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// UnmarshalMessage parses a Message.
func UnmarshalMessage(b []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(b, &m)
	return m, err
}

// UnmarshalShareMessage parses a ShareMessage.
func UnmarshalShareMessage(b []byte) (ShareMessage, error) {
	var m ShareMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// UnmarshalResultShareMessage parses a ResultShareMessage.
func UnmarshalResultShareMessage(b []byte) (ResultShareMessage, error) {
	var m ResultShareMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// UnmarshalBeaverConstShareMessage parses a BeaverConstShareMessage.
func UnmarshalBeaverConstShareMessage(b []byte) (BeaverConstShareMessage, error) {
	var m BeaverConstShareMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// UnmarshalBeaverConstResultMessage parses a BeaverConstResultMessage.
func UnmarshalBeaverConstResultMessage(b []byte) (BeaverConstResultMessage, error) {
	var m BeaverConstResultMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// FieldElementFromInt64 is a small helper for constructing a Share/Constant
// payload from a plain integer at the call sites that receive one over the
// wire (e.g. BeaverConstResultMessage, whose fields are plain ints, not
// nested Share objects).
func FieldElementFromInt64(v int64) field.Element {
	return field.New(v)
}
