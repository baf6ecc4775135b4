// Package expr implements the arithmetic expression algebra: an immutable
// tree of Secret, Scalar, Add and Mul nodes, each stable-identified so every
// party's copy of the tree agrees on node identity even though parties run
// in separate processes.
package expr

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/aquarelle-tech/smc/protocolerr"
)

// idBytes is the number of random bytes backing an ID, matching the
// reference implementation's 4-byte identifiers.
const idBytes = 4

// ID is a stable identifier for one expression node. It is rendered as
// base64 so it can be embedded directly into transport labels and JSON.
type ID string

// NewID generates a fresh random identifier. Called once, at construction
// time, by whichever party builds the shared expression; every other party
// must load the resulting tree rather than build its own.
func NewID() ID {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is not something a run can recover from.
		panic("expr: failed to generate id: " + err.Error())
	}
	return ID(base64.StdEncoding.EncodeToString(buf))
}

// Kind distinguishes the four node variants for serialisation and for the
// evaluator's dispatch.
type Kind string

const (
	KindSecret Kind = "secret"
	KindScalar Kind = "scalar"
	KindAdd    Kind = "add"
	KindMul    Kind = "mul"
)

// Node is one node of the expression tree. All four variants are
// represented by the same struct (tagged by Kind) so the tree can be
// marshalled as one JSON shape for ProtocolSpec distribution; Left/Right are
// nil for leaves and Value is meaningless for Add/Mul.
type Node struct {
	ID    ID    `json:"id"`
	Kind  Kind  `json:"kind"`
	Value int64 `json:"value,omitempty"`
	Left  *Node `json:"left,omitempty"`
	Right *Node `json:"right,omitempty"`
}

// Secret constructs a placeholder for one party's private input. The node
// carries no integer value: per the design notes, a Secret's value lives
// only in its owner's ValueDict, keyed by this ID.
func Secret() *Node {
	return &Node{ID: NewID(), Kind: KindSecret}
}

// Scalar constructs a public literal.
func Scalar(value int64) *Node {
	return &Node{ID: NewID(), Kind: KindScalar, Value: value}
}

// Add constructs an addition of two sub-expressions.
func Add(left, right *Node) *Node {
	return &Node{ID: NewID(), Kind: KindAdd, Left: left, Right: right}
}

// Sub constructs a-b as Add(a, Mul(b, Scalar(-1))), matching the reference
// implementation's desugaring of subtraction (there is no dedicated Sub
// node kind).
func Sub(left, right *Node) *Node {
	return Add(left, Mul(right, Scalar(-1)))
}

// Mul constructs a multiplication of two sub-expressions.
func Mul(left, right *Node) *Node {
	return &Node{ID: NewID(), Kind: KindMul, Left: left, Right: right}
}

// CountSecrets returns the number of Secret leaves in expr; a Secret node
// reached at several places is counted once per place.
func CountSecrets(n *Node) int {
	switch n.Kind {
	case KindAdd, KindMul:
		return CountSecrets(n.Left) + CountSecrets(n.Right)
	case KindSecret:
		return 1
	default:
		return 0
	}
}

// CollectSecretIDs returns, in traversal order, the ID of every Secret leaf
// in expr.
func CollectSecretIDs(n *Node) []ID {
	switch n.Kind {
	case KindAdd, KindMul:
		return append(CollectSecretIDs(n.Left), CollectSecretIDs(n.Right)...)
	case KindSecret:
		return []ID{n.ID}
	default:
		return nil
	}
}

// ValidateSecretIDsUnique walks expr and returns an error naming the first
// Secret ID it finds on two distinct Secret nodes. The same Secret node
// reached at several places in the tree (a secret used more than once) is
// not a duplicate. Parties should run this once against a freshly loaded
// ProtocolSpec before starting a run.
func ValidateSecretIDsUnique(n *Node) error {
	seen := make(map[ID]*Node)
	var walk func(m *Node) error
	walk = func(m *Node) error {
		switch m.Kind {
		case KindAdd, KindMul:
			if err := walk(m.Left); err != nil {
				return err
			}
			return walk(m.Right)
		case KindSecret:
			if prev, ok := seen[m.ID]; ok && prev != m {
				return protocolerr.New(protocolerr.DuplicateSecretID, "secret id %q appears twice in expression", m.ID)
			}
			seen[m.ID] = m
		}
		return nil
	}
	return walk(n)
}
