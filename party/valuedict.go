package party

import "github.com/aquarelle-tech/smc/expr"

// ValueDict is a party's mapping from its own Secret nodes to the
// plain-integer inputs it owns: exactly one party holds each secret's
// value.
type ValueDict map[expr.ID]int64
