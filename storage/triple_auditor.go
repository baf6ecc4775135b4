package storage

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/aquarelle-tech/smc/ttp"
)

// TripleAuditor mirrors every Beaver triple the dealer generates into a
// Store, keyed by operation id, purely for post-run inspection. It is never
// consulted during a protocol run: the dealer's in-memory map remains the
// sole source of truth and the sole place atomicity is enforced.
type TripleAuditor struct {
	store Store
	log   zerolog.Logger
}

// NewTripleAuditor wraps store as a ttp.Auditor.
func NewTripleAuditor(store Store, log zerolog.Logger) *TripleAuditor {
	return &TripleAuditor{store: store, log: log.With().Str("component", "triple_auditor").Logger()}
}

// RecordTriple implements ttp.Auditor.
func (a *TripleAuditor) RecordTriple(opID string, t ttp.Triple) {
	b, err := json.Marshal(t)
	if err != nil {
		a.log.Error().Err(err).Str("op_id", opID).Msg("failed to marshal triple for audit log")
		return
	}
	if err := a.store.Put("triple_"+opID, b); err != nil {
		a.log.Error().Err(err).Str("op_id", opID).Msg("failed to persist triple audit record")
	}
}
