// Package protocol defines Spec, the data every party agrees on
// before a run starts: the shared expression tree and the sorted list
// of participant ids whose first element is the leader.
package protocol

import (
	"encoding/json"
	"sort"

	"github.com/aquarelle-tech/smc/expr"
)

// Spec is what all parties agree on before starting a run. Once built it
// must not change: every party loads the identical Expr and the
// identical, already-sorted ParticipantIDs.
type Spec struct {
	Expr           *expr.Node `json:"expr"`
	ParticipantIDs []string   `json:"participant_ids"`
}

// New constructs a Spec, sorting participantIDs so the leader (index 0) is
// deterministic across every party that loads this Spec.
func New(root *expr.Node, participantIDs []string) *Spec {
	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)
	return &Spec{Expr: root, ParticipantIDs: ids}
}

// Leader returns the lexicographically-smallest participant id.
func (s *Spec) Leader() string {
	return s.ParticipantIDs[0]
}

// IsLeader reports whether clientID is this run's leader.
func (s *Spec) IsLeader(clientID string) bool {
	return clientID == s.Leader()
}

// OtherParticipants returns every participant id except clientID.
func (s *Spec) OtherParticipants(clientID string) []string {
	others := make([]string, 0, len(s.ParticipantIDs)-1)
	for _, id := range s.ParticipantIDs {
		if id != clientID {
			others = append(others, id)
		}
	}
	return others
}

// NumParticipants is the total party count N.
func (s *Spec) NumParticipants() int {
	return len(s.ParticipantIDs)
}

// Marshal serialises the Spec (expression tree included) so every party can
// load a byte-identical copy.
func (s *Spec) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal parses a Spec previously produced by Marshal. It does not
// re-sort ParticipantIDs: the whole point is that every party loads the
// exact bytes the driver produced.
func Unmarshal(b []byte) (*Spec, error) {
	var s Spec
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
