// Package party implements the SMC orchestrator: the client that
// distributes its own input shares, collects everyone else's, evaluates the
// shared expression (running the Beaver sub-protocol at every secret×secret
// Mul), and finally reconstructs and publishes the result.
package party

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aquarelle-tech/smc/expr"
	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/protocol"
	"github.com/aquarelle-tech/smc/protocolerr"
	"github.com/aquarelle-tech/smc/share"
	"github.com/aquarelle-tech/smc/sharing"
	"github.com/aquarelle-tech/smc/wire"
)

// Party is one participant's view of a single protocol run.
type Party struct {
	clientID string
	spec     *protocol.Spec
	values   ValueDict
	client   TransportClient
	log      zerolog.Logger
}

// New constructs a Party. spec.ParticipantIDs must already be sorted (see
// protocol.New); values holds only the secrets this party owns.
func New(clientID string, spec *protocol.Spec, values ValueDict, client TransportClient, log zerolog.Logger) *Party {
	return &Party{
		clientID: clientID,
		spec:     spec,
		values:   values,
		client:   client,
		log:      log.With().Str("client_id", clientID).Logger(),
	}
}

// IsLeader reports whether this party is the run's leader.
func (p *Party) IsLeader() bool {
	return p.spec.IsLeader(p.clientID)
}

// Run executes the protocol end to end and returns the reconstructed
// result, identical at every party.
func (p *Party) Run() (field.Element, error) {
	if err := expr.ValidateSecretIDsUnique(p.spec.Expr); err != nil {
		return 0, err
	}
	if err := p.client.RegisterWithDealer(); err != nil {
		return 0, fmt.Errorf("party: registering with dealer: %w", err)
	}

	personalShares, err := p.splitOwnSecrets()
	if err != nil {
		return 0, fmt.Errorf("party: splitting own secrets: %w", err)
	}

	shares, err := p.disseminatePersonalShares(personalShares)
	if err != nil {
		return 0, fmt.Errorf("party: disseminating personal shares: %w", err)
	}

	if err := p.collectSharesFromOthers(shares); err != nil {
		return 0, fmt.Errorf("party: collecting shares from other parties: %w", err)
	}

	result, err := p.evaluate(p.spec.Expr, shares)
	if err != nil {
		return 0, err
	}

	// Edge case: the whole expression evaluated to a Constant because
	// it contains no Secret at all. Every party already has this value;
	// skip reconstruction entirely.
	if !result.isShare {
		p.log.Debug().Msg("expression contains no secrets; skipping reconstruction")
		return result.constant.Value, nil
	}

	return p.reconstruct(result.share)
}

// splitOwnSecrets splits every secret this party owns into N additive
// shares, one per participant.
func (p *Party) splitOwnSecrets() (map[expr.ID][]share.Share, error) {
	n := p.spec.NumParticipants()
	out := make(map[expr.ID][]share.Share, len(p.values))
	for id, v := range p.values {
		shares, err := sharing.Split(field.New(v), n, sharing.Default)
		if err != nil {
			return nil, err
		}
		out[id] = shares
	}
	return out, nil
}

// disseminatePersonalShares keeps this party's own share of each secret it
// owns and privately sends every other share to the participant it belongs
// to, addressed by (phase tag + secret id) so delivery does not depend on
// message ordering.
func (p *Party) disseminatePersonalShares(personalShares map[expr.ID][]share.Share) (map[expr.ID]share.Share, error) {
	shares := make(map[expr.ID]share.Share, len(personalShares))

	for i, participant := range p.spec.ParticipantIDs {
		for id, perParty := range personalShares {
			s := perParty[i]
			if participant == p.clientID {
				shares[id] = s
				continue
			}
			msg := wire.ShareMessage{ID: string(id), Share: s}
			payload, err := wire.Marshal(msg)
			if err != nil {
				return nil, err
			}
			if err := p.client.SendPrivate(participant, wire.SecretShareLabel(id), payload); err != nil {
				return nil, err
			}
		}
	}

	return shares, nil
}

// collectSharesFromOthers determines which Secret ids appear in the
// expression but are not owned by this party, and blocks on receiving one
// Share for each: every Secret has exactly one owner, so every id not in
// p.values belongs to somebody else.
func (p *Party) collectSharesFromOthers(shares map[expr.ID]share.Share) error {
	for _, id := range expr.CollectSecretIDs(p.spec.Expr) {
		if _, owned := p.values[id]; owned {
			continue
		}
		if _, already := shares[id]; already {
			continue
		}

		payload, err := p.client.RetrievePrivate(wire.SecretShareLabel(id))
		if err != nil {
			return err
		}
		msg, err := wire.UnmarshalShareMessage(payload)
		if err != nil {
			return err
		}
		if expr.ID(msg.ID) != id {
			return protocolerr.New(protocolerr.MissingShare, "received share labelled %q while expecting %q", msg.ID, id)
		}
		shares[id] = msg.Share
	}
	return nil
}

// reconstruct runs the final phase of a run: non-leaders forward their final
// result Share to the leader and then poll for the public result; the
// leader sums every Share (including its own) and broadcasts the answer.
func (p *Party) reconstruct(finalShare share.Share) (field.Element, error) {
	if !p.IsLeader() {
		msg := wire.ResultShareMessage{Share: finalShare}
		payload, err := wire.Marshal(msg)
		if err != nil {
			return 0, err
		}
		if err := p.client.SendPrivate(p.spec.Leader(), wire.ResultShareLabel(p.clientID), payload); err != nil {
			return 0, err
		}

		payload, err = p.client.RetrievePublic(p.spec.Leader(), wire.PublishResultLabel())
		if err != nil {
			return 0, err
		}
		msg2, err := wire.UnmarshalMessage(payload)
		if err != nil {
			return 0, err
		}
		return field.New(msg2.Value), nil
	}

	allShares := []share.Share{finalShare}
	for _, participant := range p.spec.OtherParticipants(p.clientID) {
		payload, err := p.client.RetrievePrivate(wire.ResultShareLabel(participant))
		if err != nil {
			return 0, err
		}
		msg, err := wire.UnmarshalResultShareMessage(payload)
		if err != nil {
			return 0, err
		}
		allShares = append(allShares, msg.Share)
	}

	result := sharing.Reconstruct(allShares)

	payload, err := wire.Marshal(wire.Message{Value: result.Int64()})
	if err != nil {
		return 0, err
	}
	if err := p.client.Publish(wire.PublishResultLabel(), payload); err != nil {
		return 0, err
	}

	return result, nil
}
