package party

import (
	"fmt"

	"github.com/aquarelle-tech/smc/expr"
	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/share"
	"github.com/aquarelle-tech/smc/sharing"
	"github.com/aquarelle-tech/smc/wire"
)

// beaverMultiply runs the Beaver multiplication sub-protocol for one Mul
// node, given this party's Shares x, y of its two operands. opID is the Mul
// node's ExprID, used as the deterministic key every party requests the
// same triple under.
func (p *Party) beaverMultiply(opID expr.ID, x, y share.Share) (share.Share, error) {
	a, b, c, err := p.client.RetrieveTripleShares(string(opID))
	if err != nil {
		return share.Share{}, fmt.Errorf("party: retrieving beaver triple for op %q: %w", opID, err)
	}

	d := x.Sub(a) // Share of d = x-a
	e := y.Sub(b) // Share of e = y-b

	var dOpen, eOpen field.Element
	if p.IsLeader() {
		dOpen, eOpen, err = p.reconstructMaskedValues(opID, d, e)
	} else {
		err = p.sendMaskedShares(opID, d, e)
		if err == nil {
			dOpen, eOpen, err = p.receiveMaskedValues(opID)
		}
	}
	if err != nil {
		return share.Share{}, err
	}

	// cᵢ + xᵢ·e + yᵢ·d, with the leader additionally subtracting d·e so the
	// public term is absorbed exactly once across all parties.
	term := field.Add(c.Value, field.Add(field.Mul(x.Value, eOpen), field.Mul(y.Value, dOpen)))
	if p.IsLeader() {
		term = field.Sub(term, field.Mul(dOpen, eOpen))
	}
	return share.NewShare(term), nil
}

// sendMaskedShares (non-leader, round 1) privately sends this party's
// (d_i, e_i) to the leader.
func (p *Party) sendMaskedShares(opID expr.ID, d, e share.Share) error {
	msg := wire.BeaverConstShareMessage{XPart: d, YPart: e}
	payload, err := wire.Marshal(msg)
	if err != nil {
		return fmt.Errorf("party: marshalling beaver const share: %w", err)
	}
	label := wire.BeaverConstShareLabel(opID, p.clientID)
	if err := p.client.SendPrivate(p.spec.Leader(), label, payload); err != nil {
		return fmt.Errorf("party: sending beaver const share: %w", err)
	}
	return nil
}

// reconstructMaskedValues (leader, round 1) collects every non-leader's
// (d_i, e_i), combines them with the leader's own shares, and reconstructs
// d and e as plain field elements.
func (p *Party) reconstructMaskedValues(opID expr.ID, ownD, ownE share.Share) (field.Element, field.Element, error) {
	dShares := []share.Share{ownD}
	eShares := []share.Share{ownE}

	for _, participant := range p.spec.OtherParticipants(p.clientID) {
		label := wire.BeaverConstShareLabel(opID, participant)
		payload, err := p.client.RetrievePrivate(label)
		if err != nil {
			return 0, 0, fmt.Errorf("party: retrieving beaver const share from %q: %w", participant, err)
		}
		msg, err := wire.UnmarshalBeaverConstShareMessage(payload)
		if err != nil {
			return 0, 0, fmt.Errorf("party: parsing beaver const share from %q: %w", participant, err)
		}
		dShares = append(dShares, msg.XPart)
		eShares = append(eShares, msg.YPart)
	}

	d := sharing.Reconstruct(dShares)
	e := sharing.Reconstruct(eShares)

	result := wire.BeaverConstResultMessage{XPart: d.Int64(), YPart: e.Int64()}
	payload, err := wire.Marshal(result)
	if err != nil {
		return 0, 0, fmt.Errorf("party: marshalling beaver const result: %w", err)
	}
	if err := p.client.Publish(wire.BeaverConstResultLabel(opID), payload); err != nil {
		return 0, 0, fmt.Errorf("party: publishing beaver const result: %w", err)
	}

	return d, e, nil
}

// receiveMaskedValues (non-leader, round 2) fetches the leader's broadcast
// (d, e) for opID.
func (p *Party) receiveMaskedValues(opID expr.ID) (field.Element, field.Element, error) {
	payload, err := p.client.RetrievePublic(p.spec.Leader(), wire.BeaverConstResultLabel(opID))
	if err != nil {
		return 0, 0, fmt.Errorf("party: retrieving beaver const result: %w", err)
	}
	msg, err := wire.UnmarshalBeaverConstResultMessage(payload)
	if err != nil {
		return 0, 0, fmt.Errorf("party: parsing beaver const result: %w", err)
	}
	return field.New(msg.XPart), field.New(msg.YPart), nil
}
