// Package ttp implements the trusted dealer (trusted third party) that
// hands out Beaver triples for the multiplication sub-protocol. The
// dealer is honest-but-curious: it never sees any party's secret inputs,
// only the random (a, b, c=ab) it manufactures itself.
package ttp

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/protocolerr"
	"github.com/aquarelle-tech/smc/share"
	"github.com/aquarelle-tech/smc/sharing"
)

// Triple is a Beaver triple (a, b, c=a*b) already split into per-party
// shares, one slice per registered participant.
type Triple struct {
	AShares []share.Share
	BShares []share.Share
	CShares []share.Share
}

// Auditor is implemented by anything that wants a read-only copy of a
// finished triple for inspection after the fact (see storage.TripleAuditor,
// backed by badger). It is never consulted for correctness.
type Auditor interface {
	RecordTriple(opID string, t Triple)
}

// Dealer holds the participant registry and the per-operation triple cache.
// Its lazy insertion is guarded by a single mutex: if two parties
// request the same op id concurrently, only one Triple is ever created and
// both see shares of it.
type Dealer struct {
	mu           sync.Mutex
	participants []string           // registration order fixes each index
	index        map[string]int     // participant id -> fixed index
	triples      map[string]*Triple // op id -> triple

	auditor Auditor
	log     zerolog.Logger
}

// New constructs an empty Dealer. auditor may be nil.
func New(auditor Auditor, log zerolog.Logger) *Dealer {
	return &Dealer{
		index:   make(map[string]int),
		triples: make(map[string]*Triple),
		auditor: auditor,
		log:     log.With().Str("component", "ttp").Logger(),
	}
}

// AddParticipant registers a participant if it isn't already known,
// assigning it the next free index. Registration order, not participant id
// ordering, determines the index (matching the reference TTP).
func (d *Dealer) AddParticipant(participantID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.index[participantID]; ok {
		return
	}
	d.index[participantID] = len(d.participants)
	d.participants = append(d.participants, participantID)
	d.log.Debug().Str("participant", participantID).Int("index", len(d.participants)-1).Msg("registered participant")
}

// RetrieveShare returns participantID's slice of the triple for opID,
// generating the triple on first request for that op id.
func (d *Dealer) RetrieveShare(participantID, opID string) (share.Share, share.Share, share.Share, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.participants) == 0 {
		return share.Share{}, share.Share{}, share.Share{}, protocolerr.New(protocolerr.DealerExhausted, "no participant registered")
	}

	idx, ok := d.index[participantID]
	if !ok {
		return share.Share{}, share.Share{}, share.Share{}, protocolerr.New(protocolerr.DealerExhausted, "participant %q is not registered", participantID)
	}

	t, ok := d.triples[opID]
	if !ok {
		var err error
		t, err = d.generateTriple(len(d.participants))
		if err != nil {
			return share.Share{}, share.Share{}, share.Share{}, err
		}
		d.triples[opID] = t
		d.log.Debug().Str("op_id", opID).Msg("generated new beaver triple")
		if d.auditor != nil {
			d.auditor.RecordTriple(opID, *t)
		}
	}

	return t.AShares[idx], t.BShares[idx], t.CShares[idx], nil
}

// generateTriple samples a, b uniformly and sets c = a*b mod p, splitting
// each into n shares.
func (d *Dealer) generateTriple(n int) (*Triple, error) {
	a := field.New(sharing.Default.Int63n(field.Modulus))
	b := field.New(sharing.Default.Int63n(field.Modulus))
	c := field.Mul(a, b)

	aShares, err := sharing.Split(a, n, sharing.Default)
	if err != nil {
		return nil, err
	}
	bShares, err := sharing.Split(b, n, sharing.Default)
	if err != nil {
		return nil, err
	}
	cShares, err := sharing.Split(c, n, sharing.Default)
	if err != nil {
		return nil, err
	}

	return &Triple{AShares: aShares, BShares: bShares, CShares: cShares}, nil
}
