package party

import "github.com/aquarelle-tech/smc/share"

// TransportClient is the subset of transport.Client a Party depends on. It
// is declared here, not in package transport, so tests can substitute an
// in-process fake without spinning up real HTTP servers — the same
// dependency-inversion the teacher used for its KVStore interface.
type TransportClient interface {
	RegisterWithDealer() error
	SendPrivate(destination, label string, payload []byte) error
	RetrievePrivate(label string) ([]byte, error)
	Publish(label string, payload []byte) error
	RetrievePublic(owner, label string) ([]byte, error)
	RetrieveTripleShares(opID string) (share.Share, share.Share, share.Share, error)
}
