// Package transport implements the HTTP broker: a private point-to-point
// mailbox (send_private/retrieve_private) and a public per-owner channel
// (publish/retrieve_public). The dealer's retrieve_triple_shares is not
// routed through the broker: DealerServer serves it on its own handler, and
// Client calls it directly. It is intentionally the least algorithmically
// interesting package in this module — it exists to give party and ttp
// something to run against — but it is still load-bearing: the blocking
// semantics of retrieve_private/retrieve_public are what the protocol's
// happens-before ordering depends on.
package transport

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aquarelle-tech/smc/storage"
)

// mailboxKey namespaces a private message by (destination, label). Because
// every logical message in this protocol uses a unique label (phase tag +
// secret id, or phase tag + op id + sender), a single-reader FIFO per label
// degenerates to "at most one pending message per key", which is all this
// store needs to provide.
func mailboxKey(destination, label string) string {
	return "priv:" + destination + ":" + label
}

// publicKey namespaces a published value by (owner, label).
func publicKey(owner, label string) string {
	return "pub:" + owner + ":" + label
}

// Broker is the mailbox + pubsub HTTP server every party and the dealer
// talk to.
type Broker struct {
	store storage.Store
	log   zerolog.Logger

	mu      sync.Mutex
	waiters map[string][]chan struct{}
}

// NewBroker constructs a Broker backed by store.
func NewBroker(store storage.Store, log zerolog.Logger) *Broker {
	return &Broker{
		store:   store,
		log:     log.With().Str("component", "broker").Logger(),
		waiters: make(map[string][]chan struct{}),
	}
}

// Handler returns the http.Handler implementing the broker's wire API.
func (b *Broker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/private/send", b.handleSendPrivate)
	mux.HandleFunc("/private/retrieve", b.handleRetrievePrivate)
	mux.HandleFunc("/public/publish", b.handlePublish)
	mux.HandleFunc("/public/retrieve", b.handleRetrievePublic)
	return mux
}

type sendPrivateRequest struct {
	Destination string `json:"destination"`
	Label       string `json:"label"`
	Payload     []byte `json:"payload"`
}

func (b *Broker) handleSendPrivate(w http.ResponseWriter, r *http.Request) {
	var req sendPrivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := mailboxKey(req.Destination, req.Label)
	if err := b.store.Put(key, req.Payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	b.log.Debug().Str("destination", req.Destination).Str("label", req.Label).Msg("stored private message")
	b.wake(key)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Broker) handleRetrievePrivate(w http.ResponseWriter, r *http.Request) {
	destination := r.URL.Query().Get("destination")
	label := r.URL.Query().Get("label")
	key := mailboxKey(destination, label)

	payload, err := b.awaitValue(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(payload)
}

type publishRequest struct {
	Owner   string `json:"owner"`
	Label   string `json:"label"`
	Payload []byte `json:"payload"`
}

func (b *Broker) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := publicKey(req.Owner, req.Label)
	if err := b.store.Put(key, req.Payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	b.log.Debug().Str("owner", req.Owner).Str("label", req.Label).Msg("published public message")
	b.wake(key)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Broker) handleRetrievePublic(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	label := r.URL.Query().Get("label")
	key := publicKey(owner, label)

	payload, err := b.awaitValue(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(payload)
}
