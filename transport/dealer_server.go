package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aquarelle-tech/smc/ttp"
)

// DealerServer exposes a ttp.Dealer over HTTP.
type DealerServer struct {
	dealer *ttp.Dealer
	log    zerolog.Logger
}

// NewDealerServer wraps dealer as an http.Handler.
func NewDealerServer(dealer *ttp.Dealer, log zerolog.Logger) *DealerServer {
	return &DealerServer{dealer: dealer, log: log.With().Str("component", "dealer_server").Logger()}
}

// Handler returns the http.Handler implementing retrieve_triple_shares and
// participant registration.
func (s *DealerServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/triple", s.handleTriple)
	return mux
}

type registerRequest struct {
	ClientID string `json:"client_id"`
}

func (s *DealerServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.dealer.AddParticipant(req.ClientID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *DealerServer) handleTriple(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	opID := r.URL.Query().Get("op_id")

	a, b, c, err := s.dealer.RetrieveShare(clientID, opID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := tripleShareResponse{A: a, B: b, C: c}
	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
