package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/aquarelle-tech/smc/share"
)

// Client binds one party to a broker endpoint and a dealer endpoint, and
// implements the six operations a party depends on (party.TransportClient).
type Client struct {
	clientID    string
	brokerBase  string
	dealerBase  string
	http        *http.Client
	log         zerolog.Logger
	retryWait   time.Duration
	maxWaitStep time.Duration
}

// NewClient constructs a Client for clientID talking to brokerBase (e.g.
// "http://localhost:9000") and dealerBase (e.g. "http://localhost:9100").
func NewClient(clientID, brokerBase, dealerBase string, log zerolog.Logger) *Client {
	return &Client{
		clientID:    clientID,
		brokerBase:  brokerBase,
		dealerBase:  dealerBase,
		http:        &http.Client{},
		log:         log.With().Str("client_id", clientID).Logger(),
		retryWait:   200 * time.Millisecond,
		maxWaitStep: 5 * time.Second,
	}
}

// RegisterWithDealer tells the dealer this client participates in the run,
// fixing its index in the dealer's participant registry. Every
// party must do this before the first RetrieveTripleShares call.
func (c *Client) RegisterWithDealer() error {
	return c.post(c.dealerBase+"/register", registerRequest{ClientID: c.clientID})
}

// SendPrivate enqueues payload at destination's mailbox under label.
func (c *Client) SendPrivate(destination, label string, payload []byte) error {
	req := sendPrivateRequest{Destination: destination, Label: label, Payload: payload}
	return c.post(c.brokerBase+"/private/send", req)
}

// RetrievePrivate blocks until a payload addressed to this client under
// label is available, retrying the long-poll request with bounded backoff
// if an individual attempt times out (a transport error, not a protocol
// one: the broker itself may still be starting up, or a single HTTP round
// trip may be dropped).
func (c *Client) RetrievePrivate(label string) ([]byte, error) {
	url := fmt.Sprintf("%s/private/retrieve?destination=%s&label=%s", c.brokerBase, neturl.QueryEscape(c.clientID), neturl.QueryEscape(label))
	return c.longPoll(url)
}

// Publish writes payload under this client's namespace at label, visible to
// any party via RetrievePublic(clientID, label).
func (c *Client) Publish(label string, payload []byte) error {
	req := publishRequest{Owner: c.clientID, Label: label, Payload: payload}
	return c.post(c.brokerBase+"/public/publish", req)
}

// RetrievePublic polls until owner has published a value under label.
func (c *Client) RetrievePublic(owner, label string) ([]byte, error) {
	url := fmt.Sprintf("%s/public/retrieve?owner=%s&label=%s", c.brokerBase, neturl.QueryEscape(owner), neturl.QueryEscape(label))
	return c.longPoll(url)
}

// RetrieveTripleShares calls into the dealer and returns this client's
// triple slice for opID.
func (c *Client) RetrieveTripleShares(opID string) (share.Share, share.Share, share.Share, error) {
	url := fmt.Sprintf("%s/triple?client_id=%s&op_id=%s", c.dealerBase, neturl.QueryEscape(c.clientID), neturl.QueryEscape(opID))
	resp, err := c.http.Get(url)
	if err != nil {
		return share.Share{}, share.Share{}, share.Share{}, fmt.Errorf("transport: dealer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return share.Share{}, share.Share{}, share.Share{}, fmt.Errorf("transport: reading dealer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return share.Share{}, share.Share{}, share.Share{}, fmt.Errorf("transport: dealer returned %s: %s", resp.Status, body)
	}

	var tripleResp tripleShareResponse
	if err := json.Unmarshal(body, &tripleResp); err != nil {
		return share.Share{}, share.Share{}, share.Share{}, fmt.Errorf("transport: malformed dealer response: %w", err)
	}
	return tripleResp.A, tripleResp.B, tripleResp.C, nil
}

func (c *Client) post(url string, body interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("transport: marshalling request: %w", err)
	}
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("transport: request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		errBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("transport: %s returned %s: %s", url, resp.Status, errBody)
	}
	return nil
}

// longPoll repeatedly issues a long-poll GET against url, each attempt
// bounded by maxWaitStep, retrying after retryWait on a timeout. This gives
// genuine blocking-receive semantics without either a single
// unbounded HTTP call (which would make a dead broker hang the party
// forever with no diagnostic) or a tight busy loop.
func (c *Client) longPoll(url string) ([]byte, error) {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), c.maxWaitStep)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("transport: building request: %w", err)
		}

		resp, err := c.http.Do(req)
		cancel()
		if err != nil {
			c.log.Debug().Str("url", url).Msg("long-poll attempt timed out, retrying")
			time.Sleep(c.retryWait)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("transport: reading response body: %w", readErr)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			return body, nil
		case http.StatusGatewayTimeout:
			time.Sleep(c.retryWait)
			continue
		default:
			return nil, fmt.Errorf("transport: %s returned %s: %s", url, resp.Status, body)
		}
	}
}

type tripleShareResponse struct {
	A share.Share `json:"a"`
	B share.Share `json:"b"`
	C share.Share `json:"c"`
}
