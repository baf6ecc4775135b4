package transport_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquarelle-tech/smc/storage"
	"github.com/aquarelle-tech/smc/transport"
)

func newBrokerServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	store := storage.NewMemoryStore()
	broker := transport.NewBroker(store, zerolog.Nop())
	srv := httptest.NewServer(broker.Handler())
	return srv, srv.Close
}

func TestPrivateSendThenRetrieveReturnsPayload(t *testing.T) {
	srv, closeFn := newBrokerServer(t)
	defer closeFn()

	client := transport.NewClient("Alice", srv.URL, "", zerolog.Nop())
	require.NoError(t, client.SendPrivate("Bob", "greeting", []byte("hello")))

	bobClient := transport.NewClient("Bob", srv.URL, "", zerolog.Nop())
	got, err := bobClient.RetrievePrivate("greeting")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

// TestRetrievePrivateBlocksUntilSend exercises the happens-before property
// the broker is load-bearing for: a retrieve that starts before the
// matching send still observes it, via the wake channel rather than a
// fixed poll interval.
func TestRetrievePrivateBlocksUntilSend(t *testing.T) {
	srv, closeFn := newBrokerServer(t)
	defer closeFn()

	bobClient := transport.NewClient("Bob", srv.URL, "", zerolog.Nop())

	resultCh := make(chan []byte, 1)
	errCh := make(chan error, 1)
	go func() {
		got, err := bobClient.RetrievePrivate("late")
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- got
	}()

	time.Sleep(50 * time.Millisecond)
	aliceClient := transport.NewClient("Alice", srv.URL, "", zerolog.Nop())
	require.NoError(t, aliceClient.SendPrivate("Bob", "late", []byte("finally")))

	select {
	case got := <-resultCh:
		assert.Equal(t, []byte("finally"), got)
	case err := <-errCh:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("retrieve never observed the send")
	}
}

func TestPublishThenRetrievePublicReturnsPayload(t *testing.T) {
	srv, closeFn := newBrokerServer(t)
	defer closeFn()

	leader := transport.NewClient("Alice", srv.URL, "", zerolog.Nop())
	require.NoError(t, leader.Publish("Publish_Result", []byte("42")))

	reader := transport.NewClient("Bob", srv.URL, "", zerolog.Nop())
	got, err := reader.RetrievePublic("Alice", "Publish_Result")
	require.NoError(t, err)
	assert.Equal(t, []byte("42"), got)
}

// TestRetrievePublicFansOutToMultipleReaders checks that a single publish is
// visible to every participant, not just a single consumer of a private
// mailbox slot.
func TestRetrievePublicFansOutToMultipleReaders(t *testing.T) {
	srv, closeFn := newBrokerServer(t)
	defer closeFn()

	leader := transport.NewClient("Alice", srv.URL, "", zerolog.Nop())
	require.NoError(t, leader.Publish("Publish_Result", []byte("7")))

	for _, readerID := range []string{"Bob", "Charlie", "Dave"} {
		reader := transport.NewClient(readerID, srv.URL, "", zerolog.Nop())
		got, err := reader.RetrievePublic("Alice", "Publish_Result")
		require.NoError(t, err)
		assert.Equal(t, []byte("7"), got)
	}
}
