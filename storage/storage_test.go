package storage_test

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/share"
	"github.com/aquarelle-tech/smc/storage"
	"github.com/aquarelle-tech/smc/ttp"
)

func TestMemoryStoreGetMissingReturnsErrNotFound(t *testing.T) {
	s := storage.NewMemoryStore()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemoryStorePutThenGetRoundTrips(t *testing.T) {
	s := storage.NewMemoryStore()
	require.NoError(t, s.Put("key", []byte("value")))

	got, err := s.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
	require.NoError(t, s.Close())
}

func TestBadgerStorePutThenGetRoundTrips(t *testing.T) {
	s, err := storage.NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("key", []byte("value")))
	got, err := s.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestBadgerStoreGetMissingReturnsErrNotFound(t *testing.T) {
	s, err := storage.NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTripleAuditorPersistsTripleUnderOpID(t *testing.T) {
	field.Modulus = 2003
	store := storage.NewMemoryStore()
	auditor := storage.NewTripleAuditor(store, zerolog.Nop())

	triple := ttp.Triple{
		AShares: []share.Share{share.NewShare(field.New(1))},
		BShares: []share.Share{share.NewShare(field.New(2))},
		CShares: []share.Share{share.NewShare(field.New(2))},
	}
	auditor.RecordTriple("op42", triple)

	raw, err := store.Get("triple_op42")
	require.NoError(t, err)

	var got ttp.Triple
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, triple, got)
}

func TestTripleAuditorSatisfiesDealerAuditorInterface(t *testing.T) {
	store := storage.NewMemoryStore()
	auditor := storage.NewTripleAuditor(store, zerolog.Nop())

	dealer := ttp.New(auditor, zerolog.Nop())
	dealer.AddParticipant("Alice")

	_, _, _, err := dealer.RetrieveShare("Alice", "op1")
	require.NoError(t, err)

	_, err = store.Get("triple_op1")
	assert.NoError(t, err)
}
