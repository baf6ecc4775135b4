package storage

import (
	"github.com/dgraph-io/badger"
)

// genericKeyPrefix namespaces every key this store writes. The teacher's
// database/kvstore.go used several prefixes (hash/timestamp/height/fixed)
// to maintain parallel indices into FullSignedBlock; this store only ever
// holds one kind of value (a label -> bytes mapping), so a single prefix is
// enough to keep the keyspace separate from anything else that might later
// share the same badger directory.
const genericKeyPrefix = 0xFF

// BadgerStore is a Store backed by dgraph-io/badger, adapted from the
// teacher's database.Store.
type BadgerStore struct {
	dir     string
	handler *badger.DB
}

// NewBadgerStore opens (creating if necessary) a badger database rooted at
// dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	options := badger.DefaultOptions(dir)
	options.Truncate = true // avoids problems with partial writes on restart

	db, err := badger.Open(options)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{dir: dir, handler: db}, nil
}

func prefixedKey(key string) []byte {
	return append([]byte{genericKeyPrefix}, []byte(key)...)
}

// Put stores value under key, indexed by a fixed prefix byte, the same
// scheme the teacher used for its FixedKeyPrefix values.
func (s *BadgerStore) Put(key string, value []byte) error {
	return s.handler.Update(func(txn *badger.Txn) error {
		return txn.Set(prefixedKey(key), value)
	})
}

// Get returns the value stored under key.
func (s *BadgerStore) Get(key string) ([]byte, error) {
	var out []byte
	err := s.handler.View(func(txn *badger.Txn) error {
		item, err := txn.Get(prefixedKey(key))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

// Close releases the underlying badger database.
func (s *BadgerStore) Close() error {
	return s.handler.Close()
}
