package settings

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger/v4"
)

// InMemoryDSN opens a badger store without touching disk.
const InMemoryDSN = ":memory:"

// BadgerStore keys values as "<namespace>\x00<name>". NUL cannot occur in a
// namespace, so a prefix scan never reaches a longer namespace.
type BadgerStore struct {
	db *badger.DB
}

func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == InMemoryDSN {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

const badgerSeparator = "\x00"

func badgerPrefix(namespace string) []byte {
	return []byte(namespace + badgerSeparator)
}

func (s *BadgerStore) Get(_ context.Context, namespace string) (Values, error) {
	prefix := badgerPrefix(namespace)
	values := Values{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			name := string(bytes.TrimPrefix(item.Key(), prefix))
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			values[name] = string(val)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (s *BadgerStore) Set(_ context.Context, namespace string, values Values) error {
	prefix := badgerPrefix(namespace)
	return s.db.Update(func(txn *badger.Txn) error {
		for name, value := range values {
			key := append(append([]byte{}, prefix...), name...)
			if err := txn.Set(key, []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Close() error { return s.db.Close() }
