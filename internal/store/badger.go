package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// BadgerBackend keeps documents in a Badger key-value store under keys of
// the form "<collection>:<id>". Find order is key order.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a Badger database in dir.
func OpenBadger(dir string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup
	return openBadger(opts)
}

// OpenBadgerInMemory opens a Badger database that lives only in memory.
func OpenBadgerInMemory() (*BadgerBackend, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerBackend, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

func docKey(collection, id string) []byte {
	return []byte(collection + ":" + id)
}

func (b *BadgerBackend) Insert(ctx context.Context, collection, id string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkCollection(collection); err != nil {
		return err
	}

	key := docKey(collection, id)
	return b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, id)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := txn.Set(key, doc); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return nil
	})
}

func (b *BadgerBackend) Find(ctx context.Context, collection string, filter Filter) ([][]byte, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	var docs [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		matches, err := b.scan(ctx, txn, collection, filter)
		if err != nil {
			return err
		}
		for _, m := range matches {
			docs = append(docs, m.value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (b *BadgerBackend) Update(ctx context.Context, collection string, filter Filter, patch []byte) (int, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	var n int
	err := b.db.Update(func(txn *badger.Txn) error {
		matches, err := b.scan(ctx, txn, collection, filter)
		if err != nil {
			return err
		}

		for _, m := range matches {
			merged, err := jsonpatch.MergePatch(m.value, patch)
			if err != nil {
				return fmt.Errorf("failed to merge patch: %w", err)
			}
			if err := txn.Set(m.key, merged); err != nil {
				return fmt.Errorf("failed to set key: %w", err)
			}
		}
		n = len(matches)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (b *BadgerBackend) Remove(ctx context.Context, collection string, filter Filter) (int, error) {
	if err := checkCollection(collection); err != nil {
		return 0, err
	}

	var n int
	err := b.db.Update(func(txn *badger.Txn) error {
		matches, err := b.scan(ctx, txn, collection, filter)
		if err != nil {
			return err
		}

		for _, m := range matches {
			if err := txn.Delete(m.key); err != nil {
				return fmt.Errorf("failed to delete key: %w", err)
			}
		}
		n = len(matches)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

type kv struct {
	key   []byte
	value []byte
}

// scan collects copies of the documents in collection matching filter. An id
// in the filter is resolved with a point lookup instead of a prefix scan.
// Results are copied out so callers may write to the same transaction.
func (b *BadgerBackend) scan(ctx context.Context, txn *badger.Txn, collection string, filter Filter) ([]kv, error) {
	if _, err := filter.keys(); err != nil {
		return nil, err
	}

	if id, ok := filter["id"]; ok {
		key := docKey(collection, id)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get key: %w", err)
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read value: %w", err)
		}
		ok, err := matchDocument(value, filter)
		if err != nil || !ok {
			return nil, err
		}
		return []kv{{key: key, value: value}}, nil
	}

	prefix := []byte(collection + ":")
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var out []kv
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read value: %w", err)
		}
		ok, err := matchDocument(value, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, kv{key: item.KeyCopy(nil), value: value})
		}
	}
	return out, nil
}

func matchDocument(value []byte, filter Filter) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(value, &doc); err != nil {
		return false, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return filter.matches(doc), nil
}
