package storage

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Badger stores values in an embedded BadgerDB
type Badger struct {
	db *badger.DB
}

// badgerLogger routes badger's internal logging to the standard logger.
// Info and debug output is dropped.
type badgerLogger struct{}

var _ badger.Logger = badgerLogger{}

func (badgerLogger) Errorf(msg string, args ...any)   { log.Printf("badger: "+msg, args...) }
func (badgerLogger) Warningf(msg string, args ...any) { log.Printf("badger: "+msg, args...) }
func (badgerLogger) Infof(string, ...any)             {}
func (badgerLogger) Debugf(string, ...any)            {}

// OpenBadger opens a BadgerDB in dir, or an in-memory one when dir is empty
func OpenBadger(dir string) (*Badger, error) {
	var opts badger.Options

	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create badger directory: %w", err)
			}
		} else if err != nil {
			return nil, err
		} else if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		opts = badger.DefaultOptions(dir)
	}

	opts.Logger = badgerLogger{}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

func (b *Badger) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (b *Badger) Remove(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}
