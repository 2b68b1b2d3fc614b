package storage

import "fmt"

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Open opens the named backend at path. The memory backend ignores path and
// an empty badger path opens an in-memory database.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendBadger:
		b, err := OpenBadger(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
