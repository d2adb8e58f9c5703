package db

// Backend is a generic K/V persistence interface.
type Backend interface {
	Open() error                                                                 // Open / start the backend.
	Close() error                                                                // Close / shutdown the backend.
	Get(table string, key []byte) ([]byte, error)                                // Retrieve a value.  Returns ErrKeyNotFound when absent.
	Put(table string, key []byte, value []byte) error                            // Store a value.
	Delete(table string, keys ...[]byte) error                                   // Remove zero or more keys.
	DeletePrefix(table string, prefix []byte) (int, error)                       // Remove every key beginning with prefix.
	Drop(tables ...string) error                                                 // Remove entire tables.
	Len(table string) (int, error)                                               // Number of keys in a table.
	WithTransaction(opts TXOptions, fn func(tx Transaction) error) error         // Run fn inside a single transaction.
	EachRow(table string, fn func(key []byte, value []byte)) error               // Iterate over all rows in key order.
	EachRowWithBreak(table string, fn func(key []byte, value []byte) bool) error // Iterate until fn returns false.
}

type TXOptions struct {
	ReadOnly bool
}

// Transaction is a generic TX interface to be provided by each Backend
// implementation.
type Transaction interface {
	Get(table string, key []byte) ([]byte, error)
	Put(table string, key []byte, value []byte) error
	Delete(table string, keys ...[]byte) error
	NextSequence(table string) (uint64, error)
}
