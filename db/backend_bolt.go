package db

import (
	"bytes"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

type BoltBackend struct {
	config *BoltConfig
	db     *bolt.DB
	mu     sync.Mutex
}

func NewBoltBackend(config *BoltConfig) *BoltBackend {
	be := &BoltBackend{
		config: config,
	}
	return be
}

func (be *BoltBackend) Open() error {
	be.mu.Lock()
	defer be.mu.Unlock()

	if be.db != nil {
		return nil
	}

	db, err := bolt.Open(be.config.DBFile, 0600, be.config.BoltOptions)
	if err != nil {
		return err
	}
	be.db = db

	if err := be.initDB(); err != nil {
		be.db.Close()
		be.db = nil
		return err
	}

	return nil
}

func (be *BoltBackend) Close() error {
	be.mu.Lock()
	defer be.mu.Unlock()

	if be.db == nil {
		return nil
	}

	if err := be.db.Close(); err != nil {
		return err
	}

	be.db = nil

	return nil
}

// DB exposes the underlying bolt handle so the queue and frontier can share
// the same file.
func (be *BoltBackend) DB() *bolt.DB {
	return be.db
}

func (be *BoltBackend) initDB() error {
	return be.db.Update(func(tx *bolt.Tx) error {
		for _, name := range kvTables() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("initDB: creating bucket %q: %s", name, err)
			}
		}
		return nil
	})
}

func (be *BoltBackend) Get(table string, key []byte) ([]byte, error) {
	var v []byte
	if err := be.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return ErrKeyNotFound
		}
		if v = b.Get(key); v == nil {
			return ErrKeyNotFound
		}
		// Bolt values are only valid for the life of the transaction.
		v = append([]byte{}, v...)
		return nil
	}); err != nil {
		return nil, err
	}
	return v, nil
}

func (be *BoltBackend) Put(table string, key []byte, value []byte) error {
	return be.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return err
		}
		return b.Put(key, value)
	})
}

func (be *BoltBackend) Delete(table string, keys ...[]byte) error {
	return be.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (be *BoltBackend) DeletePrefix(table string, prefix []byte) (int, error) {
	var n int
	if err := be.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Seek(prefix) {
			if err := c.Delete(); err != nil {
				return err
			}
			n++
		}
		return nil
	}); err != nil {
		return 0, err
	}
	return n, nil
}

func (be *BoltBackend) Drop(tables ...string) error {
	return be.db.Update(func(tx *bolt.Tx) error {
		for _, table := range tables {
			if err := tx.DeleteBucket([]byte(table)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}
		return nil
	})
}

func (be *BoltBackend) WithTransaction(opts TXOptions, fn func(tx Transaction) error) error {
	if opts.ReadOnly {
		return be.db.View(func(tx *bolt.Tx) error {
			return fn(&boltTX{tx: tx})
		})
	}
	return be.db.Update(func(tx *bolt.Tx) error {
		return fn(&boltTX{tx: tx})
	})
}

func (be *BoltBackend) EachRow(table string, fn func(key []byte, value []byte)) error {
	return be.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			fn(k, v)
		}
		return nil
	})
}

func (be *BoltBackend) EachRowWithBreak(table string, fn func(key []byte, value []byte) bool) error {
	return be.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if !fn(k, v) {
				break
			}
		}
		return nil
	})
}

func (be *BoltBackend) Len(table string) (int, error) {
	var n int
	if err := be.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(table))
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	}); err != nil {
		return 0, err
	}
	return n, nil
}

type boltTX struct {
	tx *bolt.Tx
}

func (btx *boltTX) bucket(table string) (*bolt.Bucket, error) {
	if !btx.tx.Writable() {
		b := btx.tx.Bucket([]byte(table))
		if b == nil {
			return nil, ErrKeyNotFound
		}
		return b, nil
	}
	return btx.tx.CreateBucketIfNotExists([]byte(table))
}

func (btx *boltTX) Get(table string, key []byte) ([]byte, error) {
	b, err := btx.bucket(table)
	if err != nil {
		return nil, err
	}
	v := b.Get(key)
	if v == nil {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (btx *boltTX) Put(table string, key []byte, value []byte) error {
	b, err := btx.bucket(table)
	if err != nil {
		return err
	}
	return b.Put(key, value)
}

func (btx *boltTX) Delete(table string, keys ...[]byte) error {
	b, err := btx.bucket(table)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := b.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (btx *boltTX) NextSequence(table string) (uint64, error) {
	b, err := btx.bucket(table)
	if err != nil {
		return 0, err
	}
	return b.NextSequence()
}
