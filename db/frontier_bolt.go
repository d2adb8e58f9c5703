package db

import (
	"bytes"
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"
)

// BoltFrontier is an on-disk LIFO stack of partial paths, used so that deep
// explorations of highly connected seeds need not hold their whole pending
// frontier in memory.
//
// Each entry is a NUL-delimited token list.  Author and keyword identifiers
// never contain NUL.
type BoltFrontier struct {
	db     *bolt.DB
	bucket []byte
}

// NewBoltFrontier returns a frontier stored in its own bucket.  Distinct names
// yield independent stacks.
func NewBoltFrontier(db *bolt.DB, name string) *BoltFrontier {
	f := &BoltFrontier{
		db:     db,
		bucket: []byte(TableFrontierPrefix + name),
	}
	return f
}

func (f *BoltFrontier) Push(tokens []string) error {
	for _, token := range tokens {
		if strings.IndexByte(token, 0) >= 0 {
			return fmt.Errorf("frontier: token %q contains NUL", token)
		}
	}
	return f.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(f.bucket)
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), encodeTokens(tokens))
	})
}

// Pop removes and returns the most recently pushed entry.  ok is false when
// the frontier is empty.
func (f *BoltFrontier) Pop() (tokens []string, ok bool, err error) {
	err = f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(f.bucket)
		if b == nil {
			return nil
		}
		k, v := b.Cursor().Last()
		if k == nil {
			return nil
		}
		tokens = decodeTokens(v)
		ok = true
		return b.Delete(k)
	})
	return
}

func (f *BoltFrontier) Len() int {
	var n int
	f.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(f.bucket); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n
}

// Reset discards every entry and restarts the key sequence.
func (f *BoltFrontier) Reset() error {
	return f.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(f.bucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		return nil
	})
}

func encodeTokens(tokens []string) []byte {
	var buf bytes.Buffer
	for i, token := range tokens {
		if i > 0 {
			buf.WriteByte(0)
		}
		buf.WriteString(token)
	}
	return buf.Bytes()
}

func decodeTokens(v []byte) []string {
	if len(v) == 0 {
		return []string{}
	}
	parts := bytes.Split(v, []byte{0})
	tokens := make([]string, len(parts))
	for i, part := range parts {
		tokens[i] = string(part)
	}
	return tokens
}
