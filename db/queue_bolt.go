package db

import (
	"encoding/binary"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// BoltQueue is a persistent priority queue.  Each topic is a bucket holding
// one nested bucket per priority, and each priority bucket holds messages
// keyed by a monotonically increasing sequence number.  Lower priority
// numbers are dequeued first, FIFO within a priority.
type BoltQueue struct {
	db *bolt.DB
	mu sync.Mutex
}

func NewBoltQueue(db *bolt.DB) *BoltQueue {
	bq := &BoltQueue{
		db: db,
	}
	return bq
}

func (bq *BoltQueue) Open() error {
	bq.mu.Lock()
	defer bq.mu.Unlock()

	return bq.db.Update(func(tx *bolt.Tx) error {
		for _, name := range QTables() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("creating queue bucket %q: %s", name, err)
			}
		}
		return nil
	})
}

// Close is a no-op, the underlying DB handle belongs to the backend.
func (bq *BoltQueue) Close() error {
	return nil
}

func (bq *BoltQueue) Enqueue(topic string, priority int, values ...[]byte) error {
	if priority < 1 || priority > MaxPriority {
		return fmt.Errorf("priority %v out of range [1, %v]", priority, MaxPriority)
	}
	return bq.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(topic))
		if err != nil {
			return err
		}
		pb, err := b.CreateBucketIfNotExists(priorityKey(priority))
		if err != nil {
			return err
		}
		for _, value := range values {
			seq, err := pb.NextSequence()
			if err != nil {
				return err
			}
			if err := pb.Put(sequenceKey(seq), value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (bq *BoltQueue) Dequeue(topic string) ([]byte, error) {
	var value []byte
	if err := bq.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(topic))
		if b == nil {
			return ErrEmptyQueue
		}
		c := b.Cursor()
		for pk, v := c.First(); pk != nil; pk, v = c.Next() {
			if v != nil {
				continue
			}
			pb := b.Bucket(pk)
			k, v := pb.Cursor().First()
			if k == nil {
				continue
			}
			value = append([]byte{}, v...)
			return pb.Delete(k)
		}
		return ErrEmptyQueue
	}); err != nil {
		return nil, err
	}
	return value, nil
}

func (bq *BoltQueue) Scan(topic string, opts *QueueOptions, fn func(value []byte)) error {
	return bq.ScanWithBreak(topic, opts, func(value []byte) bool {
		fn(value)
		return true
	})
}

// ScanWithBreak iterates over queued messages without removing them.  When
// opts is nil every priority is visited in dequeue order, otherwise only
// opts.Priority is.
func (bq *BoltQueue) ScanWithBreak(topic string, opts *QueueOptions, fn func(value []byte) bool) error {
	return bq.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(topic))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for pk, v := c.First(); pk != nil; pk, v = c.Next() {
			if v != nil {
				continue
			}
			if opts != nil && priorityKey(opts.Priority)[0] != pk[0] {
				continue
			}
			pc := b.Bucket(pk).Cursor()
			for k, v := pc.First(); k != nil; k, v = pc.Next() {
				if !fn(v) {
					return nil
				}
			}
		}
		return nil
	})
}

// Len returns the number of messages queued for a topic.  A priority of 0 or
// less counts all priorities.
func (bq *BoltQueue) Len(topic string, priority int) (int, error) {
	var n int
	if err := bq.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(topic))
		if b == nil {
			return nil
		}
		if priority > 0 {
			if pb := b.Bucket(priorityKey(priority)); pb != nil {
				n = pb.Stats().KeyN
			}
			return nil
		}
		return b.ForEach(func(k []byte, v []byte) error {
			if v == nil {
				n += b.Bucket(k).Stats().KeyN
			}
			return nil
		})
	}); err != nil {
		return 0, err
	}
	return n, nil
}

func (bq *BoltQueue) Destroy(topics ...string) error {
	return bq.db.Update(func(tx *bolt.Tx) error {
		for _, topic := range topics {
			if err := tx.DeleteBucket([]byte(topic)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			if _, err := tx.CreateBucket([]byte(topic)); err != nil {
				return err
			}
		}
		return nil
	})
}

func priorityKey(priority int) []byte {
	return []byte{byte(priority)}
}

func sequenceKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
