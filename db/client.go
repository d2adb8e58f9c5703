package db

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/gogo/protobuf/proto"
	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/domain"
)

// Client provides the domain level persistence operations on top of a
// Backend and a Queue.
type Client struct {
	be Backend
	q  Queue
	db *BoltBackend // Non-nil for bolt backed clients, provides the frontier.
}

// NewClient constructs a new DB client based on the passed configuration.
func NewClient(config Config) (*Client, error) {
	typ := config.Type()

	switch typ {
	case Bolt:
		var cfg *BoltConfig
		switch c := config.(type) {
		case *BoltConfig:
			cfg = c
		case BoltConfig:
			cfg = &c
		}
		be := NewBoltBackend(cfg)
		client := &Client{
			be: be,
			db: be,
		}
		return client, nil

	default:
		return nil, fmt.Errorf("no client constructor available for db configuration type: %v", typ)
	}
}

func (client *Client) Open() error {
	if err := client.be.Open(); err != nil {
		return err
	}
	if client.db != nil && client.q == nil {
		client.q = NewBoltQueue(client.db.DB())
	}
	if err := client.q.Open(); err != nil {
		return err
	}
	return nil
}

func (client *Client) Close() error {
	if client.q != nil {
		if err := client.q.Close(); err != nil {
			return err
		}
		client.q = nil
	}
	return client.be.Close()
}

func (client *Client) Backend() Backend {
	return client.be
}

func (client *Client) Queue() Queue {
	return client.q
}

// Frontier returns a disk-backed exploration frontier.  Only valid while the
// client is open.
func (client *Client) Frontier(name string) (*BoltFrontier, error) {
	if client.db == nil || client.db.DB() == nil {
		return nil, fmt.Errorf("frontier requires an open bolt backed client")
	}
	return NewBoltFrontier(client.db.DB(), name), nil
}

// Purge resets the named tables, or every table when none are given.
func (client *Client) Purge(tables ...string) error {
	if len(tables) == 0 {
		tables = append(kvTables(), QTables()...)
	}
	for _, table := range tables {
		if IsQ(table) {
			if err := client.q.Destroy(table); err != nil {
				return err
			}
			continue
		}
		if err := client.be.Drop(table); err != nil {
			return err
		}
	}
	return nil
}

// PathSave stores complete paths, keyed by seed plus insertion sequence.
func (client *Client) PathSave(paths ...domain.Path) error {
	return client.be.WithTransaction(TXOptions{}, func(tx Transaction) error {
		for _, p := range paths {
			v, err := proto.Marshal(domain.NewPathRecord(p))
			if err != nil {
				return fmt.Errorf("marshalling path %v: %s", p, err)
			}
			seq, err := tx.NextSequence(TablePaths)
			if err != nil {
				return err
			}
			if err := tx.Put(TablePaths, pathKey(p.Seed(), seq), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// EachPath iterates over stored paths.  When seed is non-empty only that
// seed's paths are visited.
func (client *Client) EachPath(seed string, fn func(p domain.Path)) error {
	var (
		prefix []byte
		err    error
	)
	if seed != "" {
		prefix = append([]byte(seed), 0)
	}
	if iterErr := client.be.EachRowWithBreak(TablePaths, func(k []byte, v []byte) bool {
		if prefix != nil && !bytes.HasPrefix(k, prefix) {
			return true
		}
		r := &domain.PathRecord{}
		if err = proto.Unmarshal(v, r); err != nil {
			err = fmt.Errorf("unmarshalling path %q: %s", string(k), err)
			return false
		}
		fn(r.Path())
		return true
	}); iterErr != nil {
		return iterErr
	}
	return err
}

// PathDeleteSeed removes every stored path of a seed.  Returns the number of
// paths removed.
func (client *Client) PathDeleteSeed(seed string) (int, error) {
	if len(seed) == 0 {
		return 0, fmt.Errorf("path delete: empty seed")
	}
	return client.be.DeletePrefix(TablePaths, append([]byte(seed), 0))
}

func (client *Client) PathsLen() (int, error) {
	return client.be.Len(TablePaths)
}

// SeedSave stores a seed summary and marks the seed finished, atomically.
func (client *Client) SeedSave(result domain.SeedResult, runID string) error {
	v, err := proto.Marshal(domain.NewSeedRecord(result, runID))
	if err != nil {
		return fmt.Errorf("marshalling seed %q: %s", result.Seed, err)
	}
	return client.be.WithTransaction(TXOptions{}, func(tx Transaction) error {
		if err := tx.Put(TableSeeds, []byte(result.Seed), v); err != nil {
			return err
		}
		finishedAt := []byte(strconv.FormatInt(time.Now().Unix(), 10))
		return tx.Put(TableFinishedSeeds, []byte(result.Seed), finishedAt)
	})
}

func (client *Client) Seed(seed string) (*domain.SeedRecord, error) {
	v, err := client.be.Get(TableSeeds, []byte(seed))
	if err != nil {
		return nil, err
	}
	r := &domain.SeedRecord{}
	if err := proto.Unmarshal(v, r); err != nil {
		return nil, fmt.Errorf("unmarshalling seed %q: %s", seed, err)
	}
	return r, nil
}

// EachSeed iterates over stored seed summaries in seed order.
func (client *Client) EachSeed(fn func(r *domain.SeedRecord)) error {
	var err error
	if iterErr := client.be.EachRowWithBreak(TableSeeds, func(k []byte, v []byte) bool {
		r := &domain.SeedRecord{}
		if err = proto.Unmarshal(v, r); err != nil {
			err = fmt.Errorf("unmarshalling seed %q: %s", string(k), err)
			return false
		}
		fn(r)
		return true
	}); iterErr != nil {
		return iterErr
	}
	return err
}

func (client *Client) SeedsLen() (int, error) {
	return client.be.Len(TableSeeds)
}

// FinishedSeeds returns the set of seeds whose results have been stored.
func (client *Client) FinishedSeeds() (map[string]struct{}, error) {
	finished := map[string]struct{}{}
	if err := client.be.EachRow(TableFinishedSeeds, func(k []byte, _ []byte) {
		finished[string(k)] = struct{}{}
	}); err != nil {
		return nil, err
	}
	return finished, nil
}

// ClusterSave replaces all stored clusters.
func (client *Client) ClusterSave(clusters ...domain.Cluster) error {
	if err := client.be.Drop(TableClusters); err != nil {
		return err
	}
	return client.be.WithTransaction(TXOptions{}, func(tx Transaction) error {
		for i, c := range clusters {
			v, err := proto.Marshal(domain.NewClusterRecord(c))
			if err != nil {
				return fmt.Errorf("marshalling cluster %v: %s", c.Members, err)
			}
			if err := tx.Put(TableClusters, sequenceKey(uint64(i)), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// EachCluster iterates over stored clusters in the order they were saved.
func (client *Client) EachCluster(fn func(c domain.Cluster)) error {
	var err error
	if iterErr := client.be.EachRowWithBreak(TableClusters, func(_ []byte, v []byte) bool {
		r := &domain.ClusterRecord{}
		if err = proto.Unmarshal(v, r); err != nil {
			err = fmt.Errorf("unmarshalling cluster: %s", err)
			return false
		}
		fn(r.Cluster())
		return true
	}); iterErr != nil {
		return iterErr
	}
	return err
}

// ToExploreAdd only adds entries which aren't already queued.  Returns number
// of new items added.
func (client *Client) ToExploreAdd(entries []*domain.ToExploreEntry, opts *QueueOptions) (int, error) {
	if opts == nil {
		opts = NewQueueOptions()
	}

	existing := map[string]struct{}{}
	if err := client.EachToExplore(func(entry *domain.ToExploreEntry) {
		existing[entry.Seed] = struct{}{}
	}); err != nil {
		return 0, err
	}

	values := [][]byte{}
	for _, entry := range entries {
		if _, ok := existing[entry.Seed]; ok {
			continue
		}
		existing[entry.Seed] = struct{}{}
		v, err := proto.Marshal(entry)
		if err != nil {
			return 0, fmt.Errorf("marshalling to-explore entry %q: %s", entry.Seed, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0, nil
	}
	if err := client.q.Enqueue(TableToExplore, opts.Priority, values...); err != nil {
		return 0, err
	}
	log.WithField("added", len(values)).Debug("Enqueued to-explore entries")
	return len(values), nil
}

// ToExploreRequeue puts entries back on the queue without de-duplication.
func (client *Client) ToExploreRequeue(entries []*domain.ToExploreEntry, opts *QueueOptions) error {
	if opts == nil {
		opts = NewQueueOptions()
	}
	values := make([][]byte, 0, len(entries))
	for _, entry := range entries {
		v, err := proto.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshalling to-explore entry %q: %s", entry.Seed, err)
		}
		values = append(values, v)
	}
	return client.q.Enqueue(TableToExplore, opts.Priority, values...)
}

func (client *Client) ToExploreDequeue() (*domain.ToExploreEntry, error) {
	v, err := client.q.Dequeue(TableToExplore)
	if err != nil {
		return nil, err
	}
	entry := &domain.ToExploreEntry{}
	if err := proto.Unmarshal(v, entry); err != nil {
		return nil, fmt.Errorf("unmarshalling to-explore entry: %s", err)
	}
	return entry, nil
}

func (client *Client) EachToExplore(fn func(entry *domain.ToExploreEntry)) error {
	var err error
	if scanErr := client.q.ScanWithBreak(TableToExplore, nil, func(v []byte) bool {
		entry := &domain.ToExploreEntry{}
		if err = proto.Unmarshal(v, entry); err != nil {
			err = fmt.Errorf("unmarshalling to-explore entry: %s", err)
			return false
		}
		fn(entry)
		return true
	}); scanErr != nil {
		return scanErr
	}
	return err
}

func (client *Client) ToExploreLen() (int, error) {
	return client.q.Len(TableToExplore, 0)
}

// MetaSave stores a metadata key/value.  NB: src must be one of raw []byte,
// string, or proto.Message struct.
func (client *Client) MetaSave(key string, src interface{}) error {
	var v []byte

	switch typ := src.(type) {
	case []byte:
		v = typ

	case string:
		v = []byte(typ)

	case proto.Message:
		var err error
		if v, err = proto.Marshal(typ); err != nil {
			return fmt.Errorf("marshalling %T: %s", typ, err)
		}

	default:
		return ErrMetadataUnsupportedSrcType
	}

	return client.be.Put(TableMetadata, []byte(key), v)
}

func (client *Client) MetaDelete(key string) error {
	return client.be.Delete(TableMetadata, []byte(key))
}

// Meta retrieves a metadata key and populates dst.  NB: dst must be one of
// *[]byte, *string, or proto.Message struct.
func (client *Client) Meta(key string, dst interface{}) error {
	v, err := client.be.Get(TableMetadata, []byte(key))
	if err != nil {
		return err
	}

	switch typ := dst.(type) {
	case *[]byte:
		*typ = v

	case *string:
		*typ = string(v)

	case proto.Message:
		if err := proto.Unmarshal(v, typ); err != nil {
			return fmt.Errorf("unmarshalling %T: %s", typ, err)
		}

	default:
		return ErrMetadataUnsupportedDstType
	}

	return nil
}

func pathKey(seed string, seq uint64) []byte {
	k := make([]byte, 0, len(seed)+9)
	k = append(k, seed...)
	k = append(k, 0)
	k = append(k, sequenceKey(seq)...)
	return k
}
