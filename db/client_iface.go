package db

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	TableMetadata       = "acaana-metadata"
	TablePaths          = "paths"
	TableSeeds          = "seeds"
	TableFinishedSeeds  = "finished-seeds"
	TableClusters       = "clusters"
	TableToExplore      = "to-explore"
	TableFrontierPrefix = "frontier-"

	MaxPriority = 10 // Number of supported priorities, 1-indexed, 1 being the most urgent.
)

var (
	ErrKeyNotFound                = errors.New("requested key not found")
	ErrEmptyQueue                 = errors.New("queue is empty")
	ErrMetadataUnsupportedSrcType = errors.New("unsupported src type: must be an []byte, string, or proto.Message")
	ErrMetadataUnsupportedDstType = errors.New("unsupported dst type: must be an *[]byte, *string, or proto.Message")

	DefaultQueuePriority = 3

	tables = []string{
		TableMetadata,
		TablePaths,
		TableSeeds,
		TableFinishedSeeds,
		TableClusters,
		TableToExplore,
	}

	qTables = []string{
		TableToExplore,
	}
)

// Type identifies a DB backend implementation.
type Type int

const (
	Unknown Type = iota
	Bolt
)

func (typ Type) String() string {
	switch typ {
	case Bolt:
		return "bolt"
	default:
		return "unknown"
	}
}

type Config interface {
	Type() Type // Configuration type specifier.
}

// NewConfig constructs a DB configuration for the named driver.
func NewConfig(driver string, dbFile string) (Config, error) {
	switch driver {
	case "bolt", "boltdb", "bbolt":
		return NewBoltConfig(dbFile), nil

	default:
		return nil, fmt.Errorf("unrecognized or unsupported DB driver %q", driver)
	}
}

type QueueOptions struct {
	Priority int
}

func NewQueueOptions() *QueueOptions {
	opts := &QueueOptions{
		Priority: DefaultQueuePriority,
	}
	return opts
}

// WithClient is a convenience utility which handles DB client construction,
// open, and close.
func WithClient(config Config, fn func(dbClient *Client) error) (err error) {
	var dbClient *Client
	if dbClient, err = NewClient(config); err != nil {
		return
	}

	if err = dbClient.Open(); err != nil {
		err = fmt.Errorf("opening DB client %T: %s", dbClient, err)
		return
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			if err != nil {
				log.Errorf("Existing error before attempt to close DB client %T: %s", dbClient, err)
			}
			err = multierr.Append(err, fmt.Errorf("closing DB client %T: %s", dbClient, closeErr))
		}
	}()

	err = fn(dbClient)
	return
}

// kvTables returns the names of the "regular" key-value tables.
func kvTables() []string {
	kv := []string{}
	for _, table := range tables {
		if !IsQ(table) {
			kv = append(kv, table)
		}
	}
	return kv
}

// KVTables publicly exported version of kvTables.
func KVTables() []string { return kvTables() }

// QTables returns slice of queue table names.
func QTables() []string {
	tables := make([]string, len(qTables))
	copy(tables, qTables)
	return tables
}

// IsKV returns true when the name refers to a key-value table.
func IsKV(name string) bool {
	for _, table := range kvTables() {
		if name == table {
			return true
		}
	}
	return false
}

// IsQ returns true when the name refers to a queue.
func IsQ(name string) bool {
	for _, table := range qTables {
		if name == table {
			return true
		}
	}
	return false
}
