package explorer

import (
	"fmt"

	"go.uber.org/multierr"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
)

// Sink consumes exploration output.  For each seed BeginSeed is invoked
// first, then Path once per emitted path, then EndSeed with the reduced
// result.
type Sink interface {
	BeginSeed(seed string) error
	Path(p domain.Path) error
	EndSeed(result domain.SeedResult) error
}

// MultiSink fans out to every member sink in order.
type MultiSink []Sink

func (ms MultiSink) BeginSeed(seed string) error {
	var err error
	for _, s := range ms {
		err = multierr.Append(err, s.BeginSeed(seed))
	}
	return err
}

func (ms MultiSink) Path(p domain.Path) error {
	for _, s := range ms {
		if err := s.Path(p); err != nil {
			return err
		}
	}
	return nil
}

func (ms MultiSink) EndSeed(result domain.SeedResult) error {
	var err error
	for _, s := range ms {
		err = multierr.Append(err, s.EndSeed(result))
	}
	return err
}

// MemorySink keeps everything in memory.
type MemorySink struct {
	Paths   map[string][]domain.Path
	Results []domain.SeedResult
	current string
}

func NewMemorySink() *MemorySink {
	ms := &MemorySink{
		Paths:   map[string][]domain.Path{},
		Results: []domain.SeedResult{},
	}
	return ms
}

func (ms *MemorySink) BeginSeed(seed string) error {
	ms.current = seed
	ms.Paths[seed] = []domain.Path{}
	return nil
}

func (ms *MemorySink) Path(p domain.Path) error {
	ms.Paths[ms.current] = append(ms.Paths[ms.current], p)
	return nil
}

func (ms *MemorySink) EndSeed(result domain.SeedResult) error {
	ms.Results = append(ms.Results, result)
	return nil
}

var DefaultFlushSize = 1000

// DBSink persists paths and seed results.  Paths are buffered and written in
// batches, and the seed result is stored together with its finished marker.
type DBSink struct {
	Client    *db.Client
	RunID     string
	FlushSize int

	buf []domain.Path
}

func NewDBSink(client *db.Client, runID string) *DBSink {
	s := &DBSink{
		Client:    client,
		RunID:     runID,
		FlushSize: DefaultFlushSize,
		buf:       []domain.Path{},
	}
	return s
}

// BeginSeed discards any paths stored by an earlier exploration of the seed.
func (s *DBSink) BeginSeed(seed string) error {
	s.buf = s.buf[:0]
	if _, err := s.Client.PathDeleteSeed(seed); err != nil {
		return fmt.Errorf("clearing stored paths of seed %q: %s", seed, err)
	}
	return nil
}

func (s *DBSink) Path(p domain.Path) error {
	s.buf = append(s.buf, p)
	if len(s.buf) >= s.FlushSize {
		return s.flush()
	}
	return nil
}

func (s *DBSink) EndSeed(result domain.SeedResult) error {
	if err := s.flush(); err != nil {
		return err
	}
	return s.Client.SeedSave(result, s.RunID)
}

func (s *DBSink) flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	if err := s.Client.PathSave(s.buf...); err != nil {
		return err
	}
	s.buf = s.buf[:0]
	return nil
}
