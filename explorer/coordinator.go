package explorer

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"jaytaylor.com/acaana/aggregate"
	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
)

// Coordinator drives the explorer over a sequence of seeds.  It owns the
// run State: a seed is marked finished only once its exploration and all of
// its output have completed.
type Coordinator struct {
	Explorer *Explorer
	State    *State
	Sink     Sink
	Frontier Frontier

	db           *db.Client
	numProcessed int
	numPaths     int
	mu           sync.RWMutex
}

// NewCoordinator returns a coordinator.  dbClient is only required by Run.
func NewCoordinator(e *Explorer, state *State, sink Sink, dbClient *db.Client) *Coordinator {
	if state == nil {
		state = NewState()
	}
	if sink == nil {
		sink = NewMemorySink()
	}
	c := &Coordinator{
		Explorer: e,
		State:    state,
		Sink:     sink,
		Frontier: NewMemoryFrontier(),
		db:       dbClient,
	}
	return c
}

// Run explores seeds taken from the to-explore queue until it is empty, the
// configured maximum number of items has been processed, or a stop is
// requested.  A stop yields ErrStopRequested.
func (c *Coordinator) Run(stopCh chan struct{}) error {
	if c.db == nil {
		return fmt.Errorf("run requires a db client")
	}
	if stopCh == nil {
		log.Debug("nil stopCh received, this job will not be stoppable")
		stopCh = make(chan struct{})
	}

	var (
		maxItems = c.Explorer.Config.MaxItems
		i        = 0
	)

	for ; maxItems <= 0 || i < maxItems; i++ {
		if shouldStop(stopCh) {
			log.WithField("i", i).Info("Stop request received, run ended")
			return ErrStopRequested
		}

		entry, err := c.db.ToExploreDequeue()
		if err == db.ErrEmptyQueue {
			break
		} else if err != nil {
			return err
		}
		log.WithField("entry", entry.String()).Debug("Processing")

		if c.State.IsFinished(entry.Seed) {
			log.WithField("seed", entry.Seed).Debug("Seed already finished, skipping")
			continue
		}

		if err = c.exploreSeed(entry.Seed); err != nil {
			if err2 := c.requeue(entry, err); err2 != nil {
				return multierr.Append(err, err2)
			}
			return err
		}

		c.logStats()
	}
	log.WithField("i", i).Info("Run ended")
	return nil
}

// Do explores the named seeds, in the order given.  Returns ErrStopRequested
// when stopped before every seed was visited.
func (c *Coordinator) Do(stopCh chan struct{}, seeds ...string) error {
	if stopCh == nil {
		log.Debug("nil stopCh received, this job will not be stoppable")
		stopCh = make(chan struct{})
	}

	i := 0
	for ; i < len(seeds); i++ {
		if shouldStop(stopCh) {
			log.WithField("i", i).Info("Stop request received, do ended")
			return ErrStopRequested
		}
		if c.State.IsFinished(seeds[i]) {
			log.WithField("seed", seeds[i]).Debug("Seed already finished, skipping")
			continue
		}
		if err := c.exploreSeed(seeds[i]); err != nil {
			return err
		}
		c.logStats()
	}
	log.WithField("i", i).Info("Do ended")
	return nil
}

func (c *Coordinator) exploreSeed(seed string) error {
	tally := aggregate.NewTally(seed)

	if err := c.Sink.BeginSeed(seed); err != nil {
		return fmt.Errorf("seed %q: %s", seed, err)
	}

	if _, err := c.Explorer.Explore(seed, c.State, c.Frontier, func(p domain.Path) error {
		tally.Add(p)
		return c.Sink.Path(p)
	}); err != nil {
		return fmt.Errorf("exploring seed %q: %s", seed, err)
	}

	result := tally.Result()
	if err := c.Sink.EndSeed(result); err != nil {
		return fmt.Errorf("seed %q: %s", seed, err)
	}

	c.State.Finish(seed)

	c.mu.Lock()
	c.numProcessed++
	c.numPaths += result.NumPaths
	c.mu.Unlock()

	log.WithField("seed", seed).
		WithField("paths", result.NumPaths).
		WithField("collaborators", len(result.Collaborators)).
		WithField("stronger", len(result.Stronger)).
		Info("Seed explored")
	return nil
}

func (c *Coordinator) requeue(entry *domain.ToExploreEntry, cause error) error {
	log.WithField("ToExploreEntry", entry.String()).Errorf("Issue exploring seed, attempting re-queue due to: %s", cause)
	entry.Attempts++
	if err := c.db.ToExploreRequeue([]*domain.ToExploreEntry{entry}, nil); err != nil {
		log.WithField("ToExploreEntry", entry.String()).Errorf("Re-queueing explore entry failed: %s", err)
		return err
	}
	log.WithField("ToExploreEntry", entry.String()).Debug("Re-queued OK")
	return nil
}

func (c *Coordinator) NumProcessed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.numProcessed
}

func (c *Coordinator) NumPaths() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.numPaths
}

func (c *Coordinator) logStats() {
	fields := log.Fields{
		"processed": c.NumProcessed(),
		"paths":     c.NumPaths(),
		"finished":  c.State.Len(),
	}
	if c.db != nil {
		ql, _ := c.db.ToExploreLen()
		fields["to-explore"] = ql
	}
	log.WithFields(fields).Debug("Stats")
}

func shouldStop(stopCh chan struct{}) bool {
	select {
	case <-stopCh:
		return true
	default:
		return false
	}
}
