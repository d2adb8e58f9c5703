package ingest

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/graph"
)

var (
	AddBatchSize = 25000
)

type BootstrapConfig struct {
	SeedsInputFile string // Optional list of seeds, one per line, may be set to "-" to read from STDIN.
	Reason         string
	Priority       int
	SkipFinished   bool // Don't enqueue seeds which already have stored results.
}

func NewBootstrapConfig() *BootstrapConfig {
	cfg := &BootstrapConfig{
		Reason:       "bootstrap",
		Priority:     db.DefaultQueuePriority,
		SkipFinished: true,
	}
	return cfg
}

// Bootstrap fills the to-explore queue.  Seeds come from the seeds file when
// one is configured, otherwise every author of the index matching isSeed is
// enqueued.  Returns the number of newly queued seeds.
func Bootstrap(dbClient *db.Client, idx *graph.Index, isSeed func(author string) bool, config *BootstrapConfig) (int, error) {
	if config == nil {
		config = NewBootstrapConfig()
	}

	var (
		seeds []string
		err   error
	)

	if config.SeedsInputFile != "" {
		if seeds, err = readSeeds(config.SeedsInputFile); err != nil {
			return 0, err
		}
	} else {
		for _, author := range idx.Authors() {
			if isSeed(author) {
				seeds = append(seeds, author)
			}
		}
	}

	finished := map[string]struct{}{}
	if config.SkipFinished {
		if finished, err = dbClient.FinishedSeeds(); err != nil {
			return 0, err
		}
	}

	var (
		batch        = make([]*domain.ToExploreEntry, 0, AddBatchSize)
		opts         = &db.QueueOptions{Priority: config.Priority}
		numAttempted int
		numNew       int
		n            int
	)

	doBatch := func() error {
		if n, err = dbClient.ToExploreAdd(batch, opts); err != nil {
			return err
		}
		numNew += n
		numAttempted += len(batch)
		log.WithField("this-batch", len(batch)).WithField("total-attempted", numAttempted).WithField("total-new", numNew).Debug("Added batch of to-explore entries to DB")
		batch = make([]*domain.ToExploreEntry, 0, AddBatchSize)
		return nil
	}

	for _, seed := range seeds {
		if _, ok := finished[seed]; ok {
			continue
		}
		batch = append(batch, domain.NewToExploreEntry(seed, config.Reason))

		if len(batch) == AddBatchSize {
			if err = doBatch(); err != nil {
				return numNew, err
			}
		}
	}
	if len(batch) > 0 {
		if err = doBatch(); err != nil {
			return numNew, err
		}
	}

	log.WithField("candidates", len(seeds)).WithField("new", numNew).Info("Bootstrap finished")
	return numNew, nil
}

func readSeeds(name string) ([]string, error) {
	rc, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var (
		seeds   = []string{}
		scanner = bufio.NewScanner(rc)
	)
	for scanner.Scan() {
		if seed := strings.TrimSpace(scanner.Text()); len(seed) > 0 && seed != domain.Placeholder {
			seeds = append(seeds, seed)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading seeds from %q", name)
	}
	return seeds, nil
}
