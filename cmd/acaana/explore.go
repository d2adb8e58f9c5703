package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/explorer"
	"jaytaylor.com/acaana/hierarchy"
	"jaytaylor.com/acaana/ingest"
	"jaytaylor.com/acaana/output"
)

const LastRunMetaKey = "last-run"

var (
	MemoryProfiling bool
	SpillFrontier   bool
	ExploreFresh    bool
)

func newExploreCmd() *cobra.Command {
	exploreCmd := &cobra.Command{
		Use:     "explore [seed...]",
		Aliases: []string{"ex"},
		Short:   "Explore collaboration paths from seed authors",
		Long:    "Explores collaboration paths from the named seed authors, or from every seed author in the to-explore queue when none are named (the queue is bootstrapped from the graph when empty)",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if MemoryProfiling {
				log.Debug("Starting memory profiler")
				p := profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
				defer func() {
					log.Debug("Stopping memory profiler")
					p.Stop()
				}()
			}
			if err := explore(args...); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	addInputFlags(exploreCmd)

	exploreCmd.Flags().IntVarP(&explorer.DefaultMaxDepth, "max-depth", "d", explorer.DefaultMaxDepth, "Degrees of separation of complete paths")
	exploreCmd.Flags().Float64VarP(&explorer.DefaultKeywordWeightThreshold, "keyword-weight", "K", explorer.DefaultKeywordWeightThreshold, "Minimum weight of traversable keywords")
	exploreCmd.Flags().Float64VarP(&explorer.DefaultPathScoreThreshold, "path-score", "P", explorer.DefaultPathScoreThreshold, "Minimum score of emitted paths")
	exploreCmd.Flags().BoolVarP(&explorer.DefaultDivergent, "divergent", "", explorer.DefaultDivergent, "Forbid topically related keywords within a path")
	exploreCmd.Flags().StringVarP(&explorer.DefaultSeedPattern, "seed-pattern", "s", explorer.DefaultSeedPattern, "Regular expression identifying seed authors")
	exploreCmd.Flags().IntVarP(&explorer.DefaultMaxItems, "max-items", "m", explorer.DefaultMaxItems, "Maximum number of queued seeds to explore (<=0 signifies unlimited)")
	exploreCmd.Flags().StringVarP(&OutDir, "out", "o", OutDir, "Results root directory")
	exploreCmd.Flags().BoolVarP(&SpillFrontier, "spill", "", SpillFrontier, "Keep the exploration frontier in the DB instead of memory")
	exploreCmd.Flags().BoolVarP(&ExploreFresh, "fresh", "", ExploreFresh, "Ignore previously finished seeds")
	exploreCmd.Flags().BoolVarP(&MemoryProfiling, "mem-profile", "", MemoryProfiling, "Enable the memory profiler; creates a mem.pprof file when exploration ends")

	return exploreCmd
}

func explore(seeds ...string) error {
	in, err := loadInputs()
	if err != nil {
		return err
	}

	var (
		idx = in.Index()
		cfg = explorer.NewConfig()
	)

	e, err := explorer.New(cfg, idx, in.Keywords, hierarchy.Default())
	if err != nil {
		return err
	}

	return db.WithClient(mustDBConfig(), func(dbClient *db.Client) (err error) {
		state := explorer.NewState()
		if !ExploreFresh {
			if state.Finished, err = dbClient.FinishedSeeds(); err != nil {
				return err
			}
			log.WithField("finished", state.Len()).Debug("Restored finished seeds")
		}

		run := &domain.RunMetadata{
			ID:                     uuid.New().String(),
			StartedAt:              time.Now().Unix(),
			MaxDepth:               int64(cfg.MaxDepth),
			KeywordWeightThreshold: cfg.KeywordWeightThreshold,
			PathScoreThreshold:     cfg.PathScoreThreshold,
			Divergent:              cfg.Divergent,
		}

		fileSink, err := output.NewFileSink(output.Dir(OutDir, cfg), !ExploreFresh)
		if err != nil {
			return err
		}

		c := explorer.NewCoordinator(e, state, explorer.MultiSink{fileSink, explorer.NewDBSink(dbClient, run.ID)}, dbClient)
		if SpillFrontier {
			if c.Frontier, err = dbClient.Frontier(run.ID); err != nil {
				return err
			}
			defer resetFrontier(c.Frontier, &err)
		}

		if len(seeds) == 0 {
			if l, err := dbClient.ToExploreLen(); err != nil {
				return err
			} else if l == 0 {
				if _, err := ingest.Bootstrap(dbClient, idx, e.IsSeed, nil); err != nil {
					return err
				}
			}
		}

		err = runCoordinator(c, seeds...)

		run.FinishedAt = time.Now().Unix()
		run.NumSeeds = int64(c.NumProcessed())
		run.NumPaths = int64(c.NumPaths())
		err = multierr.Append(err, fileSink.Close())
		err = multierr.Append(err, dbClient.MetaSave(runMetaKey(run.ID), run))
		err = multierr.Append(err, dbClient.MetaSave(LastRunMetaKey, run.ID))

		log.WithField("run", run.ID).
			WithField("seeds", run.NumSeeds).
			WithField("paths", run.NumPaths).
			WithField("out", fileSink.Dir).
			Info("Exploration finished")
		return err
	})
}

// runCoordinator runs until completion or until SIGINT/SIGTERM, in which case
// the seed currently being explored is finished first.
func runCoordinator(c *explorer.Coordinator, seeds ...string) error {
	var (
		stopCh = make(chan struct{})
		errCh  = make(chan error)
		sigCh  = make(chan os.Signal, 1)
		err    error
	)

	go func() {
		if len(seeds) > 0 {
			errCh <- c.Do(stopCh, seeds...)
		} else {
			errCh <- c.Run(stopCh)
		}
	}()

	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err = <-errCh:
	case s := <-sigCh:
		log.WithField("sig", s).Info("Received signal, stopping after the current seed")
		close(stopCh)
		err = <-errCh
	}
	if err != nil && err != explorer.ErrStopRequested {
		return err
	}
	return nil
}

// resetFrontier discards a spilled frontier, folding a failure into errp.
func resetFrontier(f explorer.Frontier, errp *error) {
	if err := f.Reset(); err != nil {
		*errp = multierr.Append(*errp, fmt.Errorf("resetting frontier: %s", err))
	}
}

func runMetaKey(id string) string {
	return "run:" + id
}

func mustDBConfig() db.Config {
	cfg, err := db.NewConfig(DBDriver, DBFile)
	if err != nil {
		log.Fatalf("main: %s", err)
	}
	return cfg
}
