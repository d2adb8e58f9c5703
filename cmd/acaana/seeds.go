package main

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/ingest"
	"jaytaylor.com/acaana/output"
)

var (
	EnqueueReason   = "requested at cmdline"
	EnqueuePriority = db.DefaultQueuePriority
	EnqueueForce    bool

	BootstrapSeedsFile string
)

func newSeedsCmd() *cobra.Command {
	seedsCmd := &cobra.Command{
		Use:     "seeds",
		Aliases: []string{"seed", "queue"},
		Short:   "To-explore seed queue",
		Long:    "Manage the persistent queue of seed authors awaiting exploration",
	}

	seedsCmd.AddCommand(
		newSeedsEnqueueCmd(),
		newSeedsBootstrapCmd(),
		newSeedsLsCmd(),
		newSeedsPathsCmd(),
		newSeedsExportCmd(),
		newSeedsPurgeCmd(),
	)

	return seedsCmd
}

func newSeedsEnqueueCmd() *cobra.Command {
	enqueueCmd := &cobra.Command{
		Use:   "enqueue <seed>...",
		Short: "Add seeds to the to-explore queue",
		Long:  "Add one or more seed authors to the to-explore queue",
		Args:  cobra.MinimumNArgs(1),
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
				entries := make([]*domain.ToExploreEntry, len(args))
				for i, arg := range args {
					entries[i] = domain.NewToExploreEntry(arg, EnqueueReason)
				}
				opts := db.NewQueueOptions()
				opts.Priority = EnqueuePriority
				var (
					n   int
					err error
				)
				if EnqueueForce {
					err = dbClient.ToExploreRequeue(entries, opts)
					n = len(entries)
				} else {
					n, err = dbClient.ToExploreAdd(entries, opts)
				}
				if err != nil {
					return err
				}
				log.WithField("added", n).WithField("supplied", len(args)).Info("Enqueue operation finished")
				return nil
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	enqueueCmd.Flags().StringVarP(&EnqueueReason, "reason", "r", EnqueueReason, "Reason for addition")
	enqueueCmd.Flags().IntVarP(&EnqueuePriority, "priority", "p", EnqueuePriority, "Queue priority level, 1 being the most urgent")
	enqueueCmd.Flags().BoolVarP(&EnqueueForce, "force", "f", EnqueueForce, "Enqueue even when already queued")

	return enqueueCmd
}

func newSeedsBootstrapCmd() *cobra.Command {
	bootstrapCmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Fill the to-explore queue",
		Long:  "Enqueue every author of the graph matching the seed pattern, or the seeds listed in a file",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := bootstrap(); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	addInputFlags(bootstrapCmd)
	bootstrapCmd.Flags().StringVarP(&BootstrapSeedsFile, "seeds-file", "f", BootstrapSeedsFile, "Path to a file listing one seed per line, \"-\" for STDIN")
	bootstrapCmd.Flags().IntVarP(&ingest.AddBatchSize, "batch-size", "B", ingest.AddBatchSize, "Batch size per DB transaction when bulk-loading to-explore entries")
	bootstrapCmd.Flags().IntVarP(&EnqueuePriority, "priority", "p", EnqueuePriority, "Queue priority level, 1 being the most urgent")

	return bootstrapCmd
}

func bootstrap() error {
	cfg := ingest.NewBootstrapConfig()
	cfg.SeedsInputFile = BootstrapSeedsFile
	cfg.Priority = EnqueuePriority

	isSeed, err := seedPredicate()
	if err != nil {
		return err
	}

	var in *ingest.Inputs
	if len(BootstrapSeedsFile) == 0 {
		if in, err = loadInputs(); err != nil {
			return err
		}
	} else {
		in = &ingest.Inputs{}
	}

	return db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
		_, err := ingest.Bootstrap(dbClient, in.Index(), isSeed, cfg)
		return err
	})
}

func newSeedsLsCmd() *cobra.Command {
	lsCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List queued seeds",
		Long:    "Emits every to-explore entry as JSON, in dequeue order",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
				entries := []*domain.ToExploreEntry{}
				if err := dbClient.EachToExplore(func(entry *domain.ToExploreEntry) {
					entries = append(entries, entry)
				}); err != nil {
					return err
				}
				return emitJSON(entries)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}
	return lsCmd
}

func newSeedsPathsCmd() *cobra.Command {
	pathsCmd := &cobra.Command{
		Use:   "paths <seed>",
		Short: "Print the stored paths of a seed",
		Long:  "Emits every stored complete path of the seed as score,seed,kw1,author1,... rows on STDOUT",
		Args:  cobra.ExactArgs(1),
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
				paths := []domain.Path{}
				if err := dbClient.EachPath(args[0], func(p domain.Path) {
					paths = append(paths, p)
				}); err != nil {
					return err
				}
				return output.WritePaths(os.Stdout, paths)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}
	return pathsCmd
}

func newSeedsExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Rewrite collaborator tables from the DB",
		Long:  "Writes the collaborator and stronger collaboration tables of every stored seed into the output directory",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), exportResults); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	exportCmd.Flags().StringVarP(&OutDir, "out", "o", OutDir, "Results root directory")

	return exportCmd
}

func exportResults(dbClient *db.Client) error {
	results := []domain.SeedResult{}
	if err := dbClient.EachSeed(func(r *domain.SeedRecord) {
		results = append(results, r.SeedResult())
	}); err != nil {
		return err
	}

	if err := os.MkdirAll(OutDir, 0755); err != nil {
		return err
	}
	var (
		collaboratorsName = filepath.Join(OutDir, output.CollaboratorsFile)
		strongerName      = filepath.Join(OutDir, output.StrongerFile)
	)
	if err := output.WriteFile(collaboratorsName, func(collaborators io.Writer) error {
		return output.WriteFile(strongerName, func(stronger io.Writer) error {
			return output.WriteResults(collaborators, stronger, results)
		})
	}); err != nil {
		return err
	}

	log.WithField("seeds", len(results)).WithField("dir", OutDir).Info("Export finished")
	return nil
}

func newSeedsPurgeCmd() *cobra.Command {
	purgeCmd := &cobra.Command{
		Use:   "purge [table]...",
		Short: "Purge tables",
		Long:  "Resets the named DB tables, or every table when none are named",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
				for _, table := range args {
					if !db.IsKV(table) && !db.IsQ(table) {
						log.WithField("table", table).Warn("Unrecognized table")
					}
				}
				if err := dbClient.Purge(args...); err != nil {
					return err
				}
				log.WithField("tables", args).Info("Purge finished")
				return nil
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}
	return purgeCmd
}
