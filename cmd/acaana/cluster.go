package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/aggregate"
	"jaytaylor.com/acaana/cluster"
	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/output"
)

var ClusterShowMerges bool

func newClusterCmd() *cobra.Command {
	clusterCmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster seed authors by shared collaborators",
		Long:  "Greedily merges explored seed authors sharing more than a threshold number of collaborators, storing the clusters and writing clusters.csv",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
				return clusterSeeds(dbClient)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	clusterCmd.Flags().IntVarP(&cluster.DefaultThreshold, "threshold", "t", cluster.DefaultThreshold, "Groups must share strictly more than this many collaborators to merge")
	clusterCmd.Flags().IntVarP(&cluster.DefaultIterations, "iterations", "i", cluster.DefaultIterations, "Number of merge iterations")
	clusterCmd.Flags().StringVarP(&OutDir, "out", "o", OutDir, "Results root directory")
	clusterCmd.Flags().BoolVarP(&ClusterShowMerges, "merges", "", ClusterShowMerges, "Print the applied merges as JSON")

	return clusterCmd
}

func clusterSeeds(dbClient *db.Client) error {
	engine, err := cluster.New(cluster.NewConfig())
	if err != nil {
		return err
	}

	results := []domain.SeedResult{}
	if err := dbClient.EachSeed(func(r *domain.SeedRecord) {
		results = append(results, r.SeedResult())
	}); err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no explored seeds found in %v, run explore first", DBFile)
	}

	result := engine.Cluster(aggregate.ClusterInput(results))

	if err := dbClient.ClusterSave(result.Clusters...); err != nil {
		return err
	}

	if err := os.MkdirAll(OutDir, 0755); err != nil {
		return err
	}
	name := filepath.Join(OutDir, output.ClustersFile)
	if err := output.WriteFile(name, func(w io.Writer) error {
		return output.WriteClusters(w, result.Clusters)
	}); err != nil {
		return err
	}

	log.WithField("seeds", len(results)).
		WithField("clusters", len(result.Clusters)).
		WithField("merges", len(result.Merges)).
		WithField("iterations", result.Iterations).
		WithField("file", name).
		Info("Clustering finished")

	if ClusterShowMerges {
		return emitJSON(result.Merges)
	}
	return nil
}
