package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/hierarchy"
)

func newStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:     "statistics",
		Aliases: []string{"stats", "stat", "st"},
		Short:   "Statistics information",
		Long:    "Statistics-related information",
	}

	statsCmd.AddCommand(
		newDBStatsCmd(),
		newGraphStatsCmd(),
	)

	return statsCmd
}

func newDBStatsCmd() *cobra.Command {
	dbStatsCmd := &cobra.Command{
		Use:   "db",
		Short: "DB table-entry counts",
		Long:  "Displays the entry counts of every table and queue",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
				counts, err := dbCounts(dbClient)
				if err != nil {
					return err
				}
				return emitJSON(counts)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}
	return dbStatsCmd
}

func dbCounts(dbClient *db.Client) (map[string]int, error) {
	counts := map[string]int{}
	for _, table := range db.KVTables() {
		l, err := dbClient.Backend().Len(table)
		if err != nil {
			return nil, fmt.Errorf("getting len(%v): %s", table, err)
		}
		counts[table] = l
	}
	for _, table := range db.QTables() {
		l, err := dbClient.Queue().Len(table, 0)
		if err != nil {
			return nil, fmt.Errorf("getting len(%v): %s", table, err)
		}
		counts[table] = l
	}
	return counts, nil
}

func newGraphStatsCmd() *cobra.Command {
	graphStatsCmd := &cobra.Command{
		Use:   "graph",
		Short: "Input graph statistics",
		Long:  "Loads the input tables and displays author, keyword, edge and annotation counts",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			in, err := loadInputs()
			if err != nil {
				log.Fatalf("main: %s", err)
			}
			idx := in.Index()
			if err := idx.Validate(); err != nil {
				log.Warnf("Index asymmetric: %s", err)
			}
			isSeed, err := seedPredicate()
			if err != nil {
				log.Fatalf("main: %s", err)
			}
			seeds := 0
			for _, author := range idx.Authors() {
				if isSeed(author) {
					seeds++
				}
			}
			stats := map[string]interface{}{
				"graph":       idx.Stats(),
				"seeds":       seeds,
				"annotations": len(in.Keywords),
				"warnings":    len(in.Warnings),
				"median":      hierarchy.MedianUsage(in.KeywordUsage),
			}
			if err := emitJSON(stats); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	addInputFlags(graphStatsCmd)

	return graphStatsCmd
}
