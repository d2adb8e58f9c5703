package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
)

var (
	ReportMaxCollaborators = 5
	ReportTopPaths         = 3
)

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report [seed]...",
		Short: "Tabular summary of explored seeds",
		Long:  "Renders the last exploration run followed by per-seed path, collaborator and stronger collaboration counts",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := db.WithClient(mustDBConfig(), func(dbClient *db.Client) error {
				return report(dbClient, args...)
			}); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	reportCmd.Flags().IntVarP(&ReportMaxCollaborators, "max-collaborators", "c", ReportMaxCollaborators, "Number of collaborators to show per seed")
	reportCmd.Flags().IntVarP(&ReportTopPaths, "top-paths", "t", ReportTopPaths, "Number of highest scoring paths to show for each seed named on the command-line")

	return reportCmd
}

func report(dbClient *db.Client, seeds ...string) error {
	var lastRun string
	if err := dbClient.Meta(LastRunMetaKey, &lastRun); err != nil && err != db.ErrKeyNotFound {
		return err
	}
	if len(lastRun) > 0 {
		run := &domain.RunMetadata{}
		if err := dbClient.Meta(runMetaKey(lastRun), run); err != nil {
			return err
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Run", "Started", "Duration", "DOS", "KWWT", "PWT", "Divergent", "Seeds", "Paths"})
		table.Append([]string{
			run.ID,
			time.Unix(run.StartedAt, 0).Format(time.RFC3339),
			(time.Duration(run.FinishedAt-run.StartedAt) * time.Second).String(),
			fmt.Sprint(run.MaxDepth),
			domain.FormatScore(run.KeywordWeightThreshold),
			domain.FormatScore(run.PathScoreThreshold),
			fmt.Sprint(run.Divergent),
			fmt.Sprint(run.NumSeeds),
			fmt.Sprint(run.NumPaths),
		})
		table.Render()
	}

	wanted := map[string]struct{}{}
	for _, seed := range seeds {
		wanted[seed] = struct{}{}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Seed", "Paths", "Collaborators", "Stronger", "Top collaborators"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	n := 0
	if err := dbClient.EachSeed(func(r *domain.SeedRecord) {
		if _, ok := wanted[r.Seed]; len(wanted) > 0 && !ok {
			return
		}
		table.Append([]string{
			r.Seed,
			fmt.Sprint(r.NumPaths),
			fmt.Sprint(len(r.Collaborators)),
			fmt.Sprint(len(r.Stronger)),
			topCollaborators(r, ReportMaxCollaborators),
		})
		n++
	}); err != nil {
		return err
	}
	if n == 0 {
		log.Info("No explored seeds to report")
		return nil
	}
	table.Render()

	if ReportTopPaths <= 0 {
		return nil
	}
	for _, seed := range seeds {
		if err := reportTopPaths(dbClient, seed, ReportTopPaths); err != nil {
			return err
		}
	}
	return nil
}

func reportTopPaths(dbClient *db.Client, seed string, n int) error {
	paths := []domain.Path{}
	if err := dbClient.EachPath(seed, func(p domain.Path) {
		paths = append(paths, p)
	}); err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Seed", "Score", "Path"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, p := range domain.TopPaths(paths, n) {
		table.Append([]string{seed, domain.FormatScore(p.Score), strings.Join(p.Tokens, " > ")})
	}
	table.Render()
	return nil
}

// topCollaborators lists the strongest collaborators first, then the rest in
// name order.
func topCollaborators(r *domain.SeedRecord, limit int) string {
	var (
		top      = make([]string, 0, limit)
		seen     = map[string]struct{}{}
		stronger = r.StrongerCollaborations()
	)
	sort.SliceStable(stronger, func(i, j int) bool {
		return stronger[i].Count > stronger[j].Count
	})
	for _, sc := range stronger {
		if len(top) >= limit {
			break
		}
		top = append(top, fmt.Sprintf("%v(%v)", sc.Collaborator, sc.Count))
		seen[sc.Collaborator] = struct{}{}
	}
	for _, c := range r.Collaborators {
		if len(top) >= limit {
			break
		}
		if _, ok := seen[c]; !ok {
			top = append(top, c)
		}
	}
	return strings.Join(top, " ")
}
