package main

import (
	"encoding/json"
	"fmt"

	"github.com/onrik/logrus/filename"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/explorer"
	"jaytaylor.com/acaana/ingest"
)

var (
	DBDriver = "bolt"
	DBFile   = "acaana.bolt"
	Quiet    bool
	Verbose  bool

	AuthorKeywordsFile string
	KeywordAuthorsFile string
	AnnotationsFile    string

	OutDir = "results"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "acaana",
		Short: "Mine an author-keyword graph for potential collaborators",
		Long:  "Explores chains of authors connected through semantically weighted keywords, and clusters authors sharing many collaborators",
	}

	rootCmd.PersistentFlags().BoolVarP(&Quiet, "quiet", "q", false, "Activate quiet log output")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Activate verbose log output")
	rootCmd.PersistentFlags().StringVarP(&DBDriver, "driver", "D", DBDriver, "DB backend driver")
	rootCmd.PersistentFlags().StringVarP(&DBFile, "db", "b", DBFile, "Path to BoltDB file")

	rootCmd.AddCommand(
		newExploreCmd(),
		newClusterCmd(),
		newPairsCmd(),
		newAnnotateCmd(),
		newTopicsCmd(),
		newSeedsCmd(),
		newStatsCmd(),
		newReportCmd(),
	)

	return rootCmd
}

func main() {
	cfg := NewConfig()
	if err := cfg.Do(); err != nil {
		log.Fatalf("main: %s", err)
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func initLogging() {
	level := log.InfoLevel
	if Verbose {
		log.AddHook(filename.NewHook())
		level = log.DebugLevel
	}
	if Quiet {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
}

func emitJSON(x interface{}) error {
	bs, err := json.MarshalIndent(x, "", "    ")
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", string(bs))
	return nil
}

// addInputFlags registers the input table flags on commands which load the
// graph.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&AuthorKeywordsFile, "author-keywords", "a", AuthorKeywordsFile, "Path to author,count,keyword... table")
	cmd.Flags().StringVarP(&KeywordAuthorsFile, "keyword-authors", "k", KeywordAuthorsFile, "Path to keyword,count,author... table")
	cmd.Flags().StringVarP(&AnnotationsFile, "annotations", "w", AnnotationsFile, "Path to keyword;weight;topicPath table")
	cmd.Flags().BoolVarP(&ingest.UseXZFileDecompression, "xz", "x", ingest.UseXZFileDecompression, "Activate XZ decompression when reading file-based input (including STDIN)")
}

func loadInputs() (*ingest.Inputs, error) {
	files := ingest.Files{
		AuthorKeywords: AuthorKeywordsFile,
		KeywordAuthors: KeywordAuthorsFile,
		Annotations:    AnnotationsFile,
	}
	if len(files.AuthorKeywords) == 0 && len(files.KeywordAuthors) == 0 {
		return nil, fmt.Errorf("at least one of --author-keywords or --keyword-authors is required")
	}
	return ingest.Load(files)
}

// seedPredicate compiles the configured seed pattern.
func seedPredicate() (func(string) bool, error) {
	return explorer.NewConfig().SeedPredicate()
}
