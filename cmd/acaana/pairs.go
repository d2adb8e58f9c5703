package main

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/aggregate"
	"jaytaylor.com/acaana/output"
)

var PairsMaxAuthors = 50

func newPairsCmd() *cobra.Command {
	pairsCmd := &cobra.Command{
		Use:   "pairs",
		Short: "Author pairs sharing a keyword",
		Long:  "Writes cokeyword-pairs.csv, every pair of authors directly sharing at least one keyword along with the shared keywords",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := coKeywordPairs(); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	addInputFlags(pairsCmd)
	pairsCmd.Flags().IntVarP(&PairsMaxAuthors, "max-authors", "M", PairsMaxAuthors, "Skip keywords used by more than this many authors (<=0 signifies unlimited)")
	pairsCmd.Flags().StringVarP(&OutDir, "out", "o", OutDir, "Results root directory")

	return pairsCmd
}

func coKeywordPairs() error {
	in, err := loadInputs()
	if err != nil {
		return err
	}

	pairs := aggregate.CoKeywordPairs(in.Index(), PairsMaxAuthors)

	if err := os.MkdirAll(OutDir, 0755); err != nil {
		return err
	}
	name := filepath.Join(OutDir, output.CoKeywordPairsFile)
	if err := output.WriteFile(name, func(w io.Writer) error {
		return output.WritePairs(w, pairs.Rows())
	}); err != nil {
		return err
	}

	log.WithField("pairs", pairs.Len()).WithField("file", name).Info("Co-keyword pairs written")
	return nil
}
