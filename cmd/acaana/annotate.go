package main

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jaytaylor.com/acaana/hierarchy"
	"jaytaylor.com/acaana/ingest"
	"jaytaylor.com/acaana/output"
)

var (
	AnnotateSubheadingsFile string
	AnnotateOutFile         = output.AnnotationsFile
)

func newAnnotateCmd() *cobra.Command {
	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Compute keyword weights and topic paths",
		Long:  "Resolves each keyword used by more than one author against the topic hierarchy and writes keyword;weight;topicPath rows",
		PreRun: func(_ *cobra.Command, _ []string) {
			initLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := annotate(); err != nil {
				log.Fatalf("main: %s", err)
			}
		},
	}

	annotateCmd.Flags().StringVarP(&KeywordAuthorsFile, "keyword-authors", "k", KeywordAuthorsFile, "Path to keyword,count,author... table")
	annotateCmd.Flags().StringVarP(&AnnotateSubheadingsFile, "subheadings", "S", AnnotateSubheadingsFile, "Optional keyword;weight;subheading table naming the topic each keyword resolves through")
	annotateCmd.Flags().StringVarP(&AnnotateOutFile, "out", "o", AnnotateOutFile, "Output file, \"-\" for STDOUT")
	annotateCmd.Flags().BoolVarP(&ingest.UseXZFileDecompression, "xz", "x", ingest.UseXZFileDecompression, "Activate XZ decompression when reading file-based input (including STDIN)")

	return annotateCmd
}

func annotate() error {
	if len(KeywordAuthorsFile) == 0 {
		return errors.New("--keyword-authors is required")
	}
	in, err := ingest.Load(ingest.Files{KeywordAuthors: KeywordAuthorsFile})
	if err != nil {
		return err
	}

	subheadings := map[string]string{}
	if len(AnnotateSubheadingsFile) > 0 {
		rc, err := ingest.Open(AnnotateSubheadingsFile)
		if err != nil {
			return err
		}
		rows, warnings, err := ingest.ReadAnnotationRows(rc, AnnotateSubheadingsFile)
		rc.Close()
		if err != nil {
			return err
		}
		ingest.LogWarnings(warnings)
		subheadings = ingest.Subheadings(rows)
	}

	kws, unresolved, err := hierarchy.Default().Annotate(in.KeywordUsage, subheadings)
	if err != nil {
		return err
	}

	w := os.Stdout
	if AnnotateOutFile != "-" {
		f, err := os.Create(AnnotateOutFile)
		if err != nil {
			return errors.Wrapf(err, "creating %q", AnnotateOutFile)
		}
		defer f.Close()
		w = f
	}
	if err := ingest.WriteAnnotations(w, kws); err != nil {
		return errors.Wrapf(err, "writing %q", AnnotateOutFile)
	}

	for _, kw := range unresolved {
		log.WithField("keyword", kw).Debug("Keyword topic unresolved")
	}
	log.WithField("annotated", len(kws)).WithField("unresolved", len(unresolved)).Info("Annotation finished")
	return nil
}
