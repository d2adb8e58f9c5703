package ingest

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/graph"
)

// Files names the input tables.
type Files struct {
	AuthorKeywords string // author,count,keyword1,keyword2,...
	KeywordAuthors string // keyword,count,author1,author2,...
	Annotations    string // keyword;weight;topicPath
}

// Inputs holds the parsed contents of all input tables.
type Inputs struct {
	AuthorKeywords Adjacency
	KeywordAuthors Adjacency
	KeywordUsage   Counts
	Keywords       domain.Keywords
	Warnings       []Warning
}

// Load reads every configured input table.  Malformed rows are collected as
// warnings and logged, unreadable files are fatal.
func Load(files Files) (*Inputs, error) {
	in := &Inputs{
		AuthorKeywords: Adjacency{},
		KeywordAuthors: Adjacency{},
		KeywordUsage:   Counts{},
		Keywords:       domain.Keywords{},
		Warnings:       []Warning{},
	}

	if len(files.AuthorKeywords) > 0 {
		adj, _, warnings, err := readAdjacencyFile(files.AuthorKeywords)
		if err != nil {
			return nil, err
		}
		in.AuthorKeywords = adj
		in.Warnings = append(in.Warnings, warnings...)
	}

	if len(files.KeywordAuthors) > 0 {
		adj, counts, warnings, err := readAdjacencyFile(files.KeywordAuthors)
		if err != nil {
			return nil, err
		}
		in.KeywordAuthors = adj
		in.KeywordUsage = counts
		in.Warnings = append(in.Warnings, warnings...)
	}

	if len(files.Annotations) > 0 {
		rc, err := Open(files.Annotations)
		if err != nil {
			return nil, err
		}
		kws, warnings, err := ReadAnnotations(rc, files.Annotations)
		rc.Close()
		if err != nil {
			return nil, err
		}
		in.Keywords = kws
		in.Warnings = append(in.Warnings, warnings...)
	}

	LogWarnings(in.Warnings)
	log.WithField("authors", len(in.AuthorKeywords)).
		WithField("keywords", len(in.KeywordAuthors)).
		WithField("annotations", len(in.Keywords)).
		WithField("warnings", len(in.Warnings)).
		Info("Loaded input tables")

	return in, nil
}

func readAdjacencyFile(name string) (Adjacency, Counts, []Warning, error) {
	rc, err := Open(name)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rc.Close()

	adj, counts, warnings, err := ReadAdjacency(rc, name)
	if err != nil {
		return nil, nil, warnings, errors.Wrapf(err, "loading adjacency table %q", name)
	}
	return adj, counts, warnings, nil
}

// Index builds the graph index from the two adjacency tables.
func (in *Inputs) Index() *graph.Index {
	return graph.Build(in.AuthorKeywords, in.KeywordAuthors)
}
