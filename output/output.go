// Package output writes exploration and clustering results as comma-delimited
// tables.  Column order is the contract with downstream consumers.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"jaytaylor.com/acaana/aggregate"
	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/explorer"
)

const (
	CollaboratorsFile  = "collaborating-authors.csv"
	StrongerFile       = "strongerCollabs.csv"
	ClustersFile       = "clusters.csv"
	CoKeywordPairsFile = "cokeyword-pairs.csv"
	AnnotationsFile    = "KeywordAnnotations.csv"
	SeedPathsPrefix    = "collabsFor"
)

// Dir returns the results directory for an exploration configuration, e.g.
// "<root>/divergent/KWWT-1.25-PWT-35-DOS-5".
func Dir(root string, cfg *explorer.Config) string {
	mode := "non-divergent"
	if cfg.Divergent {
		mode = "divergent"
	}
	leaf := fmt.Sprintf("KWWT-%v-PWT-%v-DOS-%v",
		domain.FormatScore(cfg.KeywordWeightThreshold),
		domain.FormatScore(cfg.PathScoreThreshold),
		cfg.MaxDepth,
	)
	return filepath.Join(root, mode, leaf)
}

// SeedPathsFile returns the name of the per-seed path table.
func SeedPathsFile(seed string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		}
		return r
	}, seed)
	return SeedPathsPrefix + safe + ".csv"
}

// table is a csv writer bound to the file it writes.
type table struct {
	name string
	f    *os.File
	w    *csv.Writer
}

func createTable(name string) (*table, error) {
	return openTable(name, false)
}

// openTable opens name for writing, truncating it unless appendRows is set.
func openTable(name string, appendRows bool) (*table, error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendRows {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(name, flag, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", name)
	}
	t := &table{
		name: name,
		f:    f,
		w:    csv.NewWriter(f),
	}
	return t, nil
}

func (t *table) Write(record []string) error {
	if err := t.w.Write(record); err != nil {
		return errors.Wrapf(err, "writing %q", t.name)
	}
	return nil
}

func (t *table) Close() error {
	t.w.Flush()
	err := errors.Wrapf(t.w.Error(), "flushing %q", t.name)
	if closeErr := t.f.Close(); closeErr != nil {
		err = multierr.Append(err, errors.Wrapf(closeErr, "closing %q", t.name))
	}
	return err
}

// WriteFile creates name and hands fn the file to write to.
func WriteFile(name string, fn func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "creating %q", name)
	}
	if err := fn(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %q", name)
	}
	return errors.Wrapf(f.Close(), "closing %q", name)
}

// WritePaths writes one `score,seed,kw1,author1,...` row per path.
func WritePaths(w io.Writer, paths []domain.Path) error {
	cw := csv.NewWriter(w)
	for _, p := range paths {
		if err := cw.Write(p.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteClusters writes `member1,...,memberN,count,common1,...` rows.
func WriteClusters(w io.Writer, clusters []domain.Cluster) error {
	cw := csv.NewWriter(w)
	for _, c := range clusters {
		if err := cw.Write(c.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePairs writes `author1,author2,kw1,kw2,...` rows.
func WritePairs(w io.Writer, rows []aggregate.PairRow) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResults writes the collaborator and stronger collaboration rows of
// the given seed results.
func WriteResults(collaborators io.Writer, stronger io.Writer, results []domain.SeedResult) error {
	var (
		cw = csv.NewWriter(collaborators)
		sw = csv.NewWriter(stronger)
	)
	for _, result := range results {
		if err := writeResult(cw, sw, result); err != nil {
			return err
		}
	}
	cw.Flush()
	sw.Flush()
	return multierr.Append(cw.Error(), sw.Error())
}

func writeResult(collaborators *csv.Writer, stronger *csv.Writer, result domain.SeedResult) error {
	if len(result.Collaborators) > 0 {
		if err := collaborators.Write(result.CollaboratorsRecord()); err != nil {
			return err
		}
	}
	for _, sc := range result.Stronger {
		if err := stronger.Write(sc.Record()); err != nil {
			return err
		}
	}
	return nil
}
