package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/pkg/unique"
)

// Warning describes a skipped input row.
type Warning struct {
	Source string
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%v:%v: %v", w.Source, w.Line, w.Reason)
}

// Adjacency maps a key (author or keyword) to its sorted, de-duplicated
// associated values.
type Adjacency map[string][]string

// Counts is the value-count column of an adjacency table, keyed the same way.
type Counts map[string]int

// LogWarnings emits each warning at WARN level.
func LogWarnings(warnings []Warning) {
	for _, w := range warnings {
		log.WithField("source", w.Source).WithField("line", w.Line).Warn(w.Reason)
	}
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false
	return cr
}

// eachRow invokes fn for every record.  Records the CSV reader rejects are
// reported as warnings, other read errors are fatal.
func eachRow(r io.Reader, source string, fn func(line int, record []string) *Warning) ([]Warning, error) {
	var (
		cr       = newCSVReader(r)
		warnings = []Warning{}
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if pe, ok := err.(*csv.ParseError); ok {
				warnings = append(warnings, Warning{Source: source, Line: pe.Line, Reason: pe.Err.Error()})
				continue
			}
			return warnings, errors.Wrapf(err, "reading %v", source)
		}
		line, _ := cr.FieldPos(0)
		if w := fn(line, record); w != nil {
			warnings = append(warnings, *w)
		}
	}
	return warnings, nil
}

// ReadAdjacency parses rows of the form key,count,value1,value2,...
//
// Rows whose count is 1 or less are skipped silently.  Rows missing the count
// column or with a non-numeric count are skipped and reported as warnings.
// The placeholder token is never accepted as a key or value.
func ReadAdjacency(r io.Reader, source string) (Adjacency, Counts, []Warning, error) {
	var (
		adj    = Adjacency{}
		counts = Counts{}
	)
	warnings, err := eachRow(r, source, func(line int, record []string) *Warning {
		if len(record) < 2 {
			return &Warning{Source: source, Line: line, Reason: fmt.Sprintf("expected at least 2 columns but found %v", len(record))}
		}
		key := strings.TrimSpace(record[0])
		if len(key) == 0 || key == domain.Placeholder {
			return &Warning{Source: source, Line: line, Reason: "empty key"}
		}
		count, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return &Warning{Source: source, Line: line, Reason: fmt.Sprintf("non-numeric count %q", record[1])}
		}
		if count <= 1 {
			return nil
		}
		values := make([]string, 0, len(record)-2)
		for _, v := range record[2:] {
			if v = strings.TrimSpace(v); len(v) > 0 && v != domain.Placeholder {
				values = append(values, v)
			}
		}
		adj[key] = unique.StringsSorted(append(adj[key], values...))
		counts[key] = count
		return nil
	})
	if err != nil {
		return nil, nil, warnings, err
	}
	return adj, counts, warnings, nil
}

// AnnotationRow is a parsed keyword;weight;topicPath row.
type AnnotationRow struct {
	Keyword   string
	Weight    string
	TopicPath string
}

// ReadAnnotationRows parses the first column of each row as
// keyword;weight;topicPath without interpreting the weight.  Rows with fewer
// than two components are reported as warnings.
func ReadAnnotationRows(r io.Reader, source string) ([]AnnotationRow, []Warning, error) {
	rows := []AnnotationRow{}
	warnings, err := eachRow(r, source, func(line int, record []string) *Warning {
		if len(record) == 0 {
			return nil
		}
		components := strings.Split(record[0], ";")
		if len(components) < 2 || len(components) > 3 {
			return &Warning{Source: source, Line: line, Reason: fmt.Sprintf("expected keyword;weight;topicPath but found %v components", len(components))}
		}
		row := AnnotationRow{
			Keyword: strings.TrimSpace(components[0]),
			Weight:  strings.TrimSpace(components[1]),
		}
		if len(components) == 3 {
			row.TopicPath = strings.TrimSpace(components[2])
		}
		if len(row.Keyword) == 0 || row.Keyword == domain.Placeholder {
			return &Warning{Source: source, Line: line, Reason: "empty keyword"}
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}
	return rows, warnings, nil
}

// ReadAnnotations parses keyword;weight;topicPath rows into annotated
// keywords.  Rows without all three components or with a non-numeric weight
// are skipped and reported as warnings.
func ReadAnnotations(r io.Reader, source string) (domain.Keywords, []Warning, error) {
	rows, warnings, err := ReadAnnotationRows(r, source)
	if err != nil {
		return nil, warnings, err
	}
	kws := domain.Keywords{}
	for _, row := range rows {
		if len(row.TopicPath) == 0 {
			warnings = append(warnings, Warning{Source: source, Reason: fmt.Sprintf("keyword %q has no topic path", row.Keyword)})
			continue
		}
		weight, err := strconv.ParseFloat(row.Weight, 64)
		if err != nil {
			warnings = append(warnings, Warning{Source: source, Reason: fmt.Sprintf("keyword %q has non-numeric weight %q", row.Keyword, row.Weight)})
			continue
		}
		kws[row.Keyword] = domain.Keyword{
			Text:      row.Keyword,
			Weight:    weight,
			TopicPath: row.TopicPath,
		}
	}
	return kws, warnings, nil
}

// Subheadings maps each keyword to the topic name it should be resolved
// through, taken from the topic path column of annotation rows.
func Subheadings(rows []AnnotationRow) map[string]string {
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row.TopicPath) > 0 {
			m[row.Keyword] = domain.TopicFromPath(row.TopicPath)
		}
	}
	return m
}

// WriteAnnotations emits keyword;weight;topicPath rows, one per keyword,
// sorted by keyword.
func WriteAnnotations(w io.Writer, kws []domain.Keyword) error {
	sorted := make([]domain.Keyword, len(kws))
	copy(sorted, kws)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Text < sorted[j].Text })

	cw := csv.NewWriter(w)
	for _, kw := range sorted {
		row := strings.Join([]string{kw.Text, domain.FormatScore(kw.Weight), kw.TopicPath}, ";")
		if err := cw.Write([]string{row}); err != nil {
			return errors.Wrap(err, "writing annotation row")
		}
	}
	cw.Flush()
	return cw.Error()
}
