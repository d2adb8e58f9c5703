package aggregate

import (
	"sort"
	"strconv"

	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/graph"
)

// Pair is an unordered pair of authors, stored with A <= B.
type Pair struct {
	A string
	B string
}

func NewPair(a string, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// PairTable maps author pairs to the keywords which connected them, and
// separately to the number of times they were connected.
type PairTable struct {
	keywords map[Pair]map[string]struct{}
	counts   map[Pair]int
}

func NewPairTable() *PairTable {
	pt := &PairTable{
		keywords: map[Pair]map[string]struct{}{},
		counts:   map[Pair]int{},
	}
	return pt
}

// Add records one co-occurrence of a and b via the given keywords.
func (pt *PairTable) Add(a string, b string, kws ...string) {
	if a == b {
		return
	}
	pair := NewPair(a, b)
	set, ok := pt.keywords[pair]
	if !ok {
		set = map[string]struct{}{}
		pt.keywords[pair] = set
	}
	for _, kw := range kws {
		set[kw] = struct{}{}
	}
	pt.counts[pair]++
}

// AddPath records the path's seed and terminal author as a pair connected by
// every keyword on the path.
func (pt *PairTable) AddPath(p domain.Path) {
	pt.Add(p.Seed(), p.Terminal(), p.Keywords()...)
}

// Merge folds another table into this one.
func (pt *PairTable) Merge(other *PairTable) {
	for pair, set := range other.keywords {
		dst, ok := pt.keywords[pair]
		if !ok {
			dst = map[string]struct{}{}
			pt.keywords[pair] = dst
		}
		for kw := range set {
			dst[kw] = struct{}{}
		}
		pt.counts[pair] += other.counts[pair]
	}
}

// Len returns the number of distinct pairs.
func (pt *PairTable) Len() int {
	return len(pt.counts)
}

// Count returns how many times the pair co-occurred.
func (pt *PairTable) Count(a string, b string) int {
	return pt.counts[NewPair(a, b)]
}

// Keywords returns the sorted keywords connecting the pair.
func (pt *PairTable) Keywords(a string, b string) []string {
	return sortedSet(pt.keywords[NewPair(a, b)])
}

// PairRow is a flattened pair table entry.
type PairRow struct {
	Pair
	Count    int
	Keywords []string
}

// Record returns author1,author2,keyword1,keyword2,...
func (row PairRow) Record() []string {
	rec := make([]string, 0, len(row.Keywords)+2)
	rec = append(rec, row.A, row.B)
	rec = append(rec, row.Keywords...)
	return rec
}

// CountRecord returns author1,author2,count.
func (row PairRow) CountRecord() []string {
	return []string{row.A, row.B, strconv.Itoa(row.Count)}
}

// Rows returns every pair sorted by author names.
func (pt *PairTable) Rows() []PairRow {
	rows := make([]PairRow, 0, len(pt.counts))
	for pair, n := range pt.counts {
		rows = append(rows, PairRow{
			Pair:     pair,
			Count:    n,
			Keywords: sortedSet(pt.keywords[pair]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].A != rows[j].A {
			return rows[i].A < rows[j].A
		}
		return rows[i].B < rows[j].B
	})
	return rows
}

// CoKeywordPairs builds a table of every pair of authors sharing at least one
// keyword directly.  Keywords used by more than maxAuthors authors are skipped
// when maxAuthors is positive, since they produce a quadratic number of pairs.
func CoKeywordPairs(idx *graph.Index, maxAuthors int) *PairTable {
	pt := NewPairTable()
	for _, kw := range idx.Keywords() {
		authors := idx.KeywordAuthors(kw)
		if len(authors) < 2 || (maxAuthors > 0 && len(authors) > maxAuthors) {
			continue
		}
		for i := 0; i < len(authors); i++ {
			for j := i + 1; j < len(authors); j++ {
				pt.Add(authors[i], authors[j], kw)
			}
		}
	}
	return pt
}

// ClusterInput maps each seed with at least one collaborator to its
// collaborator set.
func ClusterInput(results []domain.SeedResult) map[string][]string {
	m := make(map[string][]string, len(results))
	for _, result := range results {
		if len(result.Collaborators) == 0 {
			continue
		}
		m[result.Seed] = result.Collaborators
	}
	return m
}

func sortedSet(set map[string]struct{}) []string {
	s := make([]string, 0, len(set))
	for k := range set {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}
