package graph

import (
	"fmt"
	"sort"

	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/pkg/unique"
)

// Index is the bipartite author <-> keyword adjacency structure.  Both sides
// are kept sorted so traversal order is deterministic.
type Index struct {
	authorKeywords map[string][]string
	keywordAuthors map[string][]string
}

// New returns an empty index.
func New() *Index {
	idx := &Index{
		authorKeywords: map[string][]string{},
		keywordAuthors: map[string][]string{},
	}
	return idx
}

// Build constructs a symmetric index from the two externally supplied
// mappings.  An association present on only one side is mirrored onto the
// other.
func Build(authorKeywords map[string][]string, keywordAuthors map[string][]string) *Index {
	idx := New()
	for author, kws := range authorKeywords {
		for _, kw := range kws {
			idx.link(author, kw)
		}
	}
	for kw, authors := range keywordAuthors {
		for _, author := range authors {
			idx.link(author, kw)
		}
	}
	idx.normalize()
	return idx
}

// Add associates an author with one or more keywords.
func (idx *Index) Add(author string, kws ...string) {
	for _, kw := range kws {
		idx.link(author, kw)
	}
	idx.normalize()
}

func (idx *Index) link(author string, kw string) {
	if len(author) == 0 || len(kw) == 0 || author == domain.Placeholder || kw == domain.Placeholder {
		return
	}
	idx.authorKeywords[author] = append(idx.authorKeywords[author], kw)
	idx.keywordAuthors[kw] = append(idx.keywordAuthors[kw], author)
}

func (idx *Index) normalize() {
	for author, kws := range idx.authorKeywords {
		idx.authorKeywords[author] = unique.StringsSorted(kws)
	}
	for kw, authors := range idx.keywordAuthors {
		idx.keywordAuthors[kw] = unique.StringsSorted(authors)
	}
}

// AuthorKeywords returns the sorted keywords of an author.  Unknown authors
// yield nil.
func (idx *Index) AuthorKeywords(author string) []string {
	return idx.authorKeywords[author]
}

// KeywordAuthors returns the sorted authors of a keyword.  Unknown keywords
// yield nil.
func (idx *Index) KeywordAuthors(kw string) []string {
	return idx.keywordAuthors[kw]
}

// HasAuthor returns true if the author has at least one keyword.
func (idx *Index) HasAuthor(author string) bool {
	return len(idx.authorKeywords[author]) > 0
}

// Authors returns every author, sorted.
func (idx *Index) Authors() []string {
	return sortedKeys(idx.authorKeywords)
}

// Keywords returns every keyword, sorted.
func (idx *Index) Keywords() []string {
	return sortedKeys(idx.keywordAuthors)
}

// Usage returns the number of authors of every keyword.
func (idx *Index) Usage() map[string]int {
	usage := make(map[string]int, len(idx.keywordAuthors))
	for kw, authors := range idx.keywordAuthors {
		usage[kw] = len(authors)
	}
	return usage
}

// Stats summarizes the size of the index.
type Stats struct {
	Authors  int `json:"authors"`
	Keywords int `json:"keywords"`
	Edges    int `json:"edges"`
}

func (idx *Index) Stats() Stats {
	s := Stats{
		Authors:  len(idx.authorKeywords),
		Keywords: len(idx.keywordAuthors),
	}
	for _, kws := range idx.authorKeywords {
		s.Edges += len(kws)
	}
	return s
}

// Validate verifies every association appears on both sides of the index.
func (idx *Index) Validate() error {
	for author, kws := range idx.authorKeywords {
		for _, kw := range kws {
			if !containsSorted(idx.keywordAuthors[kw], author) {
				return fmt.Errorf("asymmetric adjacency: author %q lists keyword %q but not vice versa", author, kw)
			}
		}
	}
	for kw, authors := range idx.keywordAuthors {
		for _, author := range authors {
			if !containsSorted(idx.authorKeywords[author], kw) {
				return fmt.Errorf("asymmetric adjacency: keyword %q lists author %q but not vice versa", kw, author)
			}
		}
	}
	return nil
}

func containsSorted(items []string, s string) bool {
	i := sort.SearchStrings(items, s)
	return i < len(items) && items[i] == s
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
