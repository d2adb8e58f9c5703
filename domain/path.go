package domain

import (
	"strconv"
	"strings"
)

// Path is an alternating author, keyword, author, ... chain beginning at a
// seed author.
type Path struct {
	Tokens []string
	Score  float64
}

// Hops returns the number of keyword hops (degrees of separation).
func (p Path) Hops() int {
	if len(p.Tokens) == 0 {
		return 0
	}
	return (len(p.Tokens) - 1) / 2
}

// Seed returns the first author of the path.
func (p Path) Seed() string {
	if len(p.Tokens) == 0 {
		return ""
	}
	return p.Tokens[0]
}

// Terminal returns the last author of the path.
func (p Path) Terminal() string {
	if len(p.Tokens) == 0 {
		return ""
	}
	return p.Tokens[len(p.Tokens)-1]
}

// Keywords returns the keywords of the path in traversal order.
func (p Path) Keywords() []string {
	kws := make([]string, 0, p.Hops())
	for i := 1; i < len(p.Tokens); i += 2 {
		kws = append(kws, p.Tokens[i])
	}
	return kws
}

// Authors returns the authors of the path in traversal order.
func (p Path) Authors() []string {
	authors := make([]string, 0, p.Hops()+1)
	for i := 0; i < len(p.Tokens); i += 2 {
		authors = append(authors, p.Tokens[i])
	}
	return authors
}

// Contains returns true if the token appears anywhere in the path.
func (p Path) Contains(token string) bool {
	for _, t := range p.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Extend returns a copy of the path with a keyword and author appended.
func (p Path) Extend(keyword string, author string) Path {
	tokens := make([]string, len(p.Tokens), len(p.Tokens)+2)
	copy(tokens, p.Tokens)
	tokens = append(tokens, keyword, author)
	return Path{Tokens: tokens, Score: p.Score}
}

// Record returns the path as a delimited row with a leading score column.
func (p Path) Record() []string {
	row := make([]string, 0, len(p.Tokens)+1)
	row = append(row, FormatScore(p.Score))
	row = append(row, p.Tokens...)
	return row
}

func (p Path) String() string {
	return strings.Join(p.Record(), ",")
}

// FormatScore renders a score with the shortest exact representation.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
