package explorer

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/graph"
	"jaytaylor.com/acaana/pkg/contains"
)

// Topics computes the semantic distance between two topic labels.
// *hierarchy.Hierarchy satisfies it.
type Topics interface {
	Distance(topicA string, topicB string) int
}

// Explorer enumerates the complete, threshold-passing author, keyword,
// author, ... chains reachable from a seed author.
//
// The traversal is an exhaustive depth-first search.  Partial paths live on a
// Frontier and children are pushed in reverse so that paths are produced in
// the same order as a recursive walk over the sorted adjacency lists.
type Explorer struct {
	Config   *Config
	Index    *graph.Index
	Keywords domain.Keywords
	Topics   Topics
	IsSeed   func(author string) bool

	distances map[topicPair]int
}

type topicPair struct {
	a, b string
}

// New validates the configuration and returns an explorer over the given
// graph and keyword annotations.
func New(cfg *Config, idx *graph.Index, kws domain.Keywords, topics Topics) (*Explorer, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	isSeed, err := cfg.SeedPredicate()
	if err != nil {
		return nil, err
	}
	e := &Explorer{
		Config:    cfg,
		Index:     idx,
		Keywords:  kws,
		Topics:    topics,
		IsSeed:    isSeed,
		distances: map[topicPair]int{},
	}
	return e, nil
}

// Explore walks every eligible chain starting at seed and invokes emit for
// each complete path whose score meets the path score threshold.  A seed
// absent from the index yields no paths.  Returns the number of emitted
// paths.
//
// State is only read; marking the seed finished is up to the caller.
func (e *Explorer) Explore(seed string, state *State, frontier Frontier, emit func(p domain.Path) error) (int, error) {
	if state == nil {
		state = NewState()
	}
	if frontier == nil {
		frontier = NewMemoryFrontier()
	}
	if !e.Index.HasAuthor(seed) {
		log.WithField("seed", seed).Debug("Seed not present in index, nothing to explore")
		return 0, nil
	}
	if err := frontier.Reset(); err != nil {
		return 0, fmt.Errorf("resetting frontier: %s", err)
	}
	if err := frontier.Push([]string{seed}); err != nil {
		return 0, fmt.Errorf("pushing seed %q: %s", seed, err)
	}

	var (
		n        int
		complete int
		pruned   int
	)

	for {
		tokens, ok, err := frontier.Pop()
		if err != nil {
			return n, fmt.Errorf("popping frontier: %s", err)
		}
		if !ok {
			break
		}

		p := domain.Path{Tokens: tokens}

		if p.Hops() >= e.Config.MaxDepth {
			complete++
			p.Score = e.Score(p)
			if p.Score < e.Config.PathScoreThreshold {
				continue
			}
			if err := emit(p); err != nil {
				return n, err
			}
			n++
			continue
		}

		children := e.extensions(p, state)
		if len(children) == 0 {
			pruned++
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			if err := frontier.Push(children[i]); err != nil {
				return n, fmt.Errorf("pushing frontier: %s", err)
			}
		}
	}

	log.WithField("seed", seed).
		WithField("complete", complete).
		WithField("emitted", n).
		WithField("dead-ends", pruned).
		Debug("Exploration finished")
	return n, nil
}

// Paths is a convenience wrapper around Explore which collects the emitted
// paths in memory.
func (e *Explorer) Paths(seed string, state *State) ([]domain.Path, error) {
	paths := []domain.Path{}
	if _, err := e.Explore(seed, state, NewMemoryFrontier(), func(p domain.Path) error {
		paths = append(paths, p)
		return nil
	}); err != nil {
		return nil, err
	}
	return paths, nil
}

// extensions returns the token lists of every valid one-hop extension of p,
// in traversal order.
func (e *Explorer) extensions(p domain.Path, state *State) [][]string {
	var (
		last     = p.Terminal()
		keywords = p.Keywords()
		authors  = p.Authors()
		children = [][]string{}
	)
	for _, kw := range e.Index.AuthorKeywords(last) {
		if !e.eligibleKeyword(kw, keywords) {
			continue
		}
		for _, author := range e.Index.KeywordAuthors(kw) {
			if !e.eligibleAuthor(author, authors, state) {
				continue
			}
			tokens := make([]string, len(p.Tokens), len(p.Tokens)+2)
			copy(tokens, p.Tokens)
			children = append(children, append(tokens, kw, author))
		}
	}
	return children
}

func (e *Explorer) eligibleKeyword(kw string, used []string) bool {
	if len(kw) == 0 || kw == e.Config.Placeholder {
		return false
	}
	annotation, ok := e.Keywords.Get(kw)
	if !ok || annotation.Weight < e.Config.KeywordWeightThreshold {
		return false
	}
	if contains.String(used, kw) {
		return false
	}
	if e.Config.Divergent {
		topic := annotation.Topic()
		for _, k := range used {
			if e.distance(topic, e.Keywords.Topic(k)) == 0 {
				return false
			}
		}
	}
	return true
}

func (e *Explorer) eligibleAuthor(author string, used []string, state *State) bool {
	switch {
	case len(author) == 0, author == e.Config.Placeholder:
		return false
	case contains.String(used, author):
		return false
	case state.IsFinished(author):
		return false
	case e.IsSeed != nil && e.IsSeed(author):
		return false
	}
	return true
}

// Score sums the weights of the path's keywords plus the semantic distance
// between the topics of each pair of consecutive keywords, i.e. keywords
// separated by exactly one author.
func (e *Explorer) Score(p domain.Path) float64 {
	var (
		kws   = p.Keywords()
		score float64
		prev  string
	)
	for i, kw := range kws {
		annotation, _ := e.Keywords.Get(kw)
		score += annotation.Weight
		topic := annotation.Topic()
		if i > 0 {
			score += float64(e.distance(topic, prev))
		}
		prev = topic
	}
	return score
}

func (e *Explorer) distance(a string, b string) int {
	if e.Topics == nil || len(a) == 0 || len(b) == 0 {
		return 0
	}
	if b < a {
		a, b = b, a
	}
	key := topicPair{a: a, b: b}
	if d, ok := e.distances[key]; ok {
		return d
	}
	if e.distances == nil {
		e.distances = map[topicPair]int{}
	}
	d := e.Topics.Distance(a, b)
	e.distances[key] = d
	return d
}
