package aggregate

import (
	"sort"

	"jaytaylor.com/acaana/domain"
)

// Tally accumulates the complete paths of a single seed and reduces them to
// collaborators and stronger collaborations.
type Tally struct {
	seed     string
	counts   map[string]int // Terminal author -> number of paths ending there.
	numPaths int
	pairs    *PairTable
}

func NewTally(seed string) *Tally {
	t := &Tally{
		seed:   seed,
		counts: map[string]int{},
		pairs:  NewPairTable(),
	}
	return t
}

// Add records one complete path.  Each path contributes a single mention of
// its terminal author.
func (t *Tally) Add(p domain.Path) {
	terminal := p.Terminal()
	if len(terminal) == 0 || terminal == t.seed {
		return
	}
	t.numPaths++
	t.counts[terminal]++
	t.pairs.AddPath(p)
}

// NumPaths returns the number of paths added.
func (t *Tally) NumPaths() int {
	return t.numPaths
}

// Pairs exposes the (seed, collaborator) pair table built so far.
func (t *Tally) Pairs() *PairTable {
	return t.pairs
}

// Result produces the seed's sorted collaborator list and stronger
// collaborations.
func (t *Tally) Result() domain.SeedResult {
	result := domain.SeedResult{
		Seed:          t.seed,
		NumPaths:      t.numPaths,
		Collaborators: make([]string, 0, len(t.counts)),
		Stronger:      []domain.StrongerCollaboration{},
	}
	for collaborator := range t.counts {
		result.Collaborators = append(result.Collaborators, collaborator)
	}
	sort.Strings(result.Collaborators)
	for _, collaborator := range result.Collaborators {
		if n := t.counts[collaborator]; n > 1 {
			result.Stronger = append(result.Stronger, domain.StrongerCollaboration{
				Seed:         t.seed,
				Collaborator: collaborator,
				Count:        n,
			})
		}
	}
	return result
}

// Collaborators returns the distinct, sorted terminal authors of the paths.
func Collaborators(seed string, paths []domain.Path) []string {
	t := NewTally(seed)
	for _, p := range paths {
		t.Add(p)
	}
	return t.Result().Collaborators
}

// Stronger returns the collaborators appearing at the end of more than one of
// the paths, sorted by collaborator.
func Stronger(seed string, paths []domain.Path) []domain.StrongerCollaboration {
	t := NewTally(seed)
	for _, p := range paths {
		t.Add(p)
	}
	return t.Result().Stronger
}
