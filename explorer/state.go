package explorer

import (
	"sort"
)

// State is the cross-seed state of a run: the set of seeds whose exploration
// has completed.  Finished seeds are never chosen as next authors.
type State struct {
	Finished map[string]struct{}
}

func NewState(finished ...string) *State {
	s := &State{
		Finished: make(map[string]struct{}, len(finished)),
	}
	for _, seed := range finished {
		s.Finished[seed] = struct{}{}
	}
	return s
}

// Finish marks a seed as completely explored.
func (s *State) Finish(seed string) {
	s.Finished[seed] = struct{}{}
}

func (s *State) IsFinished(author string) bool {
	_, ok := s.Finished[author]
	return ok
}

func (s *State) Len() int {
	return len(s.Finished)
}

// Seeds returns the finished seeds, sorted.
func (s *State) Seeds() []string {
	seeds := make([]string, 0, len(s.Finished))
	for seed := range s.Finished {
		seeds = append(seeds, seed)
	}
	sort.Strings(seeds)
	return seeds
}
