package cluster

import (
	"errors"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/pkg/unique"
)

var (
	DefaultThreshold  = 10
	DefaultIterations = 4

	ErrInvalidConfig = errors.New("invalid cluster configuration")
)

type Config struct {
	Threshold  int // Pairs must share strictly more than this many collaborators to merge.
	Iterations int // Number of outer merge iterations.
}

func NewConfig() *Config {
	cfg := &Config{
		Threshold:  DefaultThreshold,
		Iterations: DefaultIterations,
	}
	return cfg
}

func (cfg *Config) Validate() error {
	if cfg.Threshold < 0 {
		return pkgerrors.Wrapf(ErrInvalidConfig, "threshold must be non-negative but was %v", cfg.Threshold)
	}
	if cfg.Iterations <= 0 {
		return pkgerrors.Wrapf(ErrInvalidConfig, "iterations must be positive but was %v", cfg.Iterations)
	}
	return nil
}

// Engine greedily merges groups of authors sharing many collaborators.
type Engine struct {
	Config *Config
}

func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		Config: cfg,
	}
	return e, nil
}

// Merge records a single merge of two groups.
type Merge struct {
	Iteration int
	A         []string
	B         []string
	Common    []string
}

// Result is the outcome of clustering.
type Result struct {
	Clusters   []domain.Cluster // Every surviving group, ordered by members.
	Merges     []Merge          // Merges in the order they were applied.
	Iterations int              // Number of iterations actually run.
}

// Cluster groups authors by their collaborator sets.
func (e *Engine) Cluster(input map[string][]string) *Result {
	groups := make([]domain.Cluster, 0, len(input))
	for author, collaborators := range input {
		groups = append(groups, domain.Cluster{
			Members: []string{author},
			Common:  collaborators,
		})
	}
	return e.ClusterGroups(groups)
}

// ClusterGroups runs the merge procedure starting from existing groups.
//
// Each iteration orders the groups by their joined member lists and
// repeatedly merges the not-yet-merged pair with the largest collaborator
// intersection exceeding the threshold.  Ties go to the first pair found in
// that order.  Groups formed during an iteration only become merge candidates
// in the next one.  Iteration stops early once a pass merges nothing.
func (e *Engine) ClusterGroups(clusters []domain.Cluster) *Result {
	groups := make([]*group, 0, len(clusters))
	for _, c := range clusters {
		groups = append(groups, newGroup(c.Members, c.Common))
	}

	result := &Result{
		Merges: []Merge{},
	}
	for i := 0; i < e.Config.Iterations; i++ {
		result.Iterations++
		state := newState(groups)
		merges := e.iterate(state)
		for _, m := range merges {
			m.Iteration = i
			result.Merges = append(result.Merges, m)
		}
		groups = state.next()
		log.WithField("iteration", i).WithField("merges", len(merges)).WithField("groups", len(groups)).Debug("Cluster iteration finished")
		if len(merges) == 0 {
			break
		}
	}

	sortGroups(groups)
	result.Clusters = make([]domain.Cluster, 0, len(groups))
	for _, g := range groups {
		result.Clusters = append(result.Clusters, g.cluster())
	}
	return result
}

func (e *Engine) iterate(state *state) []Merge {
	merges := []Merge{}
	for {
		i, j, common := state.best(e.Config.Threshold)
		if i < 0 {
			return merges
		}
		a, b := state.groups[i], state.groups[j]
		state.merge(i, j, common)
		merges = append(merges, Merge{
			A:      a.members,
			B:      b.members,
			Common: common,
		})
	}
}

type group struct {
	key     string
	members []string
	common  []string // Sorted and de-duplicated.
}

func newGroup(members []string, common []string) *group {
	g := &group{
		key:     strings.Join(members, ","),
		members: members,
		common:  unique.StringsSorted(common),
	}
	return g
}

func (g *group) cluster() domain.Cluster {
	return domain.Cluster{Members: g.members, Common: g.common}
}

func sortGroups(groups []*group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
}

// state tracks one iteration: the candidate groups, which of them have been
// consumed by a merge, and the groups produced so far.
type state struct {
	groups   []*group
	finished []bool
	merged   []*group
}

func newState(groups []*group) *state {
	sortGroups(groups)
	s := &state{
		groups:   groups,
		finished: make([]bool, len(groups)),
		merged:   []*group{},
	}
	return s
}

// best finds the unfinished pair with the largest intersection strictly
// greater than threshold.  Returns i=-1 if there is none.
func (s *state) best(threshold int) (int, int, []string) {
	var (
		bi, bj = -1, -1
		most   = threshold
		common []string
	)
	for i := 0; i < len(s.groups)-1; i++ {
		if s.finished[i] {
			continue
		}
		for j := i + 1; j < len(s.groups); j++ {
			if s.finished[j] {
				continue
			}
			// Cheap upper bound before computing the intersection.
			if len(s.groups[i].common) <= most || len(s.groups[j].common) <= most {
				continue
			}
			if c := intersect(s.groups[i].common, s.groups[j].common); len(c) > most {
				bi, bj, most, common = i, j, len(c), c
			}
		}
	}
	return bi, bj, common
}

func (s *state) merge(i int, j int, common []string) {
	members := make([]string, 0, len(s.groups[i].members)+len(s.groups[j].members))
	members = append(members, s.groups[i].members...)
	members = append(members, s.groups[j].members...)
	s.finished[i] = true
	s.finished[j] = true
	s.merged = append(s.merged, newGroup(members, common))
}

// next returns the key set for the following iteration: merged groups plus
// every group left untouched.
func (s *state) next() []*group {
	groups := make([]*group, 0, len(s.merged)+len(s.groups))
	groups = append(groups, s.merged...)
	for i, g := range s.groups {
		if !s.finished[i] {
			groups = append(groups, g)
		}
	}
	return groups
}

// intersect returns the intersection of two sorted string slices.
func intersect(a []string, b []string) []string {
	out := []string{}
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
