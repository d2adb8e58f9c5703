package explorer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"jaytaylor.com/acaana/db"
	"jaytaylor.com/acaana/domain"
	"jaytaylor.com/acaana/graph"
	"jaytaylor.com/acaana/hierarchy"
)

func newTestExplorer(t *testing.T, cfg *Config, a2k map[string][]string, kws domain.Keywords) *Explorer {
	e, err := New(cfg, graph.Build(a2k, nil), kws, hierarchy.Default())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func pathStrings(paths []domain.Path) []string {
	ss := make([]string, len(paths))
	for i, p := range paths {
		ss[i] = p.String()
	}
	return ss
}

func TestExploreSingleHop(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxDepth = 1
	cfg.KeywordWeightThreshold = 1.0
	cfg.PathScoreThreshold = 1.0
	cfg.SeedPattern = `^A[0-9]+$`

	var (
		a2k = map[string][]string{
			"A1": {"k1", "k2"},
			"A2": {"k1"},
		}
		k2a = map[string][]string{
			"k1": {"A1", "A2", "Ext1"},
			"k2": {"A1", "Ext2"},
		}
		kws = domain.Keywords{
			"k1": {Text: "k1", Weight: 2.0, TopicPath: "optics"},
			"k2": {Text: "k2", Weight: 1.5, TopicPath: "teaching"},
		}
	)

	e, err := New(cfg, graph.Build(a2k, k2a), kws, hierarchy.Default())
	if err != nil {
		t.Fatal(err)
	}

	paths, err := e.Paths("A1", NewState())
	if err != nil {
		t.Fatal(err)
	}
	if expected, actual := []string{"2,A1,k1,Ext1", "1.5,A1,k2,Ext2"}, pathStrings(paths); !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected paths=%v but actual=%v", expected, actual)
	}

	c := NewCoordinator(e, nil, nil, nil)
	if err := c.Do(nil, "A1"); err != nil {
		t.Fatal(err)
	}
	sink := c.Sink.(*MemorySink)
	if expected, actual := 1, len(sink.Results); actual != expected {
		t.Fatalf("Expected num results=%v but actual=%v", expected, actual)
	}
	if expected, actual := []string{"Ext1", "Ext2"}, sink.Results[0].Collaborators; !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected collaborators=%v but actual=%v", expected, actual)
	}
}

// divergenceGraph: A1 -k1(optics)- E1, then E1 -k2(thermodynamics)- E2 or
// E1 -k3(veterinary)- E3.
func divergenceGraph() (map[string][]string, domain.Keywords) {
	a2k := map[string][]string{
		"A1": {"k1"},
		"E1": {"k1", "k2", "k3"},
		"E2": {"k2"},
		"E3": {"k3"},
	}
	kws := domain.Keywords{
		"k1": {Text: "k1", Weight: 2, TopicPath: "optics:physics:science"},
		"k2": {Text: "k2", Weight: 2, TopicPath: "thermodynamics:physics:science"},
		"k3": {Text: "k3", Weight: 3, TopicPath: "veterinary:animal-culture:agriculture"},
	}
	return a2k, kws
}

func TestExploreScoringAndThresholds(t *testing.T) {
	a2k, kws := divergenceGraph()

	testCases := []struct {
		divergent      bool
		scoreThreshold float64
		weightMin      float64
		finished       []string
		expected       []string
	}{
		{
			expected: []string{"4,A1,k1,E1,k2,E2", "12,A1,k1,E1,k3,E3"},
		},
		{
			scoreThreshold: 5,
			expected:       []string{"12,A1,k1,E1,k3,E3"},
		},
		{
			divergent: true,
			expected:  []string{"12,A1,k1,E1,k3,E3"},
		},
		{
			weightMin: 2.5,
			expected:  []string{},
		},
		{
			finished: []string{"E2"},
			expected: []string{"12,A1,k1,E1,k3,E3"},
		},
		{
			finished: []string{"E1"},
			expected: []string{},
		},
	}

	for i, testCase := range testCases {
		cfg := NewConfig()
		cfg.MaxDepth = 2
		cfg.Divergent = testCase.divergent
		cfg.PathScoreThreshold = testCase.scoreThreshold
		cfg.KeywordWeightThreshold = testCase.weightMin

		e := newTestExplorer(t, cfg, a2k, kws)
		paths, err := e.Paths("A1", NewState(testCase.finished...))
		if err != nil {
			t.Fatalf("[i=%v] %s", i, err)
		}
		if expected, actual := testCase.expected, pathStrings(paths); !reflect.DeepEqual(actual, expected) {
			t.Errorf("[i=%v] Expected paths=%v but actual=%v", i, expected, actual)
		}
	}
}

func TestExploreMissingSeed(t *testing.T) {
	a2k, kws := divergenceGraph()
	e := newTestExplorer(t, NewConfig(), a2k, kws)

	n, err := e.Explore("nobody", NewState(), NewMemoryFrontier(), func(_ domain.Path) error {
		t.Errorf("Expected no paths to be emitted")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if expected, actual := 0, n; actual != expected {
		t.Errorf("Expected n=%v but actual=%v", expected, actual)
	}
}

func TestExploreExcludesSeedsAndPlaceholder(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxDepth = 1
	cfg.KeywordWeightThreshold = 0
	cfg.PathScoreThreshold = 0

	var (
		a2k = map[string][]string{
			"GRT0001": {"k1", domain.Placeholder},
			"GRT0002": {"k1"},
			"E1":      {"k1"},
		}
		kws = domain.Keywords{
			"k1":               {Text: "k1", Weight: 1},
			domain.Placeholder: {Text: domain.Placeholder, Weight: 10},
		}
	)

	e := newTestExplorer(t, cfg, a2k, kws)
	paths, err := e.Paths("GRT0001", NewState())
	if err != nil {
		t.Fatal(err)
	}
	if expected, actual := []string{"1,GRT0001,k1,E1"}, pathStrings(paths); !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected paths=%v but actual=%v", expected, actual)
	}
}

// meshGraph builds a densely connected graph with cycles.
func meshGraph(numAuthors int, numKeywords int) (map[string][]string, domain.Keywords) {
	var (
		a2k    = map[string][]string{}
		kws    = domain.Keywords{}
		topics = []string{"optics", "veterinary", "teaching", "law", "sport", "oncology", "gas"}
	)
	for k := 0; k < numKeywords; k++ {
		kw := fmt.Sprintf("kw%02d", k)
		kws[kw] = domain.Keyword{
			Text:      kw,
			Weight:    float64(k%4) + 0.5,
			TopicPath: topics[k%len(topics)],
		}
	}
	for a := 0; a < numAuthors; a++ {
		author := fmt.Sprintf("X%02d", a)
		for k := 0; k < numKeywords; k++ {
			if (a+k)%3 == 0 || (a*k)%5 == 1 {
				a2k[author] = append(a2k[author], fmt.Sprintf("kw%02d", k))
			}
		}
	}
	a2k["GRT0001"] = []string{"kw00", "kw01", "kw02"}
	return a2k, kws
}

func TestExplorePathProperties(t *testing.T) {
	a2k, kws := meshGraph(12, 8)

	for _, divergent := range []bool{false, true} {
		cfg := NewConfig()
		cfg.MaxDepth = 3
		cfg.KeywordWeightThreshold = 1
		cfg.PathScoreThreshold = 6
		cfg.Divergent = divergent

		e := newTestExplorer(t, cfg, a2k, kws)
		paths, err := e.Paths("GRT0001", NewState())
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) == 0 {
			t.Fatalf("[divergent=%v] Expected some paths", divergent)
		}

		topics := hierarchy.Default()
		for i, p := range paths {
			if expected, actual := cfg.MaxDepth, p.Hops(); actual != expected {
				t.Errorf("[divergent=%v][i=%v] Expected hops=%v but actual=%v", divergent, i, expected, actual)
			}
			if p.Score < cfg.PathScoreThreshold {
				t.Errorf("[divergent=%v][i=%v] Path %v scored below threshold", divergent, i, p)
			}
			seen := map[string]struct{}{}
			for _, token := range p.Tokens {
				if _, ok := seen[token]; ok {
					t.Errorf("[divergent=%v][i=%v] Path %v repeats token %q", divergent, i, p, token)
				}
				seen[token] = struct{}{}
			}
			if !divergent {
				continue
			}
			pathKWs := p.Keywords()
			for x := 0; x < len(pathKWs); x++ {
				for y := x + 1; y < len(pathKWs); y++ {
					a, _ := topics.Resolve(kws.Topic(pathKWs[x]))
					b, _ := topics.Resolve(kws.Topic(pathKWs[y]))
					if a.Root == b.Root {
						t.Errorf("[i=%v] Divergent path %v shares topic root between %v and %v", i, p, pathKWs[x], pathKWs[y])
					}
				}
			}
		}
	}
}

func TestMemoryAndBoltFrontiersAgree(t *testing.T) {
	a2k, kws := meshGraph(8, 6)

	cfg := NewConfig()
	cfg.MaxDepth = 2
	cfg.KeywordWeightThreshold = 1
	cfg.PathScoreThreshold = 0

	e := newTestExplorer(t, cfg, a2k, kws)

	memPaths, err := e.Paths("GRT0001", NewState())
	if err != nil {
		t.Fatal(err)
	}

	filename := filepath.Join(os.TempDir(), t.Name()+".bolt")
	os.Remove(filename)
	defer os.Remove(filename)

	if err := db.WithClient(db.NewBoltConfig(filename), func(client *db.Client) error {
		frontier, err := client.Frontier("GRT0001")
		if err != nil {
			return err
		}
		boltPaths := []domain.Path{}
		if _, err := e.Explore("GRT0001", NewState(), frontier, func(p domain.Path) error {
			boltPaths = append(boltPaths, p)
			return nil
		}); err != nil {
			return err
		}
		if expected, actual := pathStrings(memPaths), pathStrings(boltPaths); !reflect.DeepEqual(actual, expected) {
			t.Errorf("Expected bolt frontier paths=%v but actual=%v", strings.Join(expected, " "), strings.Join(actual, " "))
		}
		if expected, actual := 0, frontier.Len(); actual != expected {
			t.Errorf("Expected drained frontier len=%v but actual=%v", expected, actual)
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		mutate func(cfg *Config)
		valid  bool
	}{
		{func(_ *Config) {}, true},
		{func(cfg *Config) { cfg.MaxDepth = 0 }, false},
		{func(cfg *Config) { cfg.MaxDepth = -3 }, false},
		{func(cfg *Config) { cfg.KeywordWeightThreshold = -1 }, false},
		{func(cfg *Config) { cfg.KeywordWeightThreshold = math.Inf(1) }, false},
		{func(cfg *Config) { cfg.KeywordWeightThreshold = math.NaN() }, false},
		{func(cfg *Config) { cfg.PathScoreThreshold = math.Inf(1) }, false},
		{func(cfg *Config) { cfg.PathScoreThreshold = -0.5 }, false},
		{func(cfg *Config) { cfg.SeedPattern = "(" }, false},
		{func(cfg *Config) { cfg.SeedPattern = "" }, true},
	}

	for i, testCase := range testCases {
		cfg := NewConfig()
		testCase.mutate(cfg)
		err := cfg.Validate()
		if expected, actual := testCase.valid, err == nil; actual != expected {
			t.Errorf("[i=%v] Expected valid=%v but actual=%v (err=%v)", i, expected, actual, err)
		}
		if err != nil && errors.Cause(err) != ErrInvalidConfig {
			t.Errorf("[i=%v] Expected cause=%v but actual=%v", i, ErrInvalidConfig, errors.Cause(err))
		}
	}

	if _, err := New(&Config{}, graph.New(), domain.Keywords{}, nil); err == nil {
		t.Errorf("Expected zero config to be rejected")
	}
}
