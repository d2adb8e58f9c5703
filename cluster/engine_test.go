package cluster

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"jaytaylor.com/acaana/domain"
)

// collaborators generates n collaborator names with the given prefix.
func collaborators(prefix string, n int) []string {
	s := make([]string, n)
	for i := 0; i < n; i++ {
		s[i] = fmt.Sprintf("%v%02d", prefix, i)
	}
	return s
}

func concat(slices ...[]string) []string {
	out := []string{}
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}

func newEngine(t *testing.T) *Engine {
	e, err := New(NewConfig())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestClusterThreshold(t *testing.T) {
	testCases := []struct {
		shared   int
		expected int // Number of resulting clusters.
	}{
		{shared: 12, expected: 1},
		{shared: 11, expected: 1},
		{shared: 10, expected: 2},
		{shared: 9, expected: 2},
	}
	for i, testCase := range testCases {
		shared := collaborators("S", testCase.shared)
		input := map[string][]string{
			"GRT1": concat(shared, []string{"only1"}),
			"GRT2": concat(shared, []string{"only2"}),
		}
		result := newEngine(t).Cluster(input)
		if expected, actual := testCase.expected, len(result.Clusters); actual != expected {
			t.Errorf("[i=%v] Expected num clusters=%v but actual=%v", i, expected, actual)
			continue
		}
		if testCase.expected == 1 {
			if expected, actual := []string{"GRT1", "GRT2"}, result.Clusters[0].Members; !reflect.DeepEqual(actual, expected) {
				t.Errorf("[i=%v] Expected members=%v but actual=%v", i, expected, actual)
			}
			if expected, actual := shared, result.Clusters[0].Common; !reflect.DeepEqual(actual, expected) {
				t.Errorf("[i=%v] Expected common=%v but actual=%v", i, expected, actual)
			}
		}
	}
}

func TestClusterMergeReducesKeysByOne(t *testing.T) {
	input := map[string][]string{
		"A": concat(collaborators("x", 12), collaborators("a", 3)),
		"B": concat(collaborators("x", 12), collaborators("b", 3)),
		"C": collaborators("c", 20),
		"D": collaborators("d", 20),
	}
	result := newEngine(t).Cluster(input)

	if expected, actual := 1, len(result.Merges); actual != expected {
		t.Fatalf("Expected num merges=%v but actual=%v", expected, actual)
	}
	if expected, actual := len(input)-len(result.Merges), len(result.Clusters); actual != expected {
		t.Errorf("Expected num clusters=%v but actual=%v", expected, actual)
	}
	merge := result.Merges[0]
	if expected, actual := collaborators("x", 12), merge.Common; !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected merged set to equal the intersection=%v but actual=%v", expected, actual)
	}
	for _, c := range result.Clusters {
		if c.Singleton() {
			continue
		}
		if expected, actual := []string{"A", "B"}, c.Members; !reflect.DeepEqual(actual, expected) {
			t.Errorf("Expected members=%v but actual=%v", expected, actual)
		}
		if expected, actual := "12", c.Record()[2]; actual != expected {
			t.Errorf("Expected common count column=%v but actual=%v", expected, actual)
		}
	}
}

func TestClusterIterations(t *testing.T) {
	x := collaborators("x", 12)
	input := map[string][]string{
		"A": x,
		"B": concat(x, []string{"b"}),
		"C": concat(x[0:11], []string{"c"}),
	}
	result := newEngine(t).Cluster(input)

	if expected, actual := 1, len(result.Clusters); actual != expected {
		t.Fatalf("Expected num clusters=%v but actual=%v", expected, actual)
	}
	if expected, actual := []string{"A", "B", "C"}, result.Clusters[0].Members; !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected members=%v but actual=%v", expected, actual)
	}
	if expected, actual := x[0:11], result.Clusters[0].Common; !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected common=%v but actual=%v", expected, actual)
	}
	if expected, actual := 3, result.Iterations; actual != expected {
		t.Errorf("Expected iterations=%v but actual=%v", expected, actual)
	}
	if expected, actual := 1, result.Merges[1].Iteration; actual != expected {
		t.Errorf("Expected second merge in iteration=%v but actual=%v", expected, actual)
	}

	// A single iteration only pairs the two closest authors.
	e, err := New(&Config{Threshold: 10, Iterations: 1})
	if err != nil {
		t.Fatal(err)
	}
	if expected, actual := 2, len(e.Cluster(input).Clusters); actual != expected {
		t.Errorf("Expected num clusters after one iteration=%v but actual=%v", expected, actual)
	}
}

func TestClusterTieBreak(t *testing.T) {
	var (
		x     = collaborators("x", 12)
		y     = collaborators("y", 12)
		input = map[string][]string{
			"C": y,
			"B": x,
			"A": concat(x, y),
		}
	)
	for n := 0; n < 5; n++ {
		result := newEngine(t).Cluster(input)
		expected := []domain.Cluster{
			{Members: []string{"A", "B"}, Common: x},
			{Members: []string{"C"}, Common: y},
		}
		if actual := result.Clusters; !reflect.DeepEqual(actual, expected) {
			t.Fatalf("[n=%v] Expected clusters=%+v but actual=%+v", n, expected, actual)
		}
	}
}

func TestClusterIdempotent(t *testing.T) {
	input := map[string][]string{
		"A": collaborators("x", 15),
		"B": collaborators("x", 14),
		"C": collaborators("y", 5),
	}
	e := newEngine(t)
	first := e.Cluster(input)
	second := e.ClusterGroups(first.Clusters)

	if expected, actual := 0, len(second.Merges); actual != expected {
		t.Errorf("Expected num merges on re-run=%v but actual=%v", expected, actual)
	}
	if !reflect.DeepEqual(second.Clusters, first.Clusters) {
		t.Errorf("Expected re-run clusters=%+v but actual=%+v", first.Clusters, second.Clusters)
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		cfg   Config
		valid bool
	}{
		{cfg: Config{Threshold: 10, Iterations: 4}, valid: true},
		{cfg: Config{Threshold: 0, Iterations: 1}, valid: true},
		{cfg: Config{Threshold: -1, Iterations: 4}, valid: false},
		{cfg: Config{Threshold: 10, Iterations: 0}, valid: false},
	}
	for i, testCase := range testCases {
		cfg := testCase.cfg
		_, err := New(&cfg)
		if (err == nil) != testCase.valid {
			t.Errorf("[i=%v] Expected valid=%v but err=%v", i, testCase.valid, err)
		}
		if err != nil && errors.Cause(err) != ErrInvalidConfig {
			t.Errorf("[i=%v] Expected cause=%v but actual=%v", i, ErrInvalidConfig, errors.Cause(err))
		}
	}
}
