package hierarchy

import (
	"reflect"
	"testing"
)

func TestDefaultHierarchy(t *testing.T) {
	h := Default()

	if expected, actual := 17, len(h.Roots()); actual != expected {
		t.Errorf("Expected num roots=%v but actual=%v", expected, actual)
	}
	if expected, actual := 25, h.NumRelated(); actual != expected {
		t.Errorf("Expected num related root pairs=%v but actual=%v", expected, actual)
	}
	if expected, actual := Education, h.Roots()[0].Name; actual != expected {
		t.Errorf("Expected first root=%v but actual=%v", expected, actual)
	}
	if expected, actual := Language, h.Roots()[16].Name; actual != expected {
		t.Errorf("Expected last root=%v but actual=%v", expected, actual)
	}
}

func TestPathToRoot(t *testing.T) {
	h := Default()

	// Every path must end at a root and be exactly depth+1 long.
	h.Each(func(heading Heading) {
		path := h.PathToRoot(heading)
		if expected, actual := heading.Depth+1, len(path); actual != expected {
			t.Errorf("[heading=%v] Expected path len=%v but actual=%v", heading.Name, expected, actual)
		}
		last := path[len(path)-1]
		if !last.IsRoot() {
			t.Errorf("[heading=%v] Expected path to end at a root but ended at %v", heading.Name, last.Name)
		}
		if expected, actual := heading.Root, last.ID; actual != expected {
			t.Errorf("[heading=%v] Expected root id=%v but actual=%v", heading.Name, expected, actual)
		}
		if path[0].ID != heading.ID {
			t.Errorf("[heading=%v] Expected path to start at the heading itself but started at %v", heading.Name, path[0].Name)
		}
	})

	vet, ok := h.Resolve("veterinary")
	if !ok {
		t.Fatal("Expected veterinary to resolve")
	}
	if expected, actual := "veterinary:animal-culture:agriculture", h.PathString(vet); actual != expected {
		t.Errorf("Expected path string=%v but actual=%v", expected, actual)
	}
}

func TestResolve(t *testing.T) {
	h := Default()

	testCases := []struct {
		name     string
		expected string
		found    bool
	}{
		{name: "Optics", expected: "optics", found: true},
		{name: "vet", expected: "veterinary", found: true},
		{name: "law", expected: "law", found: true},
		{name: "engineering", expected: "electrical-engineering", found: true},
		{name: "physical", expected: "physical-geography", found: true},
		{name: "chemistry", expected: "chemistry", found: true},
		{name: "  gas ", expected: "gas", found: true},
		{name: "", found: false},
		{name: "quux-does-not-exist", found: false},
	}
	for i, testCase := range testCases {
		heading, ok := h.Resolve(testCase.name)
		if expected, actual := testCase.found, ok; actual != expected {
			t.Errorf("[i=%v] Expected found=%v but actual=%v", i, expected, actual)
			continue
		}
		if ok && heading.Name != testCase.expected {
			t.Errorf("[i=%v] Expected resolved heading=%v but actual=%v", i, testCase.expected, heading.Name)
		}
	}
}

func TestDistance(t *testing.T) {
	h := Default()

	testCases := []struct {
		a, b     string
		expected int
	}{
		{a: "veterinary", b: "optics", expected: 7},     // Related roots: 3 + 3 + 2 - 1.
		{a: "veterinary", b: "teaching", expected: 7},   // Unrelated roots: 3 + 2 + 2.
		{a: "philosophy", b: "sport", expected: 4},      // Two unrelated roots.
		{a: "history", b: "religion", expected: 3},      // Two related roots.
		{a: "genetics", b: "optics", expected: 0},       // Same tree.
		{a: "science", b: "organic-chemistry", expected: 0},
		{a: "", b: "optics", expected: 0},
		{a: "optics", b: "", expected: 0},
		{a: "quux-does-not-exist", b: "optics", expected: 0},
	}
	for i, testCase := range testCases {
		if expected, actual := testCase.expected, h.Distance(testCase.a, testCase.b); actual != expected {
			t.Errorf("[i=%v] Expected Distance(%q, %q)=%v but actual=%v", i, testCase.a, testCase.b, expected, actual)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	h := Default()

	names := []string{}
	h.Each(func(heading Heading) {
		names = append(names, heading.Name)
	})
	for _, a := range names {
		for _, b := range names {
			if ab, ba := h.Distance(a, b), h.Distance(b, a); ab != ba {
				t.Errorf("Expected Distance(%q, %q)=%v to equal Distance(%q, %q)=%v", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestSameRootDistanceIsZero(t *testing.T) {
	h := Default()

	for _, root := range h.Roots() {
		members := []string{}
		h.Each(func(heading Heading) {
			if heading.Root == root.ID {
				members = append(members, heading.Name)
			}
		})
		for _, a := range members {
			for _, b := range members {
				if d := h.Distance(a, b); d != 0 {
					h1, _ := h.Resolve(a)
					h2, _ := h.Resolve(b)
					if h1.Root == h2.Root {
						t.Errorf("Expected Distance(%q, %q)=0 within tree %v but actual=%v", a, b, root.Name, d)
					}
				}
			}
		}
	}
}

func TestCustomHierarchy(t *testing.T) {
	h := New(
		N("a", N("b", N("c"))),
		N("x"),
		N("y", N("z")),
	)
	if err := h.Relate("a", "x"); err != nil {
		t.Fatal(err)
	}
	if err := h.Relate("a", "nope"); err == nil {
		t.Errorf("Expected error relating an unknown root")
	}

	if expected, actual := 6, h.Len(); actual != expected {
		t.Errorf("Expected len=%v but actual=%v", expected, actual)
	}

	c, _ := h.Resolve("c")
	names := []string{}
	for _, heading := range h.PathToRoot(c) {
		names = append(names, heading.Name)
	}
	if expected, actual := []string{"c", "b", "a"}, names; !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected path=%v but actual=%v", expected, actual)
	}

	if expected, actual := 5, h.Distance("c", "x"); actual != expected {
		t.Errorf("Expected related distance=%v but actual=%v", expected, actual)
	}
	if expected, actual := 7, h.Distance("c", "z"); actual != expected {
		t.Errorf("Expected unrelated distance=%v but actual=%v", expected, actual)
	}

	b, _ := h.Resolve("b")
	if expected, actual := []int{c.ID}, b.Children; !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected children=%v but actual=%v", expected, actual)
	}
	if expected, actual := b.ID, c.Parent; actual != expected {
		t.Errorf("Expected parent=%v but actual=%v", expected, actual)
	}
}
