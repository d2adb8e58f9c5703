package hierarchy

import (
	"fmt"
	"strings"
)

// Heading is a single node of a topic tree.  Headings live in the arena of the
// Hierarchy which created them and reference each other by ID.
type Heading struct {
	ID       int
	Name     string
	Parent   int   // ID of the superheading, or -1 for a tree root.
	Root     int   // ID of the tree root.
	Depth    int   // 0 for a tree root.
	Children []int // Owned subheading IDs, in declaration order.
}

// IsRoot returns true when the heading has no superheading.
func (h Heading) IsRoot() bool {
	return h.Parent < 0
}

func (h Heading) String() string {
	return h.Name
}

// Node is the literal description of a topic tree used to build a Hierarchy.
type Node struct {
	Name     string
	Children []*Node
}

// N is shorthand for constructing a Node.
func N(name string, children ...*Node) *Node {
	n := &Node{
		Name:     name,
		Children: children,
	}
	return n
}

// Hierarchy is a read-only forest of topic trees plus a set of root pairs
// considered related to one another.
//
// All headings of all trees are flattened into a single arena in pre-order,
// trees in declaration order.  Name resolution scans the arena in that order.
type Hierarchy struct {
	headings []Heading
	lower    []string // Lower-cased heading names, indexed by ID.
	roots    []int
	byRoot   map[string]int // Lower-cased root name -> root ID.
	related  map[rootPair]struct{}
}

type rootPair struct {
	a, b int
}

func newRootPair(a, b int) rootPair {
	if b < a {
		a, b = b, a
	}
	return rootPair{a: a, b: b}
}

// New builds a hierarchy from one or more tree descriptions.
func New(trees ...*Node) *Hierarchy {
	h := &Hierarchy{
		headings: []Heading{},
		lower:    []string{},
		roots:    make([]int, 0, len(trees)),
		byRoot:   map[string]int{},
		related:  map[rootPair]struct{}{},
	}
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		id := h.add(tree, -1, -1, 0)
		h.roots = append(h.roots, id)
		h.byRoot[strings.ToLower(tree.Name)] = id
	}
	return h
}

func (h *Hierarchy) add(n *Node, parent int, root int, depth int) int {
	id := len(h.headings)
	if root < 0 {
		root = id
	}
	h.headings = append(h.headings, Heading{
		ID:       id,
		Name:     n.Name,
		Parent:   parent,
		Root:     root,
		Depth:    depth,
		Children: []int{},
	})
	h.lower = append(h.lower, strings.ToLower(n.Name))
	for _, child := range n.Children {
		childID := h.add(child, id, root, depth+1)
		h.headings[id].Children = append(h.headings[id].Children, childID)
	}
	return id
}

// Relate marks two tree roots as related.  Only meant to be invoked while
// constructing the hierarchy.
func (h *Hierarchy) Relate(rootA string, rootB string) error {
	a, ok := h.byRoot[strings.ToLower(rootA)]
	if !ok {
		return fmt.Errorf("relate: no tree rooted at %q", rootA)
	}
	b, ok := h.byRoot[strings.ToLower(rootB)]
	if !ok {
		return fmt.Errorf("relate: no tree rooted at %q", rootB)
	}
	h.related[newRootPair(a, b)] = struct{}{}
	return nil
}

// Related returns true if the two root headings were marked as related.
func (h *Hierarchy) Related(rootA Heading, rootB Heading) bool {
	_, ok := h.related[newRootPair(rootA.Root, rootB.Root)]
	return ok
}

// NumRelated returns the number of related root pairs.
func (h *Hierarchy) NumRelated() int {
	return len(h.related)
}

// Len returns the total number of headings across all trees.
func (h *Hierarchy) Len() int {
	return len(h.headings)
}

// Heading returns the heading with the given ID.
func (h *Hierarchy) Heading(id int) Heading {
	return h.headings[id]
}

// Roots returns the root heading of every tree, in declaration order.
func (h *Hierarchy) Roots() []Heading {
	roots := make([]Heading, 0, len(h.roots))
	for _, id := range h.roots {
		roots = append(roots, h.headings[id])
	}
	return roots
}

// Each invokes fn on every heading in pre-order.
func (h *Hierarchy) Each(fn func(heading Heading)) {
	for _, heading := range h.headings {
		fn(heading)
	}
}

// Resolve finds the heading for a topic name.
//
// Matching is case-insensitive.  An exact name match anywhere in the forest is
// preferred, otherwise the first heading (pre-order, trees in declaration
// order) whose name contains the input wins.  When a name matches headings in
// more than one tree the result depends on tree declaration order and callers
// should not rely on which tree is chosen.
func (h *Hierarchy) Resolve(name string) (Heading, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return Heading{}, false
	}
	for id, lower := range h.lower {
		if lower == name {
			return h.headings[id], true
		}
	}
	for id, lower := range h.lower {
		if strings.Contains(lower, name) {
			return h.headings[id], true
		}
	}
	return Heading{}, false
}

// PathToRoot returns the list of headings from the given heading up to and
// including its tree root.
func (h *Hierarchy) PathToRoot(heading Heading) []Heading {
	path := make([]Heading, 0, heading.Depth+1)
	for id := heading.ID; id >= 0; id = h.headings[id].Parent {
		path = append(path, h.headings[id])
	}
	return path
}

// PathString renders the path to root colon-delimited, e.g.
// "veterinary:animal-culture:agriculture".
func (h *Hierarchy) PathString(heading Heading) string {
	path := h.PathToRoot(heading)
	names := make([]string, len(path))
	for i, p := range path {
		names[i] = p.Name
	}
	return strings.Join(names, ":")
}

// Distance computes the semantic distance between two topic names.
//
// Returns 0 when either name is empty or unresolvable, or when both resolve
// into the same tree.  Otherwise the distance is the sum of both path lengths
// to their roots plus 2, less 1 when the two roots are related.
//
// This is a heuristic and does not satisfy the triangle inequality.
func (h *Hierarchy) Distance(topicA string, topicB string) int {
	a, ok := h.Resolve(topicA)
	if !ok {
		return 0
	}
	b, ok := h.Resolve(topicB)
	if !ok {
		return 0
	}
	if a.Root == b.Root {
		return 0
	}
	d := (a.Depth + 1) + (b.Depth + 1) + 2
	if h.Related(a, b) {
		d--
	}
	return d
}
