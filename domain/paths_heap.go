package domain

import (
	"container/heap"
	"strings"
)

// PathsHeap facilitates building prioritized / sorted collections of paths.
type PathsHeap struct {
	Paths    []Path
	LessFunc PathsLessFunc
}

// PathsLessFunc Path comparison function type.
type PathsLessFunc func(a, b Path) bool

func NewPathsHeap(lessFn PathsLessFunc) *PathsHeap {
	ph := &PathsHeap{
		Paths:    []Path{},
		LessFunc: lessFn,
	}
	heap.Init(ph)

	return ph
}

func (ph PathsHeap) Len() int { return len(ph.Paths) }
func (ph PathsHeap) Less(i, j int) bool {
	return ph.LessFunc(ph.Paths[i], ph.Paths[j])
}
func (ph PathsHeap) Swap(i, j int) { ph.Paths[i], ph.Paths[j] = ph.Paths[j], ph.Paths[i] }

func (ph *PathsHeap) Push(x interface{}) {
	ph.Paths = append(ph.Paths, x.(Path))
}
func (ph *PathsHeap) PathPush(p Path) {
	heap.Push(ph, p)
}

func (ph *PathsHeap) Pop() interface{} {
	old := ph.Paths
	n := len(old)
	x := old[n-1]
	ph.Paths = old[0 : n-1]
	return x
}
func (ph *PathsHeap) PathPop() (Path, bool) {
	if len(ph.Paths) == 0 {
		return Path{}, false
	}
	return heap.Pop(ph).(Path), true
}

// PushBounded pushes p and then drops the least element while the heap holds
// more than max paths.  The heap must be ordered by the ascending form of the
// comparison for this to retain the top max paths.
func (ph *PathsHeap) PushBounded(p Path, max int) {
	heap.Push(ph, p)
	for max > 0 && ph.Len() > max {
		heap.Pop(ph)
	}
}

// Slice returns the heap contents in pop order without consuming the heap.
func (ph *PathsHeap) Slice() []Path {
	orig := make([]Path, ph.Len())
	copy(orig, ph.Paths)

	s := make([]Path, 0, ph.Len())
	for ph.Len() > 0 {
		p, _ := ph.PathPop()
		s = append(s, p)
	}

	ph.Paths = orig
	heap.Init(ph)

	return s
}

var (
	// PathsByScore comparison function which sorts by score, breaking ties by
	// the joined tokens.
	PathsByScore = func(a, b Path) bool {
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return strings.Join(a.Tokens, ",") < strings.Join(b.Tokens, ",")
	}

	// PathsDesc returns a reversed version of the specified less function.
	PathsDesc = func(lessFn PathsLessFunc) PathsLessFunc {
		fn := func(a, b Path) bool {
			return lessFn(b, a)
		}
		return fn
	}
)

// TopPaths returns up to n of the highest scoring paths, best first.
func TopPaths(paths []Path, n int) []Path {
	h := NewPathsHeap(PathsByScore)
	for _, p := range paths {
		h.PushBounded(p, n)
	}
	s := h.Slice()
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}
