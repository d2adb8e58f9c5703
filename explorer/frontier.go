package explorer

import (
	"jaytaylor.com/acaana/db"
)

// Frontier is a LIFO store of partial paths awaiting extension.
type Frontier interface {
	Push(tokens []string) error
	Pop() (tokens []string, ok bool, err error)
	Len() int
	Reset() error
}

// MemoryFrontier is a Frontier held entirely in memory.
type MemoryFrontier struct {
	stack [][]string
}

func NewMemoryFrontier() *MemoryFrontier {
	f := &MemoryFrontier{
		stack: [][]string{},
	}
	return f
}

func (f *MemoryFrontier) Push(tokens []string) error {
	f.stack = append(f.stack, tokens)
	return nil
}

func (f *MemoryFrontier) Pop() ([]string, bool, error) {
	if len(f.stack) == 0 {
		return nil, false, nil
	}
	tokens := f.stack[len(f.stack)-1]
	f.stack[len(f.stack)-1] = nil
	f.stack = f.stack[0 : len(f.stack)-1]
	return tokens, true, nil
}

func (f *MemoryFrontier) Len() int {
	return len(f.stack)
}

func (f *MemoryFrontier) Reset() error {
	f.stack = f.stack[:0]
	return nil
}

var (
	_ Frontier = (*MemoryFrontier)(nil)
	_ Frontier = (*db.BoltFrontier)(nil)
)
