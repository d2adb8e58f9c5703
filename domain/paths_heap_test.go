package domain

import (
	"reflect"
	"testing"
)

func TestPathsHeap(t *testing.T) {
	h := NewPathsHeap(PathsDesc(PathsByScore))
	scores := []float64{3, 1, 7, 5, 2, 6, 4}
	for _, s := range scores {
		h.PathPush(Path{Tokens: []string{"A"}, Score: s})
	}
	expected := []float64{7, 6, 5, 4, 3, 2, 1}
	actual := []float64{}
	for _, p := range h.Slice() {
		actual = append(actual, p.Score)
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("Expected Slice()=%+v but actual=%v", expected, actual)
	}
	if expected, actual := len(scores), h.Len(); actual != expected {
		t.Errorf("Expected heap len=%v after Slice() but actual=%v", expected, actual)
	}
}

func TestTopPaths(t *testing.T) {
	paths := []Path{
		{Tokens: []string{"A", "k1", "B"}, Score: 10},
		{Tokens: []string{"A", "k2", "C"}, Score: 40},
		{Tokens: []string{"A", "k3", "D"}, Score: 20},
		{Tokens: []string{"A", "k4", "E"}, Score: 40},
		{Tokens: []string{"A", "k5", "F"}, Score: 30},
	}
	testCases := []struct {
		n        int
		expected []string
	}{
		{
			n:        2,
			expected: []string{"40,A,k4,E", "40,A,k2,C"},
		},
		{
			n:        3,
			expected: []string{"40,A,k4,E", "40,A,k2,C", "30,A,k5,F"},
		},
		{
			n:        10,
			expected: []string{"40,A,k4,E", "40,A,k2,C", "30,A,k5,F", "20,A,k3,D", "10,A,k1,B"},
		},
	}
	for i, testCase := range testCases {
		actual := []string{}
		for _, p := range TopPaths(paths, testCase.n) {
			actual = append(actual, p.String())
		}
		if !reflect.DeepEqual(actual, testCase.expected) {
			t.Errorf("[i=%v] Expected top paths=%v but actual=%v", i, testCase.expected, actual)
		}
	}
}
