package graph

import (
	"reflect"
	"testing"
)

func TestBuildSymmetric(t *testing.T) {
	idx := Build(
		map[string][]string{
			"A1": {"k2", "k1"},
			"A2": {"k1"},
		},
		map[string][]string{
			"k1": {"A1", "A2", "Ext1"},
			"k2": {"A1", "Ext2", "(blank)"},
		},
	)

	if err := idx.Validate(); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		author   string
		expected []string
	}{
		{author: "A1", expected: []string{"k1", "k2"}},
		{author: "A2", expected: []string{"k1"}},
		{author: "Ext1", expected: []string{"k1"}},
		{author: "Ext2", expected: []string{"k2"}},
		{author: "Nobody", expected: nil},
	}
	for i, testCase := range testCases {
		if expected, actual := testCase.expected, idx.AuthorKeywords(testCase.author); !reflect.DeepEqual(actual, expected) {
			t.Errorf("[i=%v] Expected keywords=%v but actual=%v", i, expected, actual)
		}
	}

	if expected, actual := []string{"A1", "Ext2"}, idx.KeywordAuthors("k2"); !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected authors=%v but actual=%v", expected, actual)
	}
	if expected, actual := (Stats{Authors: 4, Keywords: 2, Edges: 5}), idx.Stats(); actual != expected {
		t.Errorf("Expected stats=%+v but actual=%+v", expected, actual)
	}
	if expected, actual := 3, idx.Usage()["k1"]; actual != expected {
		t.Errorf("Expected usage=%v but actual=%v", expected, actual)
	}
}

func TestValidateAsymmetric(t *testing.T) {
	idx := New()
	idx.Add("A", "k")
	if err := idx.Validate(); err != nil {
		t.Fatal(err)
	}
	idx.authorKeywords["B"] = []string{"k"}
	if err := idx.Validate(); err == nil {
		t.Errorf("Expected asymmetric index to fail validation")
	}
}
