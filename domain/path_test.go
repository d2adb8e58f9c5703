package domain

import (
	"reflect"
	"testing"
)

func TestPath(t *testing.T) {
	p := Path{Tokens: []string{"GRT1", "k1", "B", "k2", "C"}, Score: 36.5}

	if expected, actual := 2, p.Hops(); actual != expected {
		t.Errorf("Expected hops=%v but actual=%v", expected, actual)
	}
	if expected, actual := "GRT1", p.Seed(); actual != expected {
		t.Errorf("Expected seed=%v but actual=%v", expected, actual)
	}
	if expected, actual := "C", p.Terminal(); actual != expected {
		t.Errorf("Expected terminal=%v but actual=%v", expected, actual)
	}
	if expected, actual := []string{"k1", "k2"}, p.Keywords(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected keywords=%v but actual=%v", expected, actual)
	}
	if expected, actual := []string{"GRT1", "B", "C"}, p.Authors(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected authors=%v but actual=%v", expected, actual)
	}
	if expected, actual := "36.5,GRT1,k1,B,k2,C", p.String(); actual != expected {
		t.Errorf("Expected string=%v but actual=%v", expected, actual)
	}

	q := p.Extend("k3", "D")
	if expected, actual := 5, len(p.Tokens); actual != expected {
		t.Errorf("Expected original path to be unmodified with len=%v but actual=%v", expected, actual)
	}
	if expected, actual := 3, q.Hops(); actual != expected {
		t.Errorf("Expected extended hops=%v but actual=%v", expected, actual)
	}
}

func TestTopicFromPath(t *testing.T) {
	testCases := []struct {
		in  string
		out string
	}{
		{in: "veterinary:animal-culture:agriculture", out: "veterinary"},
		{in: "science", out: "science"},
		{in: "", out: ""},
		{in: " optics :physics", out: "optics"},
	}
	for i, testCase := range testCases {
		if expected, actual := testCase.out, TopicFromPath(testCase.in); actual != expected {
			t.Errorf("[i=%v] Expected topic=%q but actual=%q", i, expected, actual)
		}
	}
}

func TestClusterRecord(t *testing.T) {
	c := Cluster{Members: []string{"GRT1", "GRT2"}, Common: []string{"X", "Y", "Z"}}
	if expected, actual := []string{"GRT1", "GRT2", "3", "X", "Y", "Z"}, c.Record(); !reflect.DeepEqual(actual, expected) {
		t.Errorf("Expected record=%v but actual=%v", expected, actual)
	}
	if c.Singleton() {
		t.Errorf("Expected merged cluster to not be a singleton")
	}
}
