package contains

import (
	"testing"
)

func TestString(t *testing.T) {
	testCases := []struct {
		items    []string
		s        string
		expected bool
	}{
		{
			items:    nil,
			s:        "k1",
			expected: false,
		},
		{
			items:    []string{"GRT1", "k1", "A2"},
			s:        "k1",
			expected: true,
		},
		{
			items:    []string{"GRT1", "k1", "A2"},
			s:        "K1",
			expected: false,
		},
		{
			items:    []string{""},
			s:        "",
			expected: true,
		},
	}
	for i, testCase := range testCases {
		if expected, actual := testCase.expected, String(testCase.items, testCase.s); actual != expected {
			t.Errorf("[i=%v] Expected result=%v but actual=%v", i, expected, actual)
		}
	}
}
