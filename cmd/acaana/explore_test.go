package main

import (
	"errors"
	"strings"
	"testing"

	"jaytaylor.com/acaana/explorer"
)

type failingFrontier struct {
	*explorer.MemoryFrontier
	err error
}

func (f *failingFrontier) Reset() error {
	return f.err
}

func TestResetFrontier(t *testing.T) {
	var (
		runErr   = errors.New("run failed")
		resetErr = errors.New("bucket gone")
	)

	testCases := []struct {
		initial  error
		reset    error
		expected []string
	}{
		{nil, nil, nil},
		{runErr, nil, []string{"run failed"}},
		{nil, resetErr, []string{"resetting frontier: bucket gone"}},
		{runErr, resetErr, []string{"run failed", "resetting frontier: bucket gone"}},
	}

	for i, testCase := range testCases {
		err := testCase.initial
		resetFrontier(&failingFrontier{MemoryFrontier: explorer.NewMemoryFrontier(), err: testCase.reset}, &err)
		if testCase.expected == nil {
			if err != nil {
				t.Errorf("[i=%v] Expected err=<nil> but actual=%v", i, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("[i=%v] Expected err containing %v but actual=<nil>", i, testCase.expected)
			continue
		}
		for _, part := range testCase.expected {
			if !strings.Contains(err.Error(), part) {
				t.Errorf("[i=%v] Expected err=%q to contain %q", i, err, part)
			}
		}
	}
}
