package domain

import (
	"strconv"
)

// StrongerCollaboration is a collaborator appearing at the end of more than
// one complete path from the same seed.
type StrongerCollaboration struct {
	Seed         string
	Collaborator string
	Count        int
}

// Record returns the delimited row representation.
func (sc StrongerCollaboration) Record() []string {
	return []string{sc.Seed, sc.Collaborator, strconv.Itoa(sc.Count)}
}

// SeedResult is everything produced by fully exploring one seed author.
type SeedResult struct {
	Seed          string
	NumPaths      int      // Number of complete paths emitted.
	Collaborators []string // Sorted and de-duplicated.
	Stronger      []StrongerCollaboration
}

// CollaboratorsRecord returns the seed followed by its collaborators.
func (sr SeedResult) CollaboratorsRecord() []string {
	row := make([]string, 0, len(sr.Collaborators)+1)
	row = append(row, sr.Seed)
	row = append(row, sr.Collaborators...)
	return row
}

// Cluster is a group of authors and the collaborators they all share.
type Cluster struct {
	Members []string
	Common  []string
}

// Record returns the members, then the common collaborator count, then the
// common collaborators.
func (c Cluster) Record() []string {
	row := make([]string, 0, len(c.Members)+len(c.Common)+1)
	row = append(row, c.Members...)
	row = append(row, strconv.Itoa(len(c.Common)))
	row = append(row, c.Common...)
	return row
}

// Singleton returns true when the cluster was never merged.
func (c Cluster) Singleton() bool {
	return len(c.Members) == 1
}
