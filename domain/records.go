package domain

import (
	"time"

	"github.com/gogo/protobuf/proto"
)

// The message types below are persisted in the results DB and must keep
// their field numbers stable.

// ToExploreEntry is an item of the to-explore seed queue.
type ToExploreEntry struct {
	Seed        string `protobuf:"bytes,1,opt,name=seed,proto3" json:"seed,omitempty"`
	Reason      string `protobuf:"bytes,2,opt,name=reason,proto3" json:"reason,omitempty"`
	SubmittedAt int64  `protobuf:"varint,3,opt,name=submitted_at,json=submittedAt,proto3" json:"submitted_at,omitempty"`
	Attempts    int64  `protobuf:"varint,4,opt,name=attempts,proto3" json:"attempts,omitempty"`
}

func (m *ToExploreEntry) Reset()         { *m = ToExploreEntry{} }
func (m *ToExploreEntry) String() string { return proto.CompactTextString(m) }
func (*ToExploreEntry) ProtoMessage()    {}

func NewToExploreEntry(seed string, reason ...string) *ToExploreEntry {
	if len(reason) == 0 {
		reason = []string{""}
	}

	entry := &ToExploreEntry{
		Seed:        seed,
		Reason:      reason[0],
		SubmittedAt: time.Now().Unix(),
	}

	return entry
}

// PathRecord is a stored complete path.
type PathRecord struct {
	Seed   string   `protobuf:"bytes,1,opt,name=seed,proto3" json:"seed,omitempty"`
	Tokens []string `protobuf:"bytes,2,rep,name=tokens,proto3" json:"tokens,omitempty"`
	Score  float64  `protobuf:"fixed64,3,opt,name=score,proto3" json:"score,omitempty"`
}

func (m *PathRecord) Reset()         { *m = PathRecord{} }
func (m *PathRecord) String() string { return proto.CompactTextString(m) }
func (*PathRecord) ProtoMessage()    {}

func NewPathRecord(p Path) *PathRecord {
	r := &PathRecord{
		Seed:   p.Seed(),
		Tokens: p.Tokens,
		Score:  p.Score,
	}
	return r
}

func (m *PathRecord) Path() Path {
	return Path{Tokens: m.Tokens, Score: m.Score}
}

// StrongerRecord is a stored stronger collaboration, keyed under its seed.
type StrongerRecord struct {
	Collaborator string `protobuf:"bytes,1,opt,name=collaborator,proto3" json:"collaborator,omitempty"`
	Count        int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *StrongerRecord) Reset()         { *m = StrongerRecord{} }
func (m *StrongerRecord) String() string { return proto.CompactTextString(m) }
func (*StrongerRecord) ProtoMessage()    {}

// SeedRecord is the stored summary of one explored seed.
type SeedRecord struct {
	Seed          string            `protobuf:"bytes,1,opt,name=seed,proto3" json:"seed,omitempty"`
	Collaborators []string          `protobuf:"bytes,2,rep,name=collaborators,proto3" json:"collaborators,omitempty"`
	Stronger      []*StrongerRecord `protobuf:"bytes,3,rep,name=stronger,proto3" json:"stronger,omitempty"`
	NumPaths      int64             `protobuf:"varint,4,opt,name=num_paths,json=numPaths,proto3" json:"num_paths,omitempty"`
	RunID         string            `protobuf:"bytes,5,opt,name=run_id,json=runId,proto3" json:"run_id,omitempty"`
	FinishedAt    int64             `protobuf:"varint,6,opt,name=finished_at,json=finishedAt,proto3" json:"finished_at,omitempty"`
}

func (m *SeedRecord) Reset()         { *m = SeedRecord{} }
func (m *SeedRecord) String() string { return proto.CompactTextString(m) }
func (*SeedRecord) ProtoMessage()    {}

func NewSeedRecord(result SeedResult, runID string) *SeedRecord {
	r := &SeedRecord{
		Seed:          result.Seed,
		Collaborators: result.Collaborators,
		Stronger:      make([]*StrongerRecord, 0, len(result.Stronger)),
		NumPaths:      int64(result.NumPaths),
		RunID:         runID,
		FinishedAt:    time.Now().Unix(),
	}
	for _, sc := range result.Stronger {
		r.Stronger = append(r.Stronger, &StrongerRecord{
			Collaborator: sc.Collaborator,
			Count:        int64(sc.Count),
		})
	}
	return r
}

// StrongerCollaborations converts the stored rows back into domain values.
func (m *SeedRecord) StrongerCollaborations() []StrongerCollaboration {
	scs := make([]StrongerCollaboration, 0, len(m.Stronger))
	for _, s := range m.Stronger {
		scs = append(scs, StrongerCollaboration{
			Seed:         m.Seed,
			Collaborator: s.Collaborator,
			Count:        int(s.Count),
		})
	}
	return scs
}

// SeedResult converts the stored summary back into a domain value.
func (m *SeedRecord) SeedResult() SeedResult {
	return SeedResult{
		Seed:          m.Seed,
		NumPaths:      int(m.NumPaths),
		Collaborators: m.Collaborators,
		Stronger:      m.StrongerCollaborations(),
	}
}

// ClusterRecord is a stored cluster.
type ClusterRecord struct {
	Members []string `protobuf:"bytes,1,rep,name=members,proto3" json:"members,omitempty"`
	Common  []string `protobuf:"bytes,2,rep,name=common,proto3" json:"common,omitempty"`
}

func (m *ClusterRecord) Reset()         { *m = ClusterRecord{} }
func (m *ClusterRecord) String() string { return proto.CompactTextString(m) }
func (*ClusterRecord) ProtoMessage()    {}

func NewClusterRecord(c Cluster) *ClusterRecord {
	return &ClusterRecord{Members: c.Members, Common: c.Common}
}

func (m *ClusterRecord) Cluster() Cluster {
	return Cluster{Members: m.Members, Common: m.Common}
}

// RunMetadata describes an exploration run.
type RunMetadata struct {
	ID                     string  `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	StartedAt              int64   `protobuf:"varint,2,opt,name=started_at,json=startedAt,proto3" json:"started_at,omitempty"`
	FinishedAt             int64   `protobuf:"varint,3,opt,name=finished_at,json=finishedAt,proto3" json:"finished_at,omitempty"`
	MaxDepth               int64   `protobuf:"varint,4,opt,name=max_depth,json=maxDepth,proto3" json:"max_depth,omitempty"`
	KeywordWeightThreshold float64 `protobuf:"fixed64,5,opt,name=keyword_weight_threshold,json=keywordWeightThreshold,proto3" json:"keyword_weight_threshold,omitempty"`
	PathScoreThreshold     float64 `protobuf:"fixed64,6,opt,name=path_score_threshold,json=pathScoreThreshold,proto3" json:"path_score_threshold,omitempty"`
	Divergent              bool    `protobuf:"varint,7,opt,name=divergent,proto3" json:"divergent,omitempty"`
	NumSeeds               int64   `protobuf:"varint,8,opt,name=num_seeds,json=numSeeds,proto3" json:"num_seeds,omitempty"`
	NumPaths               int64   `protobuf:"varint,9,opt,name=num_paths,json=numPaths,proto3" json:"num_paths,omitempty"`
}

func (m *RunMetadata) Reset()         { *m = RunMetadata{} }
func (m *RunMetadata) String() string { return proto.CompactTextString(m) }
func (*RunMetadata) ProtoMessage()    {}
